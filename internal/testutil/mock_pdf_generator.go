package testutil

import (
	"context"

	"github.com/fakturo/fakturo/internal/domain/document"
	ierr "github.com/fakturo/fakturo/internal/errors"
)

// MockPDFGenerator returns canned bytes, or fails on demand to exercise
// error paths like the optimistic sent-marking rollback.
type MockPDFGenerator struct {
	FailNext bool
	Rendered []string // document ids in render order
}

func NewMockPDFGenerator() *MockPDFGenerator {
	return &MockPDFGenerator{}
}

func (m *MockPDFGenerator) RenderDocumentPDF(ctx context.Context, doc *document.Document) ([]byte, error) {
	if m.FailNext {
		m.FailNext = false
		return nil, ierr.NewError("render failed").
			WithHint("Document rendering failed").
			Mark(ierr.ErrRemoteUnavailable)
	}
	m.Rendered = append(m.Rendered, doc.ID)
	return []byte("%PDF-1.4 " + doc.Number), nil
}
