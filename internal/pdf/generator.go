package pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fakturo/fakturo/internal/config"
	"github.com/fakturo/fakturo/internal/domain/document"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/httpclient"
)

// Generator renders a fully-formed document into a PDF via the remote
// render service.
type Generator interface {
	RenderDocumentPDF(ctx context.Context, doc *document.Document) ([]byte, error)
}

type service struct {
	cfg    config.ExportConfig
	client httpclient.Client
}

func NewGenerator(cfg *config.Configuration, client httpclient.Client) Generator {
	return &service{
		cfg:    cfg.Export,
		client: client,
	}
}

func (s *service) RenderDocumentPDF(ctx context.Context, doc *document.Document) ([]byte, error) {
	if !s.cfg.Enabled {
		return nil, ierr.NewError("export service disabled").
			WithHint("PDF export is not configured").
			Mark(ierr.ErrInvalidOperation)
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to marshal document for rendering").
			Mark(ierr.ErrSystem)
	}

	resp, err := s.client.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("%s/render/%s", s.cfg.BaseURL, doc.Kind),
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, ierr.NewErrorf("render service returned status %d", resp.StatusCode).
			WithHint("Document rendering failed").
			Mark(ierr.ErrRemoteUnavailable)
	}

	return resp.Body, nil
}
