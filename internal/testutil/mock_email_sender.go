package testutil

import (
	"context"

	"github.com/fakturo/fakturo/internal/email"
	ierr "github.com/fakturo/fakturo/internal/errors"
)

// MockEmailSender records sent messages and can simulate delivery failure.
type MockEmailSender struct {
	FailNext bool
	Sent     []*email.Message
}

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

func (m *MockEmailSender) IsEnabled() bool {
	return true
}

func (m *MockEmailSender) Send(ctx context.Context, msg *email.Message) error {
	if m.FailNext {
		m.FailNext = false
		return ierr.NewError("delivery failed").
			WithHint("Email delivery failed").
			Mark(ierr.ErrRemoteUnavailable)
	}
	m.Sent = append(m.Sent, msg)
	return nil
}
