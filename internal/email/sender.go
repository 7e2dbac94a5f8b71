package email

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fakturo/fakturo/internal/config"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/httpclient"
)

// Message is a fully-formed email handed to the delivery service.
type Message struct {
	To         string `json:"to"`
	From       string `json:"from"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Attachment []byte `json:"attachment,omitempty"`
	AttachName string `json:"attachment_name,omitempty"`
}

// Sender delivers a message through the remote email service and reports
// success or failure. Callers only mark documents sent on success.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
	IsEnabled() bool
}

type sender struct {
	cfg    config.EmailConfig
	client httpclient.Client
}

func NewSender(cfg *config.Configuration, client httpclient.Client) Sender {
	return &sender{
		cfg:    cfg.Email,
		client: client,
	}
}

func (s *sender) IsEnabled() bool {
	return s.cfg.Enabled && s.cfg.APIKey != ""
}

func (s *sender) Send(ctx context.Context, msg *Message) error {
	if !s.IsEnabled() {
		return ierr.NewError("email service disabled").
			WithHint("Email delivery is not configured").
			Mark(ierr.ErrInvalidOperation)
	}

	if msg.From == "" {
		msg.From = s.cfg.FromAddress
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to marshal email message").
			Mark(ierr.ErrSystem)
	}

	resp, err := s.client.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    s.cfg.BaseURL + "/emails",
		Headers: map[string]string{
			"Authorization": "Bearer " + s.cfg.APIKey,
		},
		Body: payload,
	})
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return ierr.NewErrorf("email service returned status %d", resp.StatusCode).
			WithHint("Email delivery failed").
			Mark(ierr.ErrRemoteUnavailable)
	}

	return nil
}
