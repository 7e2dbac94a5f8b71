package webhook

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/fakturo/fakturo/internal/config"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/logger"
	"github.com/fakturo/fakturo/internal/types"
	svix "github.com/svix/svix-webhooks/go"
	"github.com/svix/svix-webhooks/go/models"
)

// Event is a tenant-scoped webhook event about a document lifecycle change.
type Event struct {
	ID        string          `json:"id"`
	EventName string          `json:"event_name"`
	TenantID  string          `json:"tenant_id"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Publisher fans out events to the tenant's configured webhook endpoints.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
}

type svixPublisher struct {
	client  *svix.Svix
	enabled bool
	logger  *logger.Logger
}

func NewPublisher(cfg *config.Configuration, log *logger.Logger) (Publisher, error) {
	if !cfg.Webhook.Svix.Enabled {
		return &svixPublisher{enabled: false, logger: log}, nil
	}

	serverURL, err := url.Parse(cfg.Webhook.Svix.BaseURL)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid svix base URL").
			Mark(ierr.ErrValidation)
	}

	client, err := svix.New(cfg.Webhook.Svix.AuthToken, &svix.SvixOptions{
		ServerUrl: serverURL,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create svix client").
			Mark(ierr.ErrSystem)
	}

	return &svixPublisher{
		client:  client,
		enabled: true,
		logger:  log,
	}, nil
}

// NewEvent builds an event envelope for a payload.
func NewEvent(eventName, tenantID string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to marshal webhook payload").
			Mark(ierr.ErrSystem)
	}

	return &Event{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_WEBHOOK_EVENT),
		EventName: eventName,
		TenantID:  tenantID,
		Timestamp: time.Now().UTC(),
		Payload:   data,
	}, nil
}

func (p *svixPublisher) Publish(ctx context.Context, event *Event) error {
	if !p.enabled {
		return nil
	}

	var payloadMap map[string]interface{}
	if err := json.Unmarshal(event.Payload, &payloadMap); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to unmarshal webhook payload").
			Mark(ierr.ErrSystem)
	}

	_, err := p.client.Message.Create(ctx, event.TenantID, models.MessageIn{
		EventType: event.EventName,
		Payload:   payloadMap,
	}, &svix.MessageCreateOptions{})
	if err != nil {
		p.logger.Errorw("failed to publish webhook event",
			"event_id", event.ID,
			"event_name", event.EventName,
			"tenant_id", event.TenantID,
			"error", err,
		)
		return ierr.WithError(err).
			WithHint("Webhook delivery failed").
			Mark(ierr.ErrRemoteUnavailable)
	}

	return nil
}
