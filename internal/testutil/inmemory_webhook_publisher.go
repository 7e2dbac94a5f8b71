package testutil

import (
	"context"
	"sync"

	"github.com/fakturo/fakturo/internal/webhook"
)

// InMemoryWebhookPublisher records published events for assertions.
type InMemoryWebhookPublisher struct {
	mu     sync.Mutex
	events []*webhook.Event
}

func NewInMemoryWebhookPublisher() *InMemoryWebhookPublisher {
	return &InMemoryWebhookPublisher{}
}

func (p *InMemoryWebhookPublisher) Publish(ctx context.Context, event *webhook.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns the published events in order.
func (p *InMemoryWebhookPublisher) Events() []*webhook.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*webhook.Event(nil), p.events...)
}

// EventNames returns just the event names, in publish order.
func (p *InMemoryWebhookPublisher) EventNames() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.EventName)
	}
	return names
}

func (p *InMemoryWebhookPublisher) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}
