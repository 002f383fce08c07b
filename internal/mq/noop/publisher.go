package noop

import (
	"context"

	"loadsmart_billing/internal/mq"
)

// Publisher is a no-op publisher for modes where no broker is available. It
// satisfies mq.Publisher and silently drops everything.
type Publisher struct{}

// NewPublisher creates a new no-op Publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish does nothing and returns nil.
func (p *Publisher) Publish(ctx context.Context, topic string, body []byte) error {
	return nil
}

// Close does nothing.
func (p *Publisher) Close() {
}

var _ mq.Publisher = (*Publisher)(nil)
