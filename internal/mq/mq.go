package mq

import "context"

// Publisher abstracts the message broker so the outbox processor does not
// care which implementation delivers the events.
type Publisher interface {
	Publish(ctx context.Context, topic string, body []byte) error
	Close()
}
