package worker

import "context"

// Worker is a background process tied to the application lifecycle. Start
// blocks until the context is cancelled.
type Worker interface {
	Start(ctx context.Context)
}
