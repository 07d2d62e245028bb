package worker

import "context"

// Worker - a long-running stream consumer
type Worker interface {
	// Start blocks until Stop is called or ctx is done
	Start(ctx context.Context) error
	Stop() error
	Name() string
}
