// Package workers provides abstractions for managing and running the
// daemon's background workers.
// It defines the Worker interface and a Workers aggregate that runs
// multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that starts the worker's execution.
//
// Implementations are expected to block until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
