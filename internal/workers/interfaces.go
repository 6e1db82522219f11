// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that runs several
// workers under one context.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is done. Failures of a single iteration are logged
// by the worker and do not end Run.
type Worker interface {
	Run(ctx context.Context)
}
