// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running and stopping multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker's goroutines and returns immediately. Shutdown stops
// accepting new work, finishes what is queued and returns once the
// goroutines have exited or ctx is done.
//
// Example implementation:
//
//	type MyWorker struct{ done chan struct{} }
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    go w.loop(ctx)
//	}
//
//	func (w *MyWorker) Shutdown(ctx context.Context) error {
//	    close(w.done)
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context)
	Shutdown(ctx context.Context) error
}
