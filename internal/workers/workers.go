package workers

import (
	"context"
	"errors"
)

type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Shutdown stops the workers in reverse start order and joins their errors.
func (w *Workers) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(w.workers) - 1; i >= 0; i-- {
		if err := w.workers[i].Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
