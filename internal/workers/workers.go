package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-privacy-keeper/internal/config"
	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers groups ws so they can be run together.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// NewBackgroundWorkers builds the workers enabled by cfg. It returns nil
// when none is enabled.
func NewBackgroundWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	var ws []Worker

	if cfg.PurgeInterval > 0 {
		ws = append(ws, NewPurgeWorker(services.GovernanceService, cfg.PurgeInterval, logger))
	}

	if len(ws) == 0 {
		logger.Info().Msg("no background workers enabled")
		return nil
	}

	return NewWorkers(ws...)
}

// Run starts every worker in its own goroutine and returns once all of them
// have returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() {
			worker.Run(ctx)
		})
	}
	wg.Wait()
}
