package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/internal/service"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

// purgeWorker deletes expired subjects on a fixed interval, acting as
// [models.SystemActor]. Every run is audited by the governance service.
type purgeWorker struct {
	governance service.GovernanceService
	interval   time.Duration

	logger *logger.Logger
}

func NewPurgeWorker(governance service.GovernanceService, interval time.Duration, logger *logger.Logger) Worker {
	return &purgeWorker{
		governance: governance,
		interval:   interval,
		logger:     logger,
	}
}

func (w *purgeWorker) Run(ctx context.Context) {
	ctx = w.logger.WithContext(ctx)

	w.logger.Info().Dur("interval", w.interval).Msg("purge worker started")
	defer w.logger.Info().Msg("purge worker stopped")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.purge(ctx)
		}
	}
}

func (w *purgeWorker) purge(ctx context.Context) {
	deleted, err := w.governance.PurgeExpired(ctx, models.SystemActor)
	if err != nil {
		w.logger.Err(err).Str("func", "*purgeWorker.purge").Msg("scheduled purge failed")
		return
	}

	if deleted > 0 {
		w.logger.Info().Str("func", "*purgeWorker.purge").Int("deleted", deleted).Msg("scheduled purge finished")
	}
}
