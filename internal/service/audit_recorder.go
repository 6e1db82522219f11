package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/internal/metrics"
	"github.com/MKhiriev/go-privacy-keeper/internal/store"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

// auditRecorder is the only writer of the audit log.
type auditRecorder struct {
	audit   store.AuditRepository
	clock   Clock
	metrics *metrics.Metrics
}

// record appends one entry. When ctx carries a transaction the entry
// commits or rolls back with it.
func (r *auditRecorder) record(ctx context.Context, actor models.Actor, action models.AuditAction, outcome models.AuditOutcome, detail string) error {
	_, err := r.audit.Append(ctx, models.AuditEntry{
		ActorID:   actor.ID,
		ActorRole: actor.Role.String(),
		Action:    action,
		Outcome:   outcome,
		Timestamp: r.clock.Now(),
		Detail:    detail,
	})
	if err != nil {
		r.metrics.IncrementAuditWriteFailure()
		return fmt.Errorf("%w: writing audit entry: %w", ErrStorage, err)
	}

	r.metrics.IncrementOperation(string(action), string(outcome))
	return nil
}

// recordFailure appends a failure entry outside any transaction of the
// failed operation. It survives cancellation of ctx so a dropped request
// still leaves its trace.
func (r *auditRecorder) recordFailure(ctx context.Context, actor models.Actor, action models.AuditAction, detail string, cause error) {
	log := logger.FromContext(ctx)

	detail = strings.TrimSpace(detail + " error=" + kindOf(cause))

	if err := r.record(context.WithoutCancel(ctx), actor, action, models.OutcomeFailure, detail); err != nil {
		log.Err(err).
			Str("func", "*auditRecorder.recordFailure").
			Str("action", string(action)).
			Msg("failure entry was lost")
	}
}
