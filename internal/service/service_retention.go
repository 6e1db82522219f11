package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-privacy-keeper/internal/anonymizer"
	"github.com/MKhiriev/go-privacy-keeper/internal/crypto"
	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/internal/store"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

type retentionService struct {
	subjects   store.SubjectRepository
	transactor store.Transactor
	clock      Clock

	logger *logger.Logger
}

// NewRetentionService constructs a [RetentionService] reading "today" from
// clock.
func NewRetentionService(subjects store.SubjectRepository, transactor store.Transactor, clock Clock, logger *logger.Logger) RetentionService {
	return &retentionService{
		subjects:   subjects,
		transactor: transactor,
		clock:      clock,
		logger:     logger,
	}
}

func (r *retentionService) SetRetention(ctx context.Context, id int64, days int) (string, error) {
	if days <= 0 {
		return "", fmt.Errorf("%w: retention days must be positive, got %d", ErrInvalidArgument, days)
	}

	now := r.clock.Now()
	retentionDate := models.FormatDate(now.AddDate(0, 0, days))

	err := r.subjects.SetRetention(ctx, id, retentionDate, models.FormatDate(now))
	if err != nil {
		return "", translateError(err)
	}

	return retentionDate, nil
}

func (r *retentionService) ListExpired(ctx context.Context) ([]models.ExpiredSubject, error) {
	subjects, err := r.subjects.ListExpired(ctx, today(r.clock))
	if err != nil {
		return nil, translateError(err)
	}

	expired := make([]models.ExpiredSubject, 0, len(subjects))
	for _, s := range subjects {
		label := anonymizer.Name(s.ID)
		if s.AnonName != nil {
			label = *s.AnonName
		}

		expired = append(expired, models.ExpiredSubject{
			ID:            s.ID,
			Label:         label,
			RetentionDate: models.FormatDate(*s.RetentionDate),
		})
	}

	return expired, nil
}

func (r *retentionService) PurgeExpired(ctx context.Context) ([]int64, error) {
	log := logger.FromContext(ctx)

	var deleted []int64
	err := r.transactor.RunInTx(ctx, func(ctx context.Context) error {
		ids, err := r.subjects.DeleteExpired(ctx, today(r.clock))
		if err != nil {
			return err
		}
		deleted = ids
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*retentionService.PurgeExpired").Msg("purge failed")
		return nil, translateError(err)
	}

	return deleted, nil
}

// translateError maps repository and crypto errors onto service error kinds.
// Errors that already carry a kind and context errors pass through.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case hasKind(err):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, store.ErrSubjectNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, crypto.ErrDecryption):
		return fmt.Errorf("%w: %w", ErrDecryption, err)
	default:
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
}
