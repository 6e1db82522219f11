package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-privacy-keeper/internal/config"
	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

var auditColumns = []string{
	"id",
	"actor_id",
	"actor_role",
	"action",
	"outcome",
	"timestamp",
	"detail",
}

// auditRepository is the SQL implementation of [AuditRepository].
type auditRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewAuditRepository constructs an [AuditRepository] on db.
func NewAuditRepository(db *DB, logger *logger.Logger) AuditRepository {
	logger.Debug().Msg("creating audit repository")
	return &auditRepository{
		db:     db,
		logger: logger,
	}
}

// Append inserts entry and returns its id. The insert runs in a transaction
// (joining the caller's, if any) that holds the audit write lock, and the
// stored timestamp is raised to the latest stored one when entry.Timestamp
// is older. Ids and timestamps therefore never disagree about order, even
// when the caller read its clock before waiting for the lock.
func (r *auditRepository) Append(ctx context.Context, entry models.AuditEntry) (int64, error) {
	var id int64
	err := NewTransactor(r.db).RunInTx(ctx, func(ctx context.Context) error {
		if err := r.lockForAppend(ctx); err != nil {
			return err
		}

		latest, found, err := r.latestTimestamp(ctx)
		if err != nil {
			return err
		}
		if found && entry.Timestamp.Before(latest) {
			entry.Timestamp = latest
		}

		id, err = r.insert(ctx, entry)
		return err
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// lockForAppend serializes audit writers until commit. sqlite transactions
// already hold the database write lock from BEGIN IMMEDIATE.
func (r *auditRepository) lockForAppend(ctx context.Context) error {
	if r.db.Dialect() != config.DriverPostgres {
		return nil
	}

	if _, err := r.db.conn(ctx).ExecContext(ctx, "LOCK TABLE audit_log IN SHARE ROW EXCLUSIVE MODE"); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*auditRepository.lockForAppend").Msg("failed to lock audit log")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (r *auditRepository) latestTimestamp(ctx context.Context) (time.Time, bool, error) {
	query, args, err := r.db.builder.
		Select("timestamp").
		From(models.AuditEntry{}.TableName()).
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var latest time.Time
	err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&latest)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return time.Time{}, false, nil
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*auditRepository.latestTimestamp").Msg("failed to read latest audit timestamp")
		return time.Time{}, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return latest.UTC(), true, nil
}

func (r *auditRepository) insert(ctx context.Context, entry models.AuditEntry) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert(entry.TableName()).
		Columns("actor_id", "actor_role", "action", "outcome", "timestamp", "detail").
		Values(
			entry.ActorID,
			entry.ActorRole,
			string(entry.Action),
			string(entry.Outcome),
			entry.Timestamp.UTC(),
			entry.Detail,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		log.Err(err).
			Str("func", "*auditRepository.insert").
			Str("action", string(entry.Action)).
			Msg("failed to append audit entry")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return id, nil
}

func (r *auditRepository) List(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	builder := r.db.builder.
		Select(auditColumns...).
		From(models.AuditEntry{}.TableName()).
		OrderBy("id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	entries := make([]models.AuditEntry, 0)
	err := r.each(ctx, "*auditRepository.List", builder, func(entry models.AuditEntry) error {
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *auditRepository) Each(ctx context.Context, fn func(entry models.AuditEntry) error) error {
	builder := r.db.builder.
		Select(auditColumns...).
		From(models.AuditEntry{}.TableName()).
		OrderBy("id ASC")

	return r.each(ctx, "*auditRepository.Each", builder, fn)
}

func (r *auditRepository) Since(ctx context.Context, since time.Time) ([]models.AuditEntry, error) {
	builder := r.db.builder.
		Select(auditColumns...).
		From(models.AuditEntry{}.TableName()).
		Where(sq.GtOrEq{"timestamp": since.UTC()}).
		OrderBy("id ASC")

	entries := make([]models.AuditEntry, 0)
	err := r.each(ctx, "*auditRepository.Since", builder, func(entry models.AuditEntry) error {
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *auditRepository) each(ctx context.Context, funcName string, builder sq.SelectBuilder, fn func(entry models.AuditEntry) error) error {
	log := logger.FromContext(ctx)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to query audit log")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry   models.AuditEntry
			action  string
			outcome string
		)

		if scanErr := rows.Scan(
			&entry.ID,
			&entry.ActorID,
			&entry.ActorRole,
			&action,
			&outcome,
			&entry.Timestamp,
			&entry.Detail,
		); scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan audit row")
			return fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		entry.Action = models.AuditAction(action)
		entry.Outcome = models.AuditOutcome(outcome)
		entry.Timestamp = entry.Timestamp.UTC()

		if err = fn(entry); err != nil {
			return err
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", funcName).Msg("error iterating audit rows")
		return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return nil
}
