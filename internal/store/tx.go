package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
)

type txCtxKey struct{}

// WithTx stores a SQL transaction in context for downstream repository usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txCtxKey{}, tx)
}

// TxFrom extracts a SQL transaction from context if present.
func TxFrom(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txCtxKey{}).(*sql.Tx)
	return tx, ok
}

// sqlTransactor is the *sql.DB-backed implementation of [Transactor].
type sqlTransactor struct {
	db *DB
}

// NewTransactor returns a [Transactor] that opens transactions on db.
func NewTransactor(db *DB) Transactor {
	return &sqlTransactor{db: db}
}

const (
	maxTxAttempts = 3
	txRetryDelay  = 25 * time.Millisecond
)

// RunInTx implements [Transactor]. When ctx already carries a transaction fn
// joins it and the outer call owns commit and rollback.
//
// A top-level transaction that fails with an error the dialect classifies as
// [Retryable] (lock contention, serialization failure) is rolled back and run
// again, up to maxTxAttempts times in total.
func (t *sqlTransactor) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := TxFrom(ctx); ok {
		return fn(ctx)
	}

	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = t.runOnce(ctx, fn)
		if err == nil || t.db.Classify(err) != Retryable || attempt == maxTxAttempts {
			return err
		}

		log.Warn().Err(err).Str("func", "*sqlTransactor.RunInTx").Int("attempt", attempt).Msg("retrying transaction")

		select {
		case <-ctx.Done():
			return err
		case <-time.After(time.Duration(attempt) * txRetryDelay):
		}
	}

	return err
}

func (t *sqlTransactor) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	log := logger.FromContext(ctx)

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*sqlTransactor.runOnce").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = fn(WithTx(ctx, tx)); err != nil {
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "*sqlTransactor.runOnce").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}
