package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactor_RetriesRetryableFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := NewTransactor(db).RunInTx(context.Background(), func(ctx context.Context) error {
		calls++
		_, ok := TxFrom(ctx)
		require.True(t, ok)
		if calls == 1 {
			return fmt.Errorf("update subject: %w", pgError(pgerrcode.SerializationFailure))
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_GivesUpAfterMaxAttempts(t *testing.T) {
	db, mock := newMockDB(t)

	for range maxTxAttempts {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	calls := 0
	deadlock := pgError(pgerrcode.DeadlockDetected)
	err := NewTransactor(db).RunInTx(context.Background(), func(ctx context.Context) error {
		calls++
		return deadlock
	})

	assert.ErrorIs(t, err, deadlock)
	assert.Equal(t, maxTxAttempts, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_DoesNotRetryPermanentFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	calls := 0
	err := NewTransactor(db).RunInTx(context.Background(), func(ctx context.Context) error {
		calls++
		return pgError(pgerrcode.UniqueViolation)
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_BeginFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin().WillReturnError(errors.New("pool closed"))

	err := NewTransactor(db).RunInTx(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not run without a transaction")
		return nil
	})

	assert.ErrorIs(t, err, ErrBeginningTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_CommitFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))

	err := NewTransactor(db).RunInTx(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrCommitingTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}
