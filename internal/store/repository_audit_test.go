package store

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

func auditEntry(action models.AuditAction, at time.Time) models.AuditEntry {
	return models.AuditEntry{
		ActorID:   1,
		ActorRole: "admin",
		Action:    action,
		Outcome:   models.OutcomeSuccess,
		Timestamp: at,
		Detail:    "subject_id=1",
	}
}

func TestAuditRepository_AppendIsMonotonic(t *testing.T) {
	ctx := context.Background()
	repo := NewAuditRepository(newTestSQLite(t), logger.Nop())
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

	var last int64
	for i := 0; i < 5; i++ {
		id, err := repo.Append(ctx, auditEntry(models.ActionViewSubjects, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
		assert.Greater(t, id, last)
		last = id
	}
}

func TestAuditRepository_ListMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewAuditRepository(newTestSQLite(t), logger.Nop())
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

	actions := []models.AuditAction{models.ActionLogin, models.ActionAddSubject, models.ActionEncrypt}
	for i, action := range actions {
		_, err := repo.Append(ctx, auditEntry(action, base.Add(time.Duration(i)*time.Second)))
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, models.ActionEncrypt, all[0].Action)
	assert.Equal(t, models.ActionLogin, all[2].Action)
	assert.Equal(t, models.OutcomeSuccess, all[0].Outcome)
	assert.True(t, base.Add(2*time.Second).Equal(all[0].Timestamp))

	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, all[0].ID, limited[0].ID)
	assert.Equal(t, all[1].ID, limited[1].ID)
}

func TestAuditRepository_EachAndSince(t *testing.T) {
	ctx := context.Background()
	repo := NewAuditRepository(newTestSQLite(t), logger.Nop())

	day1 := time.Date(2026, 5, 8, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 5, 9, 12, 0, 0, 0, time.UTC)
	day3 := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{day1, day2, day3} {
		_, err := repo.Append(ctx, auditEntry(models.ActionViewSubjects, at))
		require.NoError(t, err)
	}

	var ids []int64
	require.NoError(t, repo.Each(ctx, func(entry models.AuditEntry) error {
		ids = append(ids, entry.ID)
		return nil
	}))
	assert.Len(t, ids, 3)
	assert.IsIncreasing(t, ids)

	stop := errors.New("stop")
	visited := 0
	err := repo.Each(ctx, func(models.AuditEntry) error {
		visited++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, visited)

	recent, err := repo.Since(ctx, time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.True(t, day2.Equal(recent[0].Timestamp))
	assert.True(t, day3.Equal(recent[1].Timestamp))
}

func TestAuditRepository_Append_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepository(db, logger.Nop())

	at := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("LOCK TABLE audit_log IN SHARE ROW EXCLUSIVE MODE")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT timestamp FROM audit_log ORDER BY id DESC LIMIT 1")).
		WillReturnRows(sqlmock.NewRows([]string{"timestamp"}))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO audit_log (actor_id,actor_role,action,outcome,timestamp,detail) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id")).
		WithArgs(int64(1), "admin", "encrypt_data", "success", at, "subject_id=1").
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	_, err := repo.Append(context.Background(), auditEntry(models.ActionEncrypt, at))
	assert.ErrorIs(t, err, ErrExecutingQuery)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepository_Append_RaisesStaleTimestamp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepository(db, logger.Nop())

	stale := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	latest := stale.Add(150 * time.Millisecond)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("LOCK TABLE audit_log")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT timestamp FROM audit_log ORDER BY id DESC LIMIT 1")).
		WillReturnRows(sqlmock.NewRows([]string{"timestamp"}).AddRow(latest))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO audit_log")).
		WithArgs(int64(1), "admin", "encrypt_data", "success", latest, "subject_id=1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	id, err := repo.Append(context.Background(), auditEntry(models.ActionEncrypt, stale))
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepository_Append_LockFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("LOCK TABLE audit_log")).
		WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	_, err := repo.Append(context.Background(), auditEntry(models.ActionEncrypt, time.Now()))
	assert.ErrorIs(t, err, ErrExecutingQuery)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A writer that read its clock before another session committed must not
// land after it with an earlier timestamp.
func TestAuditRepository_Append_OrderedBehindHeldTransaction(t *testing.T) {
	db := newTestSQLite(t)
	repo := NewAuditRepository(db, logger.Nop())
	ctx := context.Background()

	waiterRead := make(chan struct{})
	waiterDone := make(chan error, 1)

	err := NewTransactor(db).RunInTx(ctx, func(txCtx context.Context) error {
		go func() {
			at := time.Now()
			close(waiterRead)
			_, appendErr := repo.Append(ctx, auditEntry(models.ActionEncrypt, at))
			waiterDone <- appendErr
		}()

		<-waiterRead
		time.Sleep(50 * time.Millisecond)

		_, appendErr := repo.Append(txCtx, auditEntry(models.ActionViewSubjects, time.Now()))
		return appendErr
	})
	require.NoError(t, err)
	require.NoError(t, <-waiterDone)

	entries, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// List is most recent first.
	newer, older := entries[0], entries[1]
	assert.Equal(t, models.ActionViewSubjects, older.Action)
	assert.Equal(t, models.ActionEncrypt, newer.Action)
	assert.Greater(t, newer.ID, older.ID)
	assert.False(t, newer.Timestamp.Before(older.Timestamp),
		"entry %d at %s precedes entry %d at %s", newer.ID, newer.Timestamp, older.ID, older.Timestamp)
}

func TestAuditRepository_Append_ConcurrentWritersStayOrdered(t *testing.T) {
	db := newTestSQLite(t)
	repo := NewAuditRepository(db, logger.Nop())
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for range writers {
		wg.Go(func() {
			at := time.Now()
			_, err := repo.Append(ctx, auditEntry(models.ActionViewSubjects, at))
			errs <- err
		})
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var prev models.AuditEntry
	require.NoError(t, repo.Each(ctx, func(entry models.AuditEntry) error {
		if prev.ID != 0 {
			assert.Greater(t, entry.ID, prev.ID)
			assert.False(t, entry.Timestamp.Before(prev.Timestamp))
		}
		prev = entry
		return nil
	}))
	assert.NotZero(t, prev.ID)
}

func TestAuditRepository_List_UsesLimit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepository(db, logger.Nop())

	at := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM audit_log ORDER BY id DESC LIMIT 1")).
		WillReturnRows(sqlmock.NewRows(auditColumns).
			AddRow(7, 1, "admin", "delete_expired", "failure", at, "count=0"))

	entries, err := repo.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionPurgeExpired, entries[0].Action)
	assert.Equal(t, models.OutcomeFailure, entries[0].Outcome)
}

func TestAuditRepository_Since_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepository(db, logger.Nop())

	mock.ExpectQuery("FROM audit_log").WillReturnError(errors.New("boom"))

	_, err := repo.Since(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrExecutingQuery)
}
