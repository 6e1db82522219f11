package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

// ── sqlite ────────────────────────────────────────────────────────────────────

func TestSubjectRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSubjectRepository(newTestSQLite(t), logger.Nop())

	in := newSubject("John Doe", "0300-1234567", "Diabetes")
	in.ConsentGiven = true

	id, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, "John Doe", got.Name)
	assert.Equal(t, "0300-1234567", got.Contact)
	assert.Equal(t, "Diabetes", got.Diagnosis)
	assert.True(t, got.ConsentGiven)
	assert.False(t, got.Encrypted)
	assert.Nil(t, got.AnonName)
	assert.Nil(t, got.AnonContact)
	assert.Nil(t, got.RetentionDate)
	assert.True(t, in.CreatedAt.Equal(got.CreatedAt))
}

func TestSubjectRepository_GetUnknown(t *testing.T) {
	repo := NewSubjectRepository(newTestSQLite(t), logger.Nop())

	_, err := repo.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrSubjectNotFound)
}

func TestSubjectRepository_IDsAreNeverReused(t *testing.T) {
	ctx := context.Background()
	repo := NewSubjectRepository(newTestSQLite(t), logger.Nop())

	expired := newSubject("A", "1", "x")
	expired.RetentionDate = date(t, "2026-01-01")

	first, err := repo.Create(ctx, expired)
	require.NoError(t, err)

	deleted, err := repo.DeleteExpired(ctx, "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, []int64{first}, deleted)

	second, err := repo.Create(ctx, newSubject("B", "2", "y"))
	require.NoError(t, err)
	assert.Greater(t, second, first)
}

func TestSubjectRepository_RetentionFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewSubjectRepository(newTestSQLite(t), logger.Nop())
	today := "2026-05-10"

	forever := newSubject("Forever", "1", "a")

	yesterday := newSubject("Yesterday", "2", "b")
	yesterday.RetentionDate = date(t, "2026-05-09")

	onToday := newSubject("Today", "3", "c")
	onToday.RetentionDate = date(t, today)

	tomorrow := newSubject("Tomorrow", "4", "d")
	tomorrow.RetentionDate = date(t, "2026-05-11")

	ids := make([]int64, 0, 4)
	for _, s := range []models.Subject{forever, yesterday, onToday, tomorrow} {
		id, err := repo.Create(ctx, s)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	active, err := repo.ListActive(ctx, today)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, ids[0], active[0].ID)
	assert.Equal(t, ids[3], active[1].ID)

	expired, err := repo.ListExpired(ctx, today)
	require.NoError(t, err)
	require.Len(t, expired, 2)
	assert.Equal(t, ids[1], expired[0].ID)
	assert.Equal(t, ids[2], expired[1].ID)
	assert.Equal(t, today, models.FormatDate(*expired[1].RetentionDate))

	_, err = repo.GetActive(ctx, ids[2], today)
	assert.ErrorIs(t, err, ErrSubjectNotFound)

	got, err := repo.GetActive(ctx, ids[3], today)
	require.NoError(t, err)
	assert.Equal(t, "Tomorrow", got.Name)

	// expired subjects can no longer be changed
	assert.ErrorIs(t, repo.SetRetention(ctx, ids[1], "2030-01-01", today), ErrSubjectNotFound)
	assert.ErrorIs(t, repo.SetConsent(ctx, ids[1], true, today), ErrSubjectNotFound)

	deleted, err := repo.DeleteExpired(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, []int64{ids[1], ids[2]}, deleted)

	again, err := repo.DeleteExpired(ctx, today)
	require.NoError(t, err)
	assert.Empty(t, again)

	all, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{ids[0], ids[3]}, all)
}

func TestSubjectRepository_SetShadow(t *testing.T) {
	ctx := context.Background()
	repo := NewSubjectRepository(newTestSQLite(t), logger.Nop())

	id, err := repo.Create(ctx, newSubject("John Doe", "0300-1234567", "Diabetes"))
	require.NoError(t, err)

	require.NoError(t, repo.SetShadow(ctx, id, "ANON_1", "XXX-XXX-4567"))

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.AnonName)
	require.NotNil(t, got.AnonContact)
	assert.Equal(t, "ANON_1", *got.AnonName)
	assert.Equal(t, "XXX-XXX-4567", *got.AnonContact)
	assert.Equal(t, "John Doe", got.Name, "real identity fields are untouched")

	assert.ErrorIs(t, repo.SetShadow(ctx, 999, "ANON_999", "XXX-XXX-XXXX"), ErrSubjectNotFound)
}

func TestSubjectRepository_ReplaceFieldsIsConditional(t *testing.T) {
	ctx := context.Background()
	repo := NewSubjectRepository(newTestSQLite(t), logger.Nop())

	id, err := repo.Create(ctx, newSubject("John Doe", "0300-1234567", "Diabetes"))
	require.NoError(t, err)

	sealed := models.Subject{ID: id, Name: "c1", Contact: "c2", Diagnosis: "c3", Encrypted: true}
	require.NoError(t, repo.ReplaceFields(ctx, sealed))

	// already encrypted: the stored flag no longer matches
	assert.ErrorIs(t, repo.ReplaceFields(ctx, sealed), ErrConditionNotMet)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.Encrypted)
	assert.Equal(t, "c1", got.Name)

	opened := models.Subject{ID: id, Name: "John Doe", Contact: "0300-1234567", Diagnosis: "Diabetes"}
	require.NoError(t, repo.ReplaceFields(ctx, opened))
	assert.ErrorIs(t, repo.ReplaceFields(ctx, opened), ErrConditionNotMet)

	assert.ErrorIs(t, repo.ReplaceFields(ctx, models.Subject{ID: 404, Encrypted: true}), ErrConditionNotMet)
}

func TestSubjectRepository_SetRetentionAndConsent(t *testing.T) {
	ctx := context.Background()
	repo := NewSubjectRepository(newTestSQLite(t), logger.Nop())

	id, err := repo.Create(ctx, newSubject("John Doe", "0300-1234567", "Diabetes"))
	require.NoError(t, err)

	require.NoError(t, repo.SetRetention(ctx, id, "2026-06-09", "2026-05-10"))
	require.NoError(t, repo.SetRetention(ctx, id, "2026-07-01", "2026-05-10"))
	require.NoError(t, repo.SetConsent(ctx, id, true, "2026-05-10"))

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.RetentionDate)
	assert.Equal(t, "2026-07-01", models.FormatDate(*got.RetentionDate), "last write wins")
	assert.True(t, got.ConsentGiven)

	assert.ErrorIs(t, repo.SetRetention(ctx, 404, "2026-07-01", "2026-05-10"), ErrSubjectNotFound)
	assert.ErrorIs(t, repo.SetConsent(ctx, 404, false, "2026-05-10"), ErrSubjectNotFound)
}

func TestTransactor_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	db := newTestSQLite(t)
	repo := NewSubjectRepository(db, logger.Nop())
	tx := NewTransactor(db)

	boom := errors.New("boom")
	err := tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, newSubject("Rolled Back", "1", "x")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	err = tx.RunInTx(ctx, func(ctx context.Context) error {
		_, err := repo.Create(ctx, newSubject("Committed", "1", "x"))
		return err
	})
	require.NoError(t, err)

	ids, err = repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestTransactor_NestedCallJoinsOuterTransaction(t *testing.T) {
	ctx := context.Background()
	db := newTestSQLite(t)
	repo := NewSubjectRepository(db, logger.Nop())
	tx := NewTransactor(db)

	boom := errors.New("boom")
	err := tx.RunInTx(ctx, func(ctx context.Context) error {
		innerErr := tx.RunInTx(ctx, func(ctx context.Context) error {
			_, err := repo.Create(ctx, newSubject("Inner", "1", "x"))
			return err
		})
		require.NoError(t, innerErr)
		return boom
	})
	require.ErrorIs(t, err, boom)

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "inner work is rolled back with the outer transaction")
}

// ── sqlmock ───────────────────────────────────────────────────────────────────

func TestSubjectRepository_Create_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubjectRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO subjects")).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), newSubject("A", "1", "x"))
	assert.ErrorIs(t, err, ErrExecutingQuery)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepository_Create_UsesDollarPlaceholders(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubjectRepository(db, logger.Nop())

	s := newSubject("A", "1", "x")
	mock.ExpectQuery(regexp.QuoteMeta("VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id")).
		WithArgs("A", "1", "x", false, false, nil, s.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := repo.Create(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepository_SetShadow_ExecError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubjectRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE subjects SET anon_name")).
		WillReturnError(errors.New("disk full"))

	err := repo.SetShadow(context.Background(), 1, "ANON_1", "XXX-XXX-XXXX")
	assert.ErrorIs(t, err, ErrExecutingStatement)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepository_ListActive_ScanError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubjectRepository(db, logger.Nop())

	// intentionally wrong shape → scan error
	mock.ExpectQuery(regexp.QuoteMeta("FROM subjects")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	_, err := repo.ListActive(context.Background(), "2026-01-01")
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestSubjectRepository_GetActive_ParsesRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubjectRepository(db, logger.Nop())

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM subjects WHERE (id = $1 AND (retention_date IS NULL OR retention_date > $2))")).
		WithArgs(int64(3), "2026-01-10").
		WillReturnRows(sqlmock.NewRows(subjectColumns).
			AddRow(3, "n", "c", "d", "ANON_3", "XXX-XXX-XXXX", true, false, "2026-02-01", created))

	got, err := repo.GetActive(context.Background(), 3, "2026-01-10")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	assert.True(t, got.Encrypted)
	require.NotNil(t, got.AnonName)
	assert.Equal(t, "ANON_3", *got.AnonName)
	require.NotNil(t, got.RetentionDate)
	assert.Equal(t, "2026-02-01", models.FormatDate(*got.RetentionDate))
	assert.Equal(t, created, got.CreatedAt)
}
