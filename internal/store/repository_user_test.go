package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

// ── sqlmock ───────────────────────────────────────────────────────────────────

func TestCreateUser_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	user := models.User{Username: "john", Password: "secret", PasswordHash: "hash", Role: models.RoleDoctor}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (username,password_hash,role) VALUES ($1,$2,$3) RETURNING user_id")).
		WithArgs("john", "hash", "doctor").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1))

	created, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, "john", created.Username)
	assert.Empty(t, created.Password, "plaintext password is never returned")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "john", PasswordHash: "hash", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)
}

func TestCreateUser_OtherError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "john"})
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrLoginAlreadyExists)
}

func TestFindUserByUsername_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, username, password_hash, role FROM users WHERE username = $1")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "username", "password_hash", "role"}).
			AddRow(3, "alice", "hash", "receptionist"))

	user, err := repo.FindUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.UserID)
	assert.Equal(t, models.RoleReceptionist, user.Role)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT user_id").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "username", "password_hash", "role"}))

	_, err := repo.FindUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestFindUserByUsername_UnknownRoleFailsClosed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT user_id").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "username", "password_hash", "role"}).
			AddRow(9, "mallory", "hash", "superuser"))

	user, err := repo.FindUserByUsername(context.Background(), "mallory")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUnknown, user.Role)
}

func TestCountUsers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

// ── sqlite ────────────────────────────────────────────────────────────────────

func TestUserRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestSQLite(t), logger.Nop())

	count, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	created, err := repo.CreateUser(ctx, models.User{Username: "dr_bob", PasswordHash: "h", Role: models.RoleDoctor})
	require.NoError(t, err)
	assert.Positive(t, created.UserID)

	_, err = repo.CreateUser(ctx, models.User{Username: "dr_bob", PasswordHash: "h2", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)

	found, err := repo.FindUserByUsername(ctx, "dr_bob")
	require.NoError(t, err)
	assert.Equal(t, created.UserID, found.UserID)
	assert.Equal(t, models.RoleDoctor, found.Role)

	count, err = repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
