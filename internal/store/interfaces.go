package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-privacy-keeper/models"
)

// Transactor runs a function inside one database transaction. Repositories
// called with the ctx passed to fn take part in that transaction.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// SubjectRepository persists subject records in the "subjects" table.
//
// Methods taking today treat records whose retention date is on or before
// today as absent and report them as [ErrSubjectNotFound].
type SubjectRepository interface {
	// Create inserts a subject and returns its store-assigned id.
	Create(ctx context.Context, subject models.Subject) (int64, error)

	// Get returns the subject with id regardless of its retention date.
	Get(ctx context.Context, id int64) (models.Subject, error)

	// GetActive returns the subject with id unless it has expired.
	GetActive(ctx context.Context, id int64, today string) (models.Subject, error)

	// ListActive returns every unexpired subject in ascending id order.
	ListActive(ctx context.Context, today string) ([]models.Subject, error)

	// ListIDs returns the ids of every subject in ascending order.
	ListIDs(ctx context.Context) ([]int64, error)

	// SetShadow writes both shadow fields in a single UPDATE.
	SetShadow(ctx context.Context, id int64, anonName, anonContact string) error

	// ReplaceFields overwrites name, contact and diagnosis and sets the
	// encrypted flag to subject.Encrypted, but only while the stored flag
	// holds the opposite value. Otherwise it returns [ErrConditionNotMet].
	ReplaceFields(ctx context.Context, subject models.Subject) error

	// SetRetention overwrites the retention date of an unexpired subject.
	SetRetention(ctx context.Context, id int64, retentionDate, today string) error

	// SetConsent overwrites the consent flag of an unexpired subject.
	SetConsent(ctx context.Context, id int64, given bool, today string) error

	// ListExpired returns every expired subject in ascending id order.
	ListExpired(ctx context.Context, today string) ([]models.Subject, error)

	// DeleteExpired hard-deletes every expired subject in one statement and
	// returns the deleted ids in ascending order.
	DeleteExpired(ctx context.Context, today string) ([]int64, error)
}

// AuditRepository appends to and reads the "audit_log" table. There is no
// update or delete.
type AuditRepository interface {
	// Append stores entry and returns its monotonic id.
	Append(ctx context.Context, entry models.AuditEntry) (int64, error)

	// List returns up to limit entries, most recent first. A non-positive
	// limit returns every entry.
	List(ctx context.Context, limit int) ([]models.AuditEntry, error)

	// Each calls fn for every entry in ascending id order and stops at the
	// first error fn returns.
	Each(ctx context.Context, fn func(entry models.AuditEntry) error) error

	// Since returns every entry recorded at or after since, oldest first.
	Since(ctx context.Context, since time.Time) ([]models.AuditEntry, error)
}

// UserRepository persists login identities in the "users" table.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	CountUsers(ctx context.Context) (int64, error)
}
