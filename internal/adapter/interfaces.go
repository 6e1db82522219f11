// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport used by the command-line client to
// talk to the go-privacy-keeper server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// commands from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrForbidden] for 403, [ErrConflict] for 409).
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-privacy-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the
// go-privacy-keeper server. Implementations are responsible for
// serialisation, authentication header management, and mapping
// transport-level errors to the sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Login authenticates with username and password. On success the bearer
	// token is stored via SetToken and returned together with the granted
	// role.
	Login(ctx context.Context, credentials models.User) (models.Token, error)

	// Version returns the server application version.
	Version(ctx context.Context) (string, error)

	// AddSubject registers a new subject and returns its identifier.
	AddSubject(ctx context.Context, subject models.NewSubject) (int64, error)

	// ListSubjects returns every active subject projected for the caller's
	// role.
	ListSubjects(ctx context.Context) ([]models.SubjectView, error)

	// GetSubject returns one subject projected for the caller's role.
	GetSubject(ctx context.Context, id int64) (models.SubjectView, error)

	// AnonymizeAll runs an anonymization sweep and returns the number of
	// records processed.
	AnonymizeAll(ctx context.Context) (int, error)

	// EncryptSubject encrypts the identity and sensitive fields of a subject.
	EncryptSubject(ctx context.Context, id int64) error

	// DecryptSubject returns the plaintext fields of a subject without
	// changing its stored state.
	DecryptSubject(ctx context.Context, id int64) (models.DecryptedSubject, error)

	// RestoreSubject decrypts a subject in place.
	RestoreSubject(ctx context.Context, id int64) error

	// SetRetention sets the retention period of a subject. A nil days lets
	// the server apply its default period.
	SetRetention(ctx context.Context, id int64, days *int) error

	// SetConsent records whether the subject has given consent.
	SetConsent(ctx context.Context, id int64, given bool) error

	// ListExpired returns the subjects whose retention date has passed.
	ListExpired(ctx context.Context) ([]models.ExpiredSubject, error)

	// PurgeExpired deletes every expired subject and returns the count.
	PurgeExpired(ctx context.Context) (int, error)

	// AuditLog returns up to limit audit entries, most recent first. A zero
	// limit returns every entry.
	AuditLog(ctx context.Context, limit int) ([]models.AuditEntry, error)

	// ExportAuditLog streams the CSV export of the audit log into w.
	ExportAuditLog(ctx context.Context, w io.Writer) error

	// ActivityStats returns per-day audit counts for the last days days.
	ActivityStats(ctx context.Context, days int) ([]models.ActivityStat, error)
}
