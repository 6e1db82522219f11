package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-privacy-keeper/models"
)

// AuthService is the authentication collaborator. The governance core trusts
// the actor it returns.
type AuthService interface {
	// Authenticate checks username and password and returns the caller's
	// identity. Any mismatch yields [ErrAuthFailure].
	Authenticate(ctx context.Context, username, password string) (models.Actor, error)

	// RegisterUser stores a new login identity with a hashed password.
	RegisterUser(ctx context.Context, username, password string, role models.Role) (models.User, error)

	// SeedDefaultUsers creates the default admin, doctor and receptionist
	// accounts when no user exists yet.
	SeedDefaultUsers(ctx context.Context) error

	CreateToken(ctx context.Context, actor models.Actor) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// RetentionService computes expiry dates and removes expired subjects.
// "Today" is the UTC calendar day of the service clock; a subject expires
// on its retention date.
type RetentionService interface {
	// SetRetention sets the retention date of subject id to today + days.
	// days must be positive.
	SetRetention(ctx context.Context, id int64, days int) (string, error)

	// ListExpired returns every expired subject in ascending id order,
	// labelled with its shadow name.
	ListExpired(ctx context.Context) ([]models.ExpiredSubject, error)

	// PurgeExpired hard-deletes every expired subject in one transaction and
	// returns the deleted ids.
	PurgeExpired(ctx context.Context) ([]int64, error)
}

// GovernanceService is the single entry point for privileged operations.
// Every call takes the authenticated actor explicitly and appends exactly
// one audit entry, except calls rejected with [ErrInvalidArgument].
type GovernanceService interface {
	Authenticate(ctx context.Context, username, password string) (models.Actor, error)

	AddSubject(ctx context.Context, actor models.Actor, subject models.NewSubject) (int64, error)
	GetView(ctx context.Context, actor models.Actor) ([]models.SubjectView, error)
	GetViewOne(ctx context.Context, actor models.Actor, id int64) (models.SubjectView, error)

	AnonymizeAll(ctx context.Context, actor models.Actor) (int, error)

	EncryptSubject(ctx context.Context, actor models.Actor, id int64) error
	DecryptSubject(ctx context.Context, actor models.Actor, id int64) (models.DecryptedSubject, error)
	RestoreSubject(ctx context.Context, actor models.Actor, id int64) error

	SetRetention(ctx context.Context, actor models.Actor, id int64, days int) error
	SetConsent(ctx context.Context, actor models.Actor, id int64, given bool) error
	ListExpired(ctx context.Context, actor models.Actor) ([]models.ExpiredSubject, error)
	PurgeExpired(ctx context.Context, actor models.Actor) (int, error)

	GetAuditLog(ctx context.Context, actor models.Actor, limit int) ([]models.AuditEntry, error)
	ExportAuditLog(ctx context.Context, actor models.Actor, w io.Writer) error
	ActivityStats(ctx context.Context, actor models.Actor, days int) ([]models.ActivityStat, error)
}

// GovernanceServiceWrapper defines middleware composition for
// GovernanceService. Implementations wrap an existing GovernanceService to
// add behavior such as validating.
type GovernanceServiceWrapper interface {
	Wrap(GovernanceService) GovernanceService // returns a decorated GovernanceService applying additional behavior
}

// AppInfoService reports build information of the running server.
type AppInfoService interface {
	// GetAppVersion returns the configured application version.
	GetAppVersion(ctx context.Context) string

	// GetBuildInfo returns the version together with the build date and
	// commit; unknown values are reported as "N/A".
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
