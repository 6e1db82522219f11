package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyName          = errors.New("name is required")
	ErrNameTooLong        = errors.New("name is too long")
	ErrEmptyContact       = errors.New("contact is required")
	ErrContactTooLong     = errors.New("contact is too long")
	ErrDiagnosisTooLong   = errors.New("diagnosis is too long")
	ErrControlCharacters  = errors.New("value contains control characters")
	ErrInvalidSubjectID   = errors.New("subject id must be positive")
	ErrInvalidRetention   = errors.New("retention days must be positive")
	ErrRetentionTooLong   = errors.New("retention period is too long")
	ErrInvalidAuditLimit  = errors.New("audit limit must not be negative")
	ErrInvalidActivityDay = errors.New("activity window must be between 1 and 366 days")
	ErrEmptyCredentials   = errors.New("username and password are required")
)
