package service

import (
	"errors"
	"fmt"
)

// Error kinds returned by governance operations. Callers match them with
// [errors.Is]; storage and driver errors never leave this package unwrapped.
var (
	ErrNotFound         = errors.New("subject not found")
	ErrAuthFailure      = errors.New("authentication failed")
	ErrForbidden        = fmt.Errorf("%w: role lacks the required capability", ErrAuthFailure)
	ErrAlreadyEncrypted = errors.New("subject is already encrypted")
	ErrAlreadyPlaintext = errors.New("subject is already in plaintext")
	ErrDecryption       = errors.New("stored ciphertext could not be decrypted")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrStorage          = errors.New("storage failure")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified   = errors.New("application version is not specified")
)

// kinds lists every error kind in matching order. ErrForbidden precedes
// ErrAuthFailure because it wraps it.
var kinds = []struct {
	err  error
	name string
}{
	{ErrInvalidArgument, "invalid_argument"},
	{ErrForbidden, "forbidden"},
	{ErrAuthFailure, "auth_failure"},
	{ErrNotFound, "not_found"},
	{ErrAlreadyEncrypted, "already_encrypted"},
	{ErrAlreadyPlaintext, "already_plaintext"},
	{ErrDecryption, "decryption_error"},
	{ErrStorage, "storage_error"},
}

// kindOf names the error kind of err for audit details. Unknown errors are
// reported as storage errors.
func kindOf(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "storage_error"
}

func hasKind(err error) bool {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return true
		}
	}
	return false
}
