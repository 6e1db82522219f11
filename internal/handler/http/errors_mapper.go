package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-privacy-keeper/internal/service"
)

// errorStatuses is checked in order. ErrForbidden wraps ErrAuthFailure and
// therefore precedes it.
var errorStatuses = []struct {
	err    error
	status int
}{
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidPathID, http.StatusBadRequest},
	{ErrInvalidQuery, http.StatusBadRequest},
	{ErrNoActor, http.StatusUnauthorized},

	{service.ErrInvalidArgument, http.StatusBadRequest},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrAuthFailure, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrAlreadyEncrypted, http.StatusConflict},
	{service.ErrAlreadyPlaintext, http.StatusConflict},
	{service.ErrDecryption, http.StatusUnprocessableEntity},
	{service.ErrStorage, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError hides internal details of server-side failures.
func messageFromError(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
