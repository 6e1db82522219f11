package utils

import "github.com/google/uuid"

// NewTraceID returns a time-ordered UUIDv7 for the X-Trace-ID header of an
// outbound request. A random UUIDv4 is used if the v7 clock source fails.
func NewTraceID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
