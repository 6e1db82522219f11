package service

import (
	"time"

	"github.com/MKhiriev/go-privacy-keeper/models"
)

// Clock supplies the current time. Retention decisions and audit timestamps
// read it so tests can move through calendar days.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now implements [Clock].
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// today formats the UTC calendar day of clock's current time.
func today(clock Clock) string {
	return models.FormatDate(clock.Now())
}
