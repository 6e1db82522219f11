package models

import "time"

// DateLayout is the calendar-date format used for retention dates both in
// storage and on the wire.
const DateLayout = "2006-01-02"

// EncryptionState is the record-level encryption state of a subject.
type EncryptionState int

const (
	// Plaintext means identity and sensitive fields hold readable values.
	Plaintext EncryptionState = iota
	// Encrypted means identity and sensitive fields hold ciphertext.
	Encrypted
)

// String implements [fmt.Stringer].
func (s EncryptionState) String() string {
	if s == Encrypted {
		return "encrypted"
	}
	return "plaintext"
}

// Subject is one person's governed record as persisted in the "subjects"
// table. Name, Contact and Diagnosis hold plaintext or ciphertext depending
// on Encrypted; the two states are never mixed within one record.
type Subject struct {
	ID int64

	Name      string
	Contact   string
	Diagnosis string

	// AnonName and AnonContact are nil until anonymization has run once.
	AnonName    *string
	AnonContact *string

	Encrypted    bool
	ConsentGiven bool

	// RetentionDate is nil when the record is retained indefinitely.
	RetentionDate *time.Time

	CreatedAt time.Time
}

// TableName returns the name of the database table associated with Subject.
func (s Subject) TableName() string {
	return "subjects"
}

// State returns the record-level encryption state.
func (s Subject) State() EncryptionState {
	if s.Encrypted {
		return Encrypted
	}
	return Plaintext
}

// ExpiredOn reports whether the record's retention date is on or before the
// calendar day of today.
func (s Subject) ExpiredOn(today time.Time) bool {
	if s.RetentionDate == nil {
		return false
	}
	return !Date(*s.RetentionDate).After(Date(today))
}

// Anonymized reports whether both shadow fields are present.
func (s Subject) Anonymized() bool {
	return s.AnonName != nil && s.AnonContact != nil
}

// NewSubject carries the caller-supplied fields of a subject to be registered.
type NewSubject struct {
	Name         string `json:"name"`
	Contact      string `json:"contact"`
	Diagnosis    string `json:"diagnosis"`
	ConsentGiven bool   `json:"consent_given"`
}

// SubjectView is the role-projected shape of a subject. Every field except
// ID is optional; fields the caller's role may not see stay nil and are
// omitted from JSON.
type SubjectView struct {
	ID int64 `json:"id"`

	Name      *string `json:"name,omitempty"`
	Contact   *string `json:"contact,omitempty"`
	Diagnosis *string `json:"diagnosis,omitempty"`

	AnonName    *string `json:"anon_name,omitempty"`
	AnonContact *string `json:"anon_contact,omitempty"`

	Encrypted     *bool   `json:"encrypted,omitempty"`
	ConsentGiven  *bool   `json:"consent_given,omitempty"`
	RetentionDate *string `json:"retention_date,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// DecryptedSubject is the result of an explicit, audited decrypt-for-view.
type DecryptedSubject struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Diagnosis string `json:"diagnosis"`
}

// ExpiredSubject describes a record whose retention date has passed.
// Label is the shadow name; real names are never surfaced by expiry checks.
type ExpiredSubject struct {
	ID            int64  `json:"id"`
	Label         string `json:"label"`
	RetentionDate string `json:"retention_date"`
}

// Date truncates t to its UTC calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders the UTC calendar day of t using [DateLayout].
func FormatDate(t time.Time) string {
	return Date(t).Format(DateLayout)
}

// ParseDate parses a [DateLayout] string into a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
