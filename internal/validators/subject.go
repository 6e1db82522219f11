package validators

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-privacy-keeper/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldName targets the real name of a subject.
	FieldName = "name"

	// FieldContact targets the real contact of a subject.
	FieldContact = "contact"

	// FieldDiagnosis targets the sensitive field of a subject.
	FieldDiagnosis = "diagnosis"

	// FieldRetentionDays targets the days argument of a retention request.
	FieldRetentionDays = "days"

	// FieldUsername targets the username of a login request.
	FieldUsername = "username"

	// FieldPassword targets the password of a login request.
	FieldPassword = "password"
)

// Length limits, in runes, of subject fields.
const (
	MaxNameLength      = 200
	MaxContactLength   = 64
	MaxDiagnosisLength = 4000

	// MaxRetentionDays caps a retention period at one hundred years.
	MaxRetentionDays = 36500

	// MaxActivityDays caps the activity statistics window.
	MaxActivityDays = 366
)

// SubjectValidator implements [Validator] for the inputs of governance
// operations: new subjects, retention requests and login credentials.
type SubjectValidator struct{}

// NewSubjectValidator constructs a [SubjectValidator].
func NewSubjectValidator() Validator {
	return &SubjectValidator{}
}

// Validate dispatches on the dynamic type of obj.
//
// Supported types:
//   - models.NewSubject / *models.NewSubject
//   - models.RetentionRequest / *models.RetentionRequest
//   - models.User / *models.User (login credentials)
//
// Returns ErrUnsupportedType for anything else.
func (v *SubjectValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.NewSubject:
		return v.validateNewSubject(ctx, value, fields...)
	case *models.NewSubject:
		return v.validateNewSubject(ctx, *value, fields...)

	case models.RetentionRequest:
		return v.validateRetention(ctx, value, fields...)
	case *models.RetentionRequest:
		return v.validateRetention(ctx, *value, fields...)

	case models.User:
		return v.validateCredentials(ctx, value, fields...)
	case *models.User:
		return v.validateCredentials(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateNewSubject checks name, contact and diagnosis by default.
// The diagnosis may be empty.
func (v *SubjectValidator) validateNewSubject(_ context.Context, subject models.NewSubject, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldContact, FieldDiagnosis}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(subject.Name) == "" {
				return ErrEmptyName
			}
			if utf8.RuneCountInString(subject.Name) > MaxNameLength {
				return ErrNameTooLong
			}
			if hasControl(subject.Name) {
				return ErrControlCharacters
			}
		case FieldContact:
			if strings.TrimSpace(subject.Contact) == "" {
				return ErrEmptyContact
			}
			if utf8.RuneCountInString(subject.Contact) > MaxContactLength {
				return ErrContactTooLong
			}
			if hasControl(subject.Contact) {
				return ErrControlCharacters
			}
		case FieldDiagnosis:
			if utf8.RuneCountInString(subject.Diagnosis) > MaxDiagnosisLength {
				return ErrDiagnosisTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SubjectValidator) validateRetention(_ context.Context, req models.RetentionRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRetentionDays}
	}

	for _, f := range fields {
		switch f {
		case FieldRetentionDays:
			if req.Days == nil {
				continue
			}
			if err := ValidateRetentionDays(*req.Days); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SubjectValidator) validateCredentials(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if strings.TrimSpace(user.Username) == "" {
				return ErrEmptyCredentials
			}
		case FieldPassword:
			if user.Password == "" {
				return ErrEmptyCredentials
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// ValidateSubjectID rejects non-positive ids.
func ValidateSubjectID(id int64) error {
	if id <= 0 {
		return ErrInvalidSubjectID
	}
	return nil
}

// ValidateRetentionDays rejects zero, negative and absurdly large periods.
func ValidateRetentionDays(days int) error {
	if days <= 0 {
		return ErrInvalidRetention
	}
	if days > MaxRetentionDays {
		return ErrRetentionTooLong
	}
	return nil
}

// ValidateAuditLimit rejects negative limits. Zero means no limit.
func ValidateAuditLimit(limit int) error {
	if limit < 0 {
		return ErrInvalidAuditLimit
	}
	return nil
}

// ValidateActivityDays checks the window of an activity statistics request.
func ValidateActivityDays(days int) error {
	if days < 1 || days > MaxActivityDays {
		return ErrInvalidActivityDay
	}
	return nil
}

func hasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}
