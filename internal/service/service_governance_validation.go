package service

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-privacy-keeper/internal/validators"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

// GovernanceValidationService rejects malformed arguments with
// [ErrInvalidArgument] before they reach the wrapped service, so rejected
// calls leave no audit entry.
type GovernanceValidationService struct {
	inner     GovernanceService
	validator validators.Validator
}

func NewGovernanceValidationService() GovernanceServiceWrapper {
	return &GovernanceValidationService{
		validator: validators.NewSubjectValidator(),
	}
}

func (v *GovernanceValidationService) Authenticate(ctx context.Context, username, password string) (models.Actor, error) {
	if err := v.validator.Validate(ctx, models.User{Username: username, Password: password}); err != nil {
		return models.Actor{}, invalid(err)
	}

	return v.inner.Authenticate(ctx, username, password)
}

func (v *GovernanceValidationService) AddSubject(ctx context.Context, actor models.Actor, subject models.NewSubject) (int64, error) {
	if err := v.validator.Validate(ctx, subject); err != nil {
		return 0, invalid(err)
	}

	return v.inner.AddSubject(ctx, actor, subject)
}

func (v *GovernanceValidationService) GetView(ctx context.Context, actor models.Actor) ([]models.SubjectView, error) {
	return v.inner.GetView(ctx, actor)
}

func (v *GovernanceValidationService) GetViewOne(ctx context.Context, actor models.Actor, id int64) (models.SubjectView, error) {
	if err := validators.ValidateSubjectID(id); err != nil {
		return models.SubjectView{}, invalid(err)
	}

	return v.inner.GetViewOne(ctx, actor, id)
}

func (v *GovernanceValidationService) AnonymizeAll(ctx context.Context, actor models.Actor) (int, error) {
	return v.inner.AnonymizeAll(ctx, actor)
}

func (v *GovernanceValidationService) EncryptSubject(ctx context.Context, actor models.Actor, id int64) error {
	if err := validators.ValidateSubjectID(id); err != nil {
		return invalid(err)
	}

	return v.inner.EncryptSubject(ctx, actor, id)
}

func (v *GovernanceValidationService) DecryptSubject(ctx context.Context, actor models.Actor, id int64) (models.DecryptedSubject, error) {
	if err := validators.ValidateSubjectID(id); err != nil {
		return models.DecryptedSubject{}, invalid(err)
	}

	return v.inner.DecryptSubject(ctx, actor, id)
}

func (v *GovernanceValidationService) RestoreSubject(ctx context.Context, actor models.Actor, id int64) error {
	if err := validators.ValidateSubjectID(id); err != nil {
		return invalid(err)
	}

	return v.inner.RestoreSubject(ctx, actor, id)
}

func (v *GovernanceValidationService) SetRetention(ctx context.Context, actor models.Actor, id int64, days int) error {
	if err := validators.ValidateSubjectID(id); err != nil {
		return invalid(err)
	}
	if err := v.validator.Validate(ctx, models.RetentionRequest{Days: &days}); err != nil {
		return invalid(err)
	}

	return v.inner.SetRetention(ctx, actor, id, days)
}

func (v *GovernanceValidationService) SetConsent(ctx context.Context, actor models.Actor, id int64, given bool) error {
	if err := validators.ValidateSubjectID(id); err != nil {
		return invalid(err)
	}

	return v.inner.SetConsent(ctx, actor, id, given)
}

func (v *GovernanceValidationService) ListExpired(ctx context.Context, actor models.Actor) ([]models.ExpiredSubject, error) {
	return v.inner.ListExpired(ctx, actor)
}

func (v *GovernanceValidationService) PurgeExpired(ctx context.Context, actor models.Actor) (int, error) {
	return v.inner.PurgeExpired(ctx, actor)
}

func (v *GovernanceValidationService) GetAuditLog(ctx context.Context, actor models.Actor, limit int) ([]models.AuditEntry, error) {
	if err := validators.ValidateAuditLimit(limit); err != nil {
		return nil, invalid(err)
	}

	return v.inner.GetAuditLog(ctx, actor, limit)
}

func (v *GovernanceValidationService) ExportAuditLog(ctx context.Context, actor models.Actor, w io.Writer) error {
	if w == nil {
		return fmt.Errorf("%w: nil writer", ErrInvalidArgument)
	}

	return v.inner.ExportAuditLog(ctx, actor, w)
}

func (v *GovernanceValidationService) ActivityStats(ctx context.Context, actor models.Actor, days int) ([]models.ActivityStat, error) {
	if err := validators.ValidateActivityDays(days); err != nil {
		return nil, invalid(err)
	}

	return v.inner.ActivityStats(ctx, actor, days)
}

func (v *GovernanceValidationService) Wrap(wrapped GovernanceService) GovernanceService {
	v.inner = wrapped
	return v
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}
