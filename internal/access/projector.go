// Package access shapes subject records into the view a role may see.
//
// Projection fails closed: a role without a read capability gets nothing.
// Ciphertext is projected as stored; nothing is decrypted here.
package access

import "github.com/MKhiriev/go-privacy-keeper/models"

// Project returns the fields of subject visible to role. The boolean is
// false when role may not read subjects at all.
func Project(role models.Role, subject models.Subject) (models.SubjectView, bool) {
	caps := role.Capabilities()
	if caps&(models.CapFullRead|models.CapDiagnosisRead|models.CapShadowRead) == 0 {
		return models.SubjectView{}, false
	}

	view := models.SubjectView{ID: subject.ID}

	if caps&models.CapFullRead != 0 {
		view.Name = ptr(subject.Name)
		view.Contact = ptr(subject.Contact)
		view.Encrypted = ptr(subject.Encrypted)
		view.ConsentGiven = ptr(subject.ConsentGiven)
		if subject.RetentionDate != nil {
			view.RetentionDate = ptr(models.FormatDate(*subject.RetentionDate))
		}
	}

	if caps&models.CapShadowRead != 0 {
		view.AnonName = copyPtr(subject.AnonName)
		view.AnonContact = copyPtr(subject.AnonContact)
		view.CreatedAt = ptr(subject.CreatedAt.UTC())
	}

	if caps&models.CapDiagnosisRead != 0 {
		view.Diagnosis = ptr(subject.Diagnosis)
	}

	return view, true
}

// ProjectMany projects every subject in order. It returns an empty slice for
// a role without read access.
func ProjectMany(role models.Role, subjects []models.Subject) []models.SubjectView {
	views := make([]models.SubjectView, 0, len(subjects))
	for _, subject := range subjects {
		view, ok := Project(role, subject)
		if !ok {
			return []models.SubjectView{}
		}
		views = append(views, view)
	}
	return views
}

func ptr[T any](v T) *T {
	return &v
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return ptr(*p)
}
