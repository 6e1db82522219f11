package anonymizer

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-privacy-keeper/internal/crypto"
	"github.com/MKhiriev/go-privacy-keeper/internal/logger"
	"github.com/MKhiriev/go-privacy-keeper/internal/store"
	"github.com/MKhiriev/go-privacy-keeper/models"
)

type engine struct {
	subjects store.SubjectRepository
	cipher   crypto.FieldCipher
	logger   *logger.Logger
}

// NewEngine constructs an [Engine]. cipher is used to read the contact of
// encrypted records.
func NewEngine(subjects store.SubjectRepository, cipher crypto.FieldCipher, logger *logger.Logger) Engine {
	logger.Debug().Msg("creating anonymization engine")
	return &engine{
		subjects: subjects,
		cipher:   cipher,
		logger:   logger,
	}
}

func (e *engine) AnonymizeOne(ctx context.Context, id int64) error {
	subject, err := e.subjects.Get(ctx, id)
	if err != nil {
		return err
	}

	return e.AnonymizeWithin(ctx, subject)
}

func (e *engine) AnonymizeAll(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	ids, err := e.subjects.ListIDs(ctx)
	if err != nil {
		log.Err(err).Str("func", "*engine.AnonymizeAll").Msg("failed to list subjects")
		return 0, err
	}

	count := 0
	for _, id := range ids {
		if err = ctx.Err(); err != nil {
			return count, err
		}

		if err = e.AnonymizeOne(ctx, id); err != nil {
			log.Err(err).Str("func", "*engine.AnonymizeAll").Int64("subject_id", id).Msg("failed to anonymize subject, skipping")
			continue
		}
		count++
	}

	log.Info().Str("func", "*engine.AnonymizeAll").Int("anonymized", count).Int("total", len(ids)).Msg("anonymization sweep finished")
	return count, nil
}

func (e *engine) AnonymizeWithin(ctx context.Context, subject models.Subject) error {
	contact := subject.Contact
	if subject.Encrypted {
		plain, err := e.cipher.Decrypt(contact)
		if err != nil {
			return fmt.Errorf("reading contact of subject %d: %w", subject.ID, err)
		}
		contact = plain
	}

	anonName, anonContact := Anonymize(subject.ID, subject.Name, contact)

	return e.subjects.SetShadow(ctx, subject.ID, anonName, anonContact)
}
