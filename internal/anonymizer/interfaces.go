package anonymizer

import (
	"context"

	"github.com/MKhiriev/go-privacy-keeper/models"
)

// Engine writes shadow fields into the record store.
type Engine interface {
	// AnonymizeOne derives and stores the shadow fields of the subject with
	// id. Applying it again yields the same values.
	AnonymizeOne(ctx context.Context, id int64) error

	// AnonymizeAll applies AnonymizeOne to every stored subject. A failure on
	// one record is logged and the sweep goes on; the number of records
	// anonymized is returned.
	AnonymizeAll(ctx context.Context) (int, error)

	// AnonymizeWithin stores the shadow fields of an already loaded subject.
	// When ctx carries a transaction the write joins it.
	AnonymizeWithin(ctx context.Context, subject models.Subject) error
}
