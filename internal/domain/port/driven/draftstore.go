package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

// ErrDraftNotFound is returned by DraftStore.Delete when the owner has no
// draft with the given id.
var ErrDraftNotFound = errors.New("draft not found")

// DraftStore defines the driven port for local invoice-draft persistence.
// Every operation is scoped to an owner key.
type DraftStore interface {
	// Save inserts or replaces the draft identified by (OwnerKey, ID).
	Save(ctx context.Context, d model.DraftInvoice) error

	// Get returns (nil, nil) when the draft does not exist for that owner.
	Get(ctx context.Context, owner, id string) (*model.DraftInvoice, error)

	// List returns the owner's drafts, most recently updated first.
	List(ctx context.Context, owner string) ([]model.DraftInvoice, error)

	Delete(ctx context.Context, owner, id string) error
}
