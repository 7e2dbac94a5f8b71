package document

import (
	"context"

	"github.com/fakturo/fakturo/internal/types"
)

// ListFilter narrows List results. The tenant id is always passed explicitly
// and is never optional.
type ListFilter struct {
	Kind       *types.DocumentKind
	DocStatus  *types.DocumentStatus
	CustomerID *string
}

type Repository interface {
	// CreateWithItems persists a document and its line items atomically.
	// It must fail with a sequence-conflict error when another writer has
	// already taken the document's number for the same tenant and kind,
	// never silently persisting a duplicate number.
	CreateWithItems(ctx context.Context, doc *Document) error

	Get(ctx context.Context, tenantID, id string) (*Document, error)
	List(ctx context.Context, tenantID string, filter ListFilter) ([]*Document, error)
	Update(ctx context.Context, doc *Document) error

	// ReplaceItems swaps the document's line items for the given set and
	// persists the recomputed totals in the same transaction.
	ReplaceItems(ctx context.Context, doc *Document) error

	// Delete removes the document and cascades to its items.
	Delete(ctx context.Context, tenantID, id string) error

	// GetMaxSequence returns the highest allocated counter value for the
	// tenant and kind, or zero when nothing has been allocated yet.
	GetMaxSequence(ctx context.Context, tenantID string, kind types.DocumentKind) (int64, error)
}
