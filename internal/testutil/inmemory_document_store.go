package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/fakturo/fakturo/internal/domain/document"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/types"
)

// InMemoryDocumentStore mirrors the postgres repository's behavior closely
// enough for service tests: the (tenant, kind, sequence_no) uniqueness
// constraint fails with a sequence conflict, and reads hand out deep copies
// so callers can never mutate stored state through a returned pointer.
type InMemoryDocumentStore struct {
	mu        sync.Mutex
	documents map[string]*document.Document

	// ConflictsToInject makes the next n creates fail with a sequence
	// conflict regardless of the allocated number, to exercise the
	// allocate-retry path deterministically.
	ConflictsToInject int
}

func NewInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		documents: make(map[string]*document.Document),
	}
}

func deepCopyDocument(d *document.Document) *document.Document {
	copied := *d
	copied.Items = nil
	for _, item := range d.Items {
		itemCopy := *item
		copied.Items = append(copied.Items, &itemCopy)
	}
	if d.SentAt != nil {
		sentAt := *d.SentAt
		copied.SentAt = &sentAt
	}
	return &copied
}

func (s *InMemoryDocumentStore) sequenceConflict(doc *document.Document) error {
	return ierr.NewError("duplicate document number").
		WithHint("Document number was taken by a concurrent writer").
		WithReportableDetails(map[string]any{
			"number": doc.Number,
			"kind":   doc.Kind,
		}).
		Mark(ierr.ErrSequenceConflict)
}

func (s *InMemoryDocumentStore) CreateWithItems(ctx context.Context, doc *document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ConflictsToInject > 0 {
		s.ConflictsToInject--
		return s.sequenceConflict(doc)
	}

	for _, existing := range s.documents {
		if existing.TenantID == doc.TenantID && existing.Kind == doc.Kind && existing.SequenceNo == doc.SequenceNo {
			return s.sequenceConflict(doc)
		}
	}

	s.documents[doc.ID] = deepCopyDocument(doc)
	return nil
}

func (s *InMemoryDocumentStore) Get(ctx context.Context, tenantID, id string) (*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, exists := s.documents[id]; exists && doc.TenantID == tenantID {
		return deepCopyDocument(doc), nil
	}
	return nil, ierr.NewError("document not found").
		WithHintf("Document %s was not found", id).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryDocumentStore) List(ctx context.Context, tenantID string, filter document.ListFilter) ([]*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*document.Document
	for _, doc := range s.documents {
		if doc.TenantID != tenantID {
			continue
		}
		if filter.Kind != nil && doc.Kind != *filter.Kind {
			continue
		}
		if filter.DocStatus != nil && doc.DocStatus != *filter.DocStatus {
			continue
		}
		if filter.CustomerID != nil && doc.CustomerID != *filter.CustomerID {
			continue
		}
		result = append(result, deepCopyDocument(doc))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SequenceNo > result[j].SequenceNo })
	return result, nil
}

func (s *InMemoryDocumentStore) Update(ctx context.Context, doc *document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.documents[doc.ID]
	if !exists || existing.TenantID != doc.TenantID {
		return ierr.NewError("document not found").
			WithHintf("Document %s was not found", doc.ID).
			Mark(ierr.ErrNotFound)
	}

	updated := deepCopyDocument(doc)
	// Update does not touch line items, matching the SQL repository.
	updated.Items = existing.Items
	s.documents[doc.ID] = updated
	return nil
}

func (s *InMemoryDocumentStore) ReplaceItems(ctx context.Context, doc *document.Document) error {
	s.mu.Lock()
	if _, exists := s.documents[doc.ID]; !exists {
		s.mu.Unlock()
		return ierr.NewError("document not found").
			WithHintf("Document %s was not found", doc.ID).
			Mark(ierr.ErrNotFound)
	}
	s.documents[doc.ID] = deepCopyDocument(doc)
	s.mu.Unlock()
	return nil
}

func (s *InMemoryDocumentStore) Delete(ctx context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists := s.documents[id]
	if !exists || doc.TenantID != tenantID {
		return ierr.NewError("document not found").
			WithHintf("Document %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	delete(s.documents, id)
	return nil
}

func (s *InMemoryDocumentStore) GetMaxSequence(ctx context.Context, tenantID string, kind types.DocumentKind) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var max int64
	for _, doc := range s.documents {
		if doc.TenantID == tenantID && doc.Kind == kind && doc.SequenceNo > max {
			max = doc.SequenceNo
		}
	}
	return max, nil
}

func (s *InMemoryDocumentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = make(map[string]*document.Document)
	s.ConflictsToInject = 0
}
