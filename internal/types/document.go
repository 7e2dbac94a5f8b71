package types

import (
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/samber/lo"
)

// DocumentKind identifies which kind of commercial document a record is.
type DocumentKind string

const (
	DocumentKindInvoice DocumentKind = "invoice"
	DocumentKindOffer   DocumentKind = "offer"
)

func (k DocumentKind) String() string {
	return string(k)
}

func (k DocumentKind) Validate() error {
	allowed := []DocumentKind{
		DocumentKindInvoice,
		DocumentKindOffer,
	}
	if !lo.Contains(allowed, k) {
		return ierr.NewError("invalid document kind").
			WithHint("Please provide a valid document kind").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DocumentStatus represents the current state of a document in its lifecycle.
//
// Invoices move draft -> sent -> paid. Overdue is derived from the due date
// while a document is sent; the stored overdue value exists only as a manual
// override target. Offers move draft -> sent -> accepted | rejected.
type DocumentStatus string

const (
	DocumentStatusDraft    DocumentStatus = "draft"
	DocumentStatusSent     DocumentStatus = "sent"
	DocumentStatusPaid     DocumentStatus = "paid"
	DocumentStatusOverdue  DocumentStatus = "overdue"
	DocumentStatusAccepted DocumentStatus = "accepted"
	DocumentStatusRejected DocumentStatus = "rejected"
)

func (s DocumentStatus) String() string {
	return string(s)
}

// statusesByKind lists every legal stored status per document kind.
var statusesByKind = map[DocumentKind][]DocumentStatus{
	DocumentKindInvoice: {
		DocumentStatusDraft,
		DocumentStatusSent,
		DocumentStatusPaid,
		DocumentStatusOverdue,
	},
	DocumentKindOffer: {
		DocumentStatusDraft,
		DocumentStatusSent,
		DocumentStatusAccepted,
		DocumentStatusRejected,
	},
}

// ValidateFor checks that the status is a legal stored status for the kind.
func (s DocumentStatus) ValidateFor(kind DocumentKind) error {
	allowed, ok := statusesByKind[kind]
	if !ok {
		return kind.Validate()
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid document status").
			WithHintf("Status %s is not valid for %s documents", s, kind).
			WithReportableDetails(map[string]any{
				"status":  s,
				"kind":    kind,
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// naturalEdges holds the non-override transitions of the lifecycle.
var naturalEdges = map[DocumentKind]map[DocumentStatus][]DocumentStatus{
	DocumentKindInvoice: {
		DocumentStatusDraft: {DocumentStatusSent},
		DocumentStatusSent:  {DocumentStatusPaid},
	},
	DocumentKindOffer: {
		DocumentStatusDraft: {DocumentStatusSent},
		DocumentStatusSent:  {DocumentStatusAccepted, DocumentStatusRejected},
	},
}

// CanTransition reports whether from -> to is a natural lifecycle edge for
// the kind. Administrative overrides bypass this check entirely.
func (k DocumentKind) CanTransition(from, to DocumentStatus) bool {
	edges, ok := naturalEdges[k]
	if !ok {
		return false
	}
	return lo.Contains(edges[from], to)
}

// Numbering pattern tokens. A pattern substitutes the year and month of the
// allocation time and renders a run of '#' characters as the zero-padded
// counter, width = run length.
const (
	PatternTokenYear  = "{YYYY}"
	PatternTokenMonth = "{MM}"

	DefaultInvoicePattern = "F-{YYYY}-{MM}-{###}"
	DefaultOfferPattern   = "A-{YYYY}-{MM}-{###}"
)

// DefaultNumberPattern returns the seed numbering pattern for a kind.
func DefaultNumberPattern(kind DocumentKind) string {
	if kind == DocumentKindOffer {
		return DefaultOfferPattern
	}
	return DefaultInvoicePattern
}
