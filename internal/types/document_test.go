package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentKindValidate(t *testing.T) {
	assert.NoError(t, DocumentKindInvoice.Validate())
	assert.NoError(t, DocumentKindOffer.Validate())
	assert.Error(t, DocumentKind("receipt").Validate())
	assert.Error(t, DocumentKind("").Validate())
}

func TestDocumentStatusValidateFor(t *testing.T) {
	assert.NoError(t, DocumentStatusPaid.ValidateFor(DocumentKindInvoice))
	assert.NoError(t, DocumentStatusOverdue.ValidateFor(DocumentKindInvoice))
	assert.Error(t, DocumentStatusAccepted.ValidateFor(DocumentKindInvoice))
	assert.Error(t, DocumentStatusRejected.ValidateFor(DocumentKindInvoice))

	assert.NoError(t, DocumentStatusAccepted.ValidateFor(DocumentKindOffer))
	assert.NoError(t, DocumentStatusRejected.ValidateFor(DocumentKindOffer))
	assert.Error(t, DocumentStatusPaid.ValidateFor(DocumentKindOffer))
	assert.Error(t, DocumentStatusOverdue.ValidateFor(DocumentKindOffer))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		kind DocumentKind
		from DocumentStatus
		to   DocumentStatus
		want bool
	}{
		{DocumentKindInvoice, DocumentStatusDraft, DocumentStatusSent, true},
		{DocumentKindInvoice, DocumentStatusSent, DocumentStatusPaid, true},
		{DocumentKindInvoice, DocumentStatusDraft, DocumentStatusPaid, false},
		{DocumentKindInvoice, DocumentStatusPaid, DocumentStatusSent, false},
		{DocumentKindInvoice, DocumentStatusPaid, DocumentStatusDraft, false},
		{DocumentKindInvoice, DocumentStatusSent, DocumentStatusSent, false},

		{DocumentKindOffer, DocumentStatusDraft, DocumentStatusSent, true},
		{DocumentKindOffer, DocumentStatusSent, DocumentStatusAccepted, true},
		{DocumentKindOffer, DocumentStatusSent, DocumentStatusRejected, true},
		{DocumentKindOffer, DocumentStatusAccepted, DocumentStatusRejected, false},
		{DocumentKindOffer, DocumentStatusDraft, DocumentStatusAccepted, false},
		{DocumentKindOffer, DocumentStatusSent, DocumentStatusPaid, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.CanTransition(tt.from, tt.to),
			"%s: %s -> %s", tt.kind, tt.from, tt.to)
	}
}

func TestDefaultNumberPattern(t *testing.T) {
	assert.Equal(t, "F-{YYYY}-{MM}-{###}", DefaultNumberPattern(DocumentKindInvoice))
	assert.Equal(t, "A-{YYYY}-{MM}-{###}", DefaultNumberPattern(DocumentKindOffer))
}
