package document

import (
	"testing"
	"time"

	"github.com/fakturo/fakturo/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	doc := &Document{
		Items: []*DocumentItem{
			{Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(100), TaxRate: decimal.NewFromInt(19)},
			{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("250"), TaxRate: decimal.NewFromInt(7)},
		},
	}
	doc.ComputeTotals()

	assert.True(t, doc.Subtotal.Equal(decimal.NewFromInt(1250)))
	assert.True(t, doc.TaxTotal.Equal(decimal.RequireFromString("207.5")))
	assert.True(t, doc.Total.Equal(decimal.RequireFromString("1457.5")))
}

func TestComputeTotalsEmpty(t *testing.T) {
	doc := &Document{}
	doc.ComputeTotals()
	assert.True(t, doc.Subtotal.IsZero())
	assert.True(t, doc.TaxTotal.IsZero())
	assert.True(t, doc.Total.IsZero())
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		status  types.DocumentStatus
		dueDate time.Time
		want    bool
	}{
		{"sent and past due", types.DocumentStatusSent, past, true},
		{"sent and not yet due", types.DocumentStatusSent, future, false},
		{"draft past due", types.DocumentStatusDraft, past, false},
		{"paid past due", types.DocumentStatusPaid, past, false},
		{"sent due exactly now", types.DocumentStatusSent, now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{DocStatus: tt.status, DueDate: tt.dueDate}
			assert.Equal(t, tt.want, doc.IsOverdue(now))
		})
	}
}

func TestDocumentValidate(t *testing.T) {
	valid := &Document{
		Kind:       types.DocumentKindInvoice,
		DocStatus:  types.DocumentStatusDraft,
		CustomerID: "cust_1",
		Items: []*DocumentItem{
			{Description: "ok", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
		},
	}
	require.NoError(t, valid.Validate())

	missingCustomer := &Document{
		Kind:      types.DocumentKindInvoice,
		DocStatus: types.DocumentStatusDraft,
	}
	assert.Error(t, missingCustomer.Validate())

	wrongStatus := &Document{
		Kind:       types.DocumentKindInvoice,
		DocStatus:  types.DocumentStatusAccepted,
		CustomerID: "cust_1",
	}
	assert.Error(t, wrongStatus.Validate())

	negativeItem := &Document{
		Kind:       types.DocumentKindInvoice,
		DocStatus:  types.DocumentStatusDraft,
		CustomerID: "cust_1",
		Items: []*DocumentItem{
			{Description: "bad", Quantity: decimal.NewFromInt(-1), UnitPrice: decimal.NewFromInt(10)},
		},
	}
	assert.Error(t, negativeItem.Validate())
}
