package document

import (
	"testing"
	"time"

	"github.com/fakturo/fakturo/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestProvenanceLine(t *testing.T) {
	at := time.Date(2025, 3, 15, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "Duplicated from F-2025-03-008 on 2025-03-15", ProvenanceLine("F-2025-03-008", at))
}

func TestPrependAndStripProvenance(t *testing.T) {
	at := time.Date(2025, 3, 15, 14, 0, 0, 0, time.UTC)

	withNotes := PrependProvenance("pay promptly", "F-2025-03-008", at)
	assert.Equal(t, "Duplicated from F-2025-03-008 on 2025-03-15\npay promptly", withNotes)
	assert.True(t, HasProvenance(withNotes))
	assert.Equal(t, "pay promptly", StripProvenance(withNotes))

	withoutNotes := PrependProvenance("", "F-2025-03-008", at)
	assert.Equal(t, "Duplicated from F-2025-03-008 on 2025-03-15", withoutNotes)
	assert.Equal(t, "", StripProvenance(withoutNotes))

	// Stripping only removes the first line, later lines survive.
	multi := PrependProvenance("line one\nline two", "A-2025-01-001", at)
	assert.Equal(t, "line one\nline two", StripProvenance(multi))

	// Stripping notes without a marker is a no-op.
	assert.Equal(t, "plain notes", StripProvenance("plain notes"))
	assert.False(t, HasProvenance("plain notes"))
}

func TestIsDuplicateDecaysPastDraft(t *testing.T) {
	at := time.Date(2025, 3, 15, 14, 0, 0, 0, time.UTC)
	doc := &Document{
		DocStatus: types.DocumentStatusDraft,
		Notes:     PrependProvenance("", "F-2025-03-001", at),
	}
	assert.True(t, doc.IsDuplicate())

	doc.DocStatus = types.DocumentStatusSent
	assert.False(t, doc.IsDuplicate())

	// A draft without the marker is not a duplicate either.
	doc.DocStatus = types.DocumentStatusDraft
	doc.Notes = "just notes"
	assert.False(t, doc.IsDuplicate())
}
