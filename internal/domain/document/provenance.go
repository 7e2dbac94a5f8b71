package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/fakturo/fakturo/internal/types"
)

const provenancePrefix = "Duplicated from "

// ProvenanceLine renders the marker prepended to a duplicate's notes.
func ProvenanceLine(sourceNumber string, at time.Time) string {
	return fmt.Sprintf("%s%s on %s", provenancePrefix, sourceNumber, at.Format("2006-01-02"))
}

// PrependProvenance puts the provenance line in front of the existing notes.
func PrependProvenance(notes, sourceNumber string, at time.Time) string {
	line := ProvenanceLine(sourceNumber, at)
	if notes == "" {
		return line
	}
	return line + "\n" + notes
}

// HasProvenance reports whether the notes still carry a provenance line.
func HasProvenance(notes string) bool {
	return strings.HasPrefix(notes, provenancePrefix)
}

// StripProvenance removes only the provenance prefix line, leaving any
// subsequent user notes intact.
func StripProvenance(notes string) string {
	if !HasProvenance(notes) {
		return notes
	}
	if idx := strings.IndexByte(notes, '\n'); idx >= 0 {
		return notes[idx+1:]
	}
	return ""
}

// IsDuplicate is the UI-facing duplicate predicate: the provenance marker is
// the only signal, and it decays as soon as the document advances past draft.
func (d *Document) IsDuplicate() bool {
	return d.DocStatus == types.DocumentStatusDraft && HasProvenance(d.Notes)
}
