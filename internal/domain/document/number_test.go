package document

import (
	"testing"
	"time"

	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNumber(t *testing.T) {
	march := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		pattern string
		counter int64
		at      time.Time
		want    string
	}{
		{
			name:    "default invoice pattern",
			pattern: "F-{YYYY}-{MM}-{###}",
			counter: 8,
			at:      march,
			want:    "F-2025-03-008",
		},
		{
			name:    "default offer pattern",
			pattern: "A-{YYYY}-{MM}-{###}",
			counter: 1,
			at:      march,
			want:    "A-2025-03-001",
		},
		{
			name:    "counter wider than padding",
			pattern: "F-{YYYY}-{MM}-{###}",
			counter: 1234,
			at:      march,
			want:    "F-2025-03-1234",
		},
		{
			name:    "wide padding",
			pattern: "INV{#####}",
			counter: 42,
			at:      march,
			want:    "INV00042",
		},
		{
			name:    "bare hash run without braces",
			pattern: "R-####",
			counter: 7,
			at:      march,
			want:    "R-0007",
		},
		{
			name:    "year only",
			pattern: "{YYYY}/{###}",
			counter: 99,
			at:      time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
			want:    "2024/099",
		},
		{
			name:    "single digit month is zero padded",
			pattern: "{MM}-{###}",
			counter: 5,
			at:      time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
			want:    "01-005",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderNumber(tt.pattern, tt.counter, tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderNumberWithoutCounterToken(t *testing.T) {
	_, err := RenderNumber("F-{YYYY}-{MM}", 1, time.Now().UTC())
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}
