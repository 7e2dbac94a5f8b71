package document

import (
	"fmt"
	"strings"
	"time"

	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/types"
)

// RenderNumber substitutes the year and month of the allocation time into the
// pattern and renders the counter into the first run of '#' characters,
// zero-padded to the run length. The year and month reflect allocation time;
// once allocated a number is never re-rendered.
func RenderNumber(pattern string, counter int64, at time.Time) (string, error) {
	start := strings.IndexByte(pattern, '#')
	if start < 0 {
		return "", ierr.NewError("pattern has no counter token").
			WithHintf("Numbering pattern %q must contain a run of '#' characters", pattern).
			Mark(ierr.ErrValidation)
	}
	width := 0
	for i := start; i < len(pattern) && pattern[i] == '#'; i++ {
		width++
	}

	// The counter token is written {###}; consume the enclosing braces
	// along with the run. A bare run of '#' works too.
	from, to := start, start+width
	if from > 0 && pattern[from-1] == '{' && to < len(pattern) && pattern[to] == '}' {
		from--
		to++
	}

	rendered := pattern[:from] + fmt.Sprintf("%0*d", width, counter) + pattern[to:]
	rendered = strings.ReplaceAll(rendered, types.PatternTokenYear, at.Format("2006"))
	rendered = strings.ReplaceAll(rendered, types.PatternTokenMonth, at.Format("01"))
	return rendered, nil
}
