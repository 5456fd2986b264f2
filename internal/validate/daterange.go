// Package validate holds input checks shared by the CLI and the interactive
// prompts, mainly around the period filters sent to the document endpoints.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Range separators accepted on input. The en dash shows up when users paste
// periods out of spreadsheets.
var rangeSeparators = []string{" - ", " – ", "-", "–"}

var (
	// ErrMalformedRange marks input that does not parse as two dates.
	ErrMalformedRange = errors.New("período inválido, use o formato AAAA-MM-DD - AAAA-MM-DD")

	// ErrStartAfterEnd marks a well-formed range whose dates are inverted.
	ErrStartAfterEnd = errors.New("data inicial posterior à data final")
)

// DateRange is a parsed inclusive period. The zero value means "no filter".
type DateRange struct {
	Start string
	End   string
}

// IsZero reports whether no period was set.
func (r DateRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}

// String renders the range back into the canonical query form.
func (r DateRange) String() string {
	if r.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s - %s", r.Start, r.End)
}

// ParseRange parses a period expression of the form "YYYY-MM-DD - YYYY-MM-DD".
// Empty input is valid and yields the zero range. A range whose start falls
// after its end is reported separately from a malformed one so callers can
// show a precise message.
func ParseRange(input string) (DateRange, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return DateRange{}, nil
	}

	start, end, ok := splitRange(input)
	if !ok {
		return DateRange{}, ErrMalformedRange
	}

	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return DateRange{}, ErrMalformedRange
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return DateRange{}, ErrMalformedRange
	}
	if startDate.After(endDate) {
		return DateRange{}, ErrStartAfterEnd
	}
	return DateRange{Start: start, End: end}, nil
}

// splitRange cuts the input on the first separator that leaves a date-shaped
// token on each side. A plain hyphen also appears inside the dates themselves,
// so the spaced forms are tried first and the bare forms only split between
// two complete dates.
func splitRange(input string) (start, end string, ok bool) {
	for _, sep := range rangeSeparators {
		if !strings.Contains(input, sep) {
			continue
		}
		if sep == "-" || sep == "–" {
			// Bare separator: split at the boundary between two full dates.
			if len(input) < 2*len(dateLayout)+len(sep) {
				continue
			}
			left := input[:len(dateLayout)]
			rest := input[len(dateLayout):]
			rest = strings.TrimSpace(rest)
			if !strings.HasPrefix(rest, sep) {
				continue
			}
			right := strings.TrimSpace(strings.TrimPrefix(rest, sep))
			return left, right, true
		}
		parts := strings.SplitN(input, sep, 2)
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
	}
	return "", "", false
}
