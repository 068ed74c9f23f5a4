/*
Package identity decodes structured employee-identifier strings into
derived attributes: birth year (reported as age) and sex code.

The identifier format encodes the birth date in the first 8 digits and a
sex digit at position 15. Upstream data is messy - identifiers arrive with
spaces, periods and hyphens sprinkled in - so every function here is
total: malformed input degrades to an "unknown" value, never an error.
Nothing in this package is persisted; the attributes feed presentation
and demographics collaborators only.
*/
package identity

import (
	"strconv"
	"strings"
	"time"
)

// Sex is the decoded sex attribute.
type Sex int

const (
	SexUnknown Sex = iota
	SexMale
	SexFemale
)

func (s Sex) String() string {
	switch s {
	case SexMale:
		return "Male"
	case SexFemale:
		return "Female"
	default:
		return "Unknown"
	}
}

// Identifiers claiming a birth year before this are treated as malformed.
const minBirthYear = 1950

// normalize strips the separators that show up in hand-entered
// identifiers: spaces, periods and hyphens.
func normalize(raw string) string {
	return strings.NewReplacer(" ", "", ".", "", "-", "").Replace(raw)
}

// Age derives the age from the identifier's leading birth-year digits,
// relative to now. The second return is false when the identifier does
// not carry a plausible year (non-digit prefix, or a year outside
// [1950, now.Year()]).
func Age(raw string, now time.Time) (int, bool) {
	clean := normalize(raw)
	if len(clean) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(clean[:4])
	if err != nil {
		return 0, false
	}
	if year < minBirthYear || year > now.Year() {
		return 0, false
	}
	return now.Year() - year, true
}

// SexOf derives the sex attribute from the identifier's 15th character:
// '1' male, '2' female, anything else unknown. Identifiers shorter than
// 15 characters after normalization decode to SexUnknown.
func SexOf(raw string) Sex {
	clean := normalize(raw)
	if len(clean) < 15 {
		return SexUnknown
	}
	switch clean[14] {
	case '1':
		return SexMale
	case '2':
		return SexFemale
	default:
		return SexUnknown
	}
}
