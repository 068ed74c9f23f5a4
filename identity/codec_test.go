package identity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pusdiklat/training-engine/identity"
)

var asOf = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

func TestAge_WellFormedIdentifier(t *testing.T) {
	age, ok := identity.Age("199003152015021004", asOf)
	assert.True(t, ok)
	assert.Equal(t, 36, age)
}

func TestAge_SeparatorsStripped(t *testing.T) {
	// Hand-entered identifiers arrive with spaces, periods and hyphens.
	age, ok := identity.Age("1990 0315.2015-02 1004", asOf)
	assert.True(t, ok)
	assert.Equal(t, 36, age)
}

func TestAge_MalformedInput_Unknown(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"non-digit prefix", "1999XXXX000000001"},
		{"year before 1950", "194003152015021004"},
		{"year in the future", "209003152015021004"},
		{"too short", "199"},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := identity.Age(tc.raw, asOf)
			assert.False(t, ok)
		})
	}
}

func TestAge_BoundaryYears(t *testing.T) {
	// 1950 and the current year are both inside the valid range.
	age, ok := identity.Age("195001010000000000", asOf)
	assert.True(t, ok)
	assert.Equal(t, 76, age)

	age, ok = identity.Age("202601010000000000", asOf)
	assert.True(t, ok)
	assert.Equal(t, 0, age)
}

func TestSexOf(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want identity.Sex
	}{
		{"male code", "199003152015021004", identity.SexMale},
		{"female code", "199003152015022004", identity.SexFemale},
		{"female code with separators", "19900315 201502-2004", identity.SexFemale},
		{"unexpected code", "199003152015029004", identity.SexUnknown},
		{"too short", "1990031520", identity.SexUnknown},
		{"empty", "", identity.SexUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, identity.SexOf(tc.raw))
		})
	}
}

func TestSexOf_String(t *testing.T) {
	assert.Equal(t, "Male", identity.SexMale.String())
	assert.Equal(t, "Female", identity.SexFemale.String())
	assert.Equal(t, "Unknown", identity.SexUnknown.String())
}
