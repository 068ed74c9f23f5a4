package roster

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pusdiklat/training-engine/identity"
)

// Summary aggregates the derived participant attributes of one roster.
// Computed on demand for presentation collaborators, never persisted.
type Summary struct {
	Participants int

	Male       int
	Female     int
	UnknownSex int

	// KnownAges counts participants whose identifier yielded an age;
	// AverageAge is over those only, zero when there are none.
	KnownAges  int
	AverageAge decimal.Decimal
	Buckets    []AgeBucket
}

// AgeBucket is one histogram bin of the age distribution.
type AgeBucket struct {
	Label string
	From  int
	To    int // inclusive; the open-ended last bucket uses To = 0
	Count int
}

func newBuckets() []AgeBucket {
	return []AgeBucket{
		{Label: "<25", From: 0, To: 24},
		{Label: "25-34", From: 25, To: 34},
		{Label: "35-44", From: 35, To: 44},
		{Label: "45-54", From: 45, To: 54},
		{Label: "55+", From: 55, To: 0},
	}
}

// Summarize derives the demographics of a roster as of now. Participants
// with undecodable identifiers land in the unknown counters; nothing here
// can fail.
func Summarize(entries []Entry, now time.Time) Summary {
	s := Summary{
		Participants: len(entries),
		AverageAge:   decimal.Zero,
		Buckets:      newBuckets(),
	}

	ageSum := 0
	for _, e := range entries {
		switch identity.SexOf(e.Identifier) {
		case identity.SexMale:
			s.Male++
		case identity.SexFemale:
			s.Female++
		default:
			s.UnknownSex++
		}

		age, ok := identity.Age(e.Identifier, now)
		if !ok {
			continue
		}
		s.KnownAges++
		ageSum += age
		for i := range s.Buckets {
			b := &s.Buckets[i]
			if age >= b.From && (b.To == 0 || age <= b.To) {
				b.Count++
				break
			}
		}
	}

	if s.KnownAges > 0 {
		s.AverageAge = decimal.NewFromInt(int64(ageSum)).
			Div(decimal.NewFromInt(int64(s.KnownAges))).
			Round(2)
	}
	return s
}
