package calendar

import (
	"fmt"
	"time"

	"github.com/junyi-hu/lunisolar-api/internal/astro"
)

// PrincipalTerm is an even-indexed (zhongqi) solar-term crossing,
// remapped from the 0-23 sector index to the traditional 1-12 numbering
// in which Z11 is the Winter Solstice.
type PrincipalTerm struct {
	Instant   time.Time
	LocalDate DateOnly
	Index     int // 1-12, Z11 = Winter Solstice
}

// MonthPeriod is one synodic month bounded by successive new moons.
// Periods are contiguous: each period's end instant is the next
// period's start instant, and date containment is half-open.
type MonthPeriod struct {
	Start     time.Time
	End       time.Time
	StartDate DateOnly
	EndDate   DateOnly

	HasPrincipalTerm bool
	IsLeap           bool
	MonthNumber      int // 1-12 once resolved, 0 before
}

// containsDate reports whether the local date falls in the period's
// half-open local-date range.
func (p MonthPeriod) containsDate(d DateOnly) bool {
	return p.StartDate.Compare(d) <= 0 && d.Compare(p.EndDate) < 0
}

// PrincipalTerms filters solar-term crossings down to principal terms,
// remapping sector s to term index ((s/2)+2), wrapped into 1-12 so that
// sector 18 (longitude 270, the Winter Solstice) becomes Z11.
//
// Returns ErrMalformedInput if the crossings are not in increasing
// time order; the data is rejected rather than re-sorted.
func PrincipalTerms(terms []astro.SolarTerm, offsetSeconds int) ([]PrincipalTerm, error) {
	var out []PrincipalTerm
	for i, st := range terms {
		if i > 0 && !terms[i-1].Time.Before(st.Time) {
			return nil, fmt.Errorf("solar terms out of order at %d: %w", i, ErrMalformedInput)
		}
		if st.Sector < 0 || st.Sector > 23 {
			return nil, fmt.Errorf("solar term sector %d: %w", st.Sector, ErrMalformedInput)
		}
		if st.Sector%2 != 0 {
			continue
		}
		index := st.Sector/2 + 2
		if index > 12 {
			index -= 12
		}
		out = append(out, PrincipalTerm{
			Instant:   st.Time,
			LocalDate: localDate(st.Time, offsetSeconds),
			Index:     index,
		})
	}
	return out, nil
}

// BuildMonthPeriods forms one period per adjacent pair of new moons.
//
// Returns ErrInsufficientEventData for fewer than two moons and
// ErrMalformedInput for non-monotonic instants.
func BuildMonthPeriods(newMoons []time.Time, offsetSeconds int) ([]MonthPeriod, error) {
	if len(newMoons) < 2 {
		return nil, ErrInsufficientEventData
	}
	periods := make([]MonthPeriod, 0, len(newMoons)-1)
	for i := 0; i < len(newMoons)-1; i++ {
		if !newMoons[i].Before(newMoons[i+1]) {
			return nil, fmt.Errorf("new moons out of order at %d: %w", i, ErrMalformedInput)
		}
		periods = append(periods, MonthPeriod{
			Start:     newMoons[i],
			End:       newMoons[i+1],
			StartDate: localDate(newMoons[i], offsetSeconds),
			EndDate:   localDate(newMoons[i+1], offsetSeconds),
		})
	}
	return periods, nil
}

// TagPrincipalTerms marks each period containing a principal term's
// local date. A term falling on a period's end date belongs to the next
// period (half-open containment).
func TagPrincipalTerms(periods []MonthPeriod, terms []PrincipalTerm) {
	for _, term := range terms {
		for i := range periods {
			if periods[i].containsDate(term.LocalDate) {
				periods[i].HasPrincipalTerm = true
				break
			}
		}
	}
}

// selectAnchorSolstice picks the Winter Solstice instant that anchors
// month numbering for a target instant whose local year is localYear.
//
// Preference order: the Z11 whose UTC year equals localYear, else the
// Z11 nearest in year. If the target precedes the chosen solstice, the
// previous year's Z11 is used instead, so early-January dates anchor to
// the solstice of the prior year.
func selectAnchorSolstice(terms []PrincipalTerm, target time.Time, localYear int) (time.Time, error) {
	best := -1
	for i, term := range terms {
		if term.Index != 11 {
			continue
		}
		year := term.Instant.UTC().Year()
		if year == localYear {
			best = i
			break
		}
		if best < 0 || abs(year-localYear) < abs(terms[best].Instant.UTC().Year()-localYear) {
			best = i
		}
	}
	if best < 0 {
		return time.Time{}, ErrMissingSolsticeTerm
	}

	anchor := terms[best].Instant
	if target.Before(anchor) {
		for _, term := range terms {
			if term.Index == 11 && term.Instant.UTC().Year() == localYear-1 {
				anchor = term.Instant
				break
			}
		}
	}
	return anchor, nil
}

// AssignMonthNumbers numbers the periods around the period containing
// the anchor Winter Solstice, which is always month 11 (the zi month).
//
// Later periods are numbered forward: a period with a principal term
// advances the counter, a period without one is a leap month repeating
// the current number. Earlier periods are numbered backward with the
// mirrored rule.
func AssignMonthNumbers(periods []MonthPeriod, anchorSolstice time.Time) error {
	zi := -1
	for i := range periods {
		if !anchorSolstice.Before(periods[i].Start) && anchorSolstice.Before(periods[i].End) {
			zi = i
			break
		}
	}
	if zi < 0 {
		return fmt.Errorf("no period contains the anchor solstice: %w", ErrPeriodNotFound)
	}

	periods[zi].MonthNumber = 11
	periods[zi].IsLeap = false

	current := 11
	for i := zi + 1; i < len(periods); i++ {
		if periods[i].HasPrincipalTerm {
			current = current%12 + 1
			periods[i].MonthNumber = current
			periods[i].IsLeap = false
		} else {
			periods[i].MonthNumber = current
			periods[i].IsLeap = true
		}
	}

	current = 11
	for i := zi - 1; i >= 0; i-- {
		if periods[i].HasPrincipalTerm {
			current--
			if current < 1 {
				current = 12
			}
			periods[i].MonthNumber = current
			periods[i].IsLeap = false
		} else {
			// A leap month repeats the number of the preceding regular
			// month, which walking backward is one below the counter.
			n := current - 1
			if n < 1 {
				n = 12
			}
			periods[i].MonthNumber = n
			periods[i].IsLeap = true
		}
	}
	return nil
}

// findPeriodForDate locates the period containing a local date.
func findPeriodForDate(periods []MonthPeriod, d DateOnly) (*MonthPeriod, error) {
	for i := range periods {
		if periods[i].containsDate(d) {
			return &periods[i], nil
		}
	}
	return nil, fmt.Errorf("no month period covers %s: %w", d, ErrPeriodNotFound)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
