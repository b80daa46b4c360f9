package calendar

import (
	"fmt"
	"time"
)

// AlmanacDay is one day of a month almanac: the lunisolar date plus the
// day-quality classifications.
type AlmanacDay struct {
	Date        string `json:"date"` // YYYY-MM-DD, local
	LunarYear   int    `json:"lunarYear"`
	LunarMonth  int    `json:"lunarMonth"`
	LunarDay    int    `json:"lunarDay"`
	IsLeapMonth bool   `json:"isLeapMonth"`

	DayPillar PillarResult `json:"dayPillar"`

	Star            ConstructionStar `json:"star"`
	Spirit          Spirit           `json:"spirit"`
	IsSectionalTerm bool             `json:"isSectionalTermDay"`
}

// MonthAlmanac walks every day of a Gregorian month (in the given fixed
// offset) and returns its lunisolar date, day pillar, construction star
// and Yellow Path spirit.
//
// Stars are tracked sequentially: the first day uses the base formula,
// each later day advances one star, except that a day carrying a
// sectional-term (jieqi, odd sector) crossing repeats the previous
// day's star. This is the traditional repeat rule that keeps the
// sequence aligned with the building branch across month changes.
func MonthAlmanac(year int, month int, offsetSeconds int, events Events) ([]AlmanacDay, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month %d out of range: %w", month, ErrMalformedInput)
	}

	// Local dates of sectional-term crossings.
	sectionalDays := make(map[DateOnly]bool)
	for _, st := range events.SolarTerms {
		if st.Sector%2 != 0 {
			sectionalDays[localDate(st.Time, offsetSeconds)] = true
		}
	}

	first := daysFromCivil(year, month, 1)
	nextMonth := month + 1
	nextYear := year
	if nextMonth > 12 {
		nextMonth = 1
		nextYear++
	}
	count := int(daysFromCivil(nextYear, nextMonth, 1) - first)

	zone := fixedZone(offsetSeconds)
	days := make([]AlmanacDay, 0, count)
	prevStar := -1
	for d := 1; d <= count; d++ {
		noon := time.Date(year, time.Month(month), d, 12, 0, 0, 0, zone)
		result, err := Convert(noon, offsetSeconds, events)
		if err != nil {
			return nil, fmt.Errorf("almanac day %d: %w", d, err)
		}

		date := DateOnly{Year: year, Month: month, Day: d}
		isTermDay := sectionalDays[date]

		var starIndex int
		switch {
		case prevStar < 0:
			starIndex = ConstructionStarIndex(result.LunarMonth, branchIndexOf(result.DayPillar.Branch))
		case isTermDay:
			starIndex = prevStar
		default:
			starIndex = (prevStar + 1) % 12
		}
		prevStar = starIndex

		days = append(days, AlmanacDay{
			Date:            date.String(),
			LunarYear:       result.LunarYear,
			LunarMonth:      result.LunarMonth,
			LunarDay:        result.LunarDay,
			IsLeapMonth:     result.IsLeapMonth,
			DayPillar:       result.DayPillar,
			Star:            starAt(starIndex),
			Spirit:          result.Spirit,
			IsSectionalTerm: isTermDay,
		})
	}
	return days, nil
}

// branchIndexOf recovers the branch index from its character label.
func branchIndexOf(label string) int {
	for i, b := range earthlyBranches {
		if b == label {
			return i
		}
	}
	panic(fmt.Sprintf("calendar: unknown branch label %q", label))
}
