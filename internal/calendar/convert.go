package calendar

import (
	"fmt"
	"time"

	"github.com/junyi-hu/lunisolar-api/internal/astro"
)

// Events is the astronomical input to a conversion: new-moon instants
// and solar-term crossings covering the target date. The new moons must
// bracket the target's month and the terms must include a Winter
// Solstice within a year of it; a three-calendar-year window centered
// on the target satisfies both.
type Events struct {
	NewMoons   []time.Time
	SolarTerms []astro.SolarTerm
}

// Result is a complete lunisolar reading of one solar instant.
type Result struct {
	LunarYear   int  `json:"lunarYear"`
	LunarMonth  int  `json:"lunarMonth"` // 1-12
	LunarDay    int  `json:"lunarDay"`   // 1-30
	IsLeapMonth bool `json:"isLeapMonth"`

	YearPillar  PillarResult `json:"yearPillar"`
	MonthPillar PillarResult `json:"monthPillar"`
	DayPillar   PillarResult `json:"dayPillar"`
	HourPillar  PillarResult `json:"hourPillar"`

	ConstructionStar ConstructionStar `json:"constructionStar"`
	Spirit           Spirit           `json:"spirit"`
}

// PillarResult renders one sexagenary pair for output.
type PillarResult struct {
	Stem   string `json:"stem"`
	Branch string `json:"branch"`
	Pinyin string `json:"pinyin"`
	Cycle  int    `json:"cycle"`
}

func renderPillar(p Pair) PillarResult {
	return PillarResult{
		Stem:   p.StemLabel(),
		Branch: p.BranchLabel(),
		Pinyin: StemPinyin(p.Stem) + BranchPinyin(p.Branch),
		Cycle:  p.Cycle,
	}
}

// Convert maps a UTC instant and a fixed UTC offset to its lunisolar
// date and four pillars using the supplied events. It is deterministic
// and touches no shared state, so it is safe to call concurrently.
func Convert(t time.Time, offsetSeconds int, events Events) (*Result, error) {
	terms, err := PrincipalTerms(events.SolarTerms, offsetSeconds)
	if err != nil {
		return nil, fmt.Errorf("principal terms: %w", err)
	}

	periods, err := BuildMonthPeriods(events.NewMoons, offsetSeconds)
	if err != nil {
		return nil, fmt.Errorf("month periods: %w", err)
	}
	TagPrincipalTerms(periods, terms)

	localYear := localDate(t, offsetSeconds).Year
	anchor, err := selectAnchorSolstice(terms, t, localYear)
	if err != nil {
		return nil, err
	}
	if err := AssignMonthNumbers(periods, anchor); err != nil {
		return nil, err
	}

	targetDate := localDate(t, offsetSeconds)
	period, err := findPeriodForDate(periods, targetDate)
	if err != nil {
		return nil, err
	}

	lunarDay := int(targetDate.DayNumber()-period.StartDate.DayNumber()) + 1
	if lunarDay < 1 {
		lunarDay = 1
	}
	if lunarDay > 30 {
		lunarDay = 30
	}

	lunarYear := lunarYearOf(period)

	dayPair := DayPillar(t, offsetSeconds)

	return &Result{
		LunarYear:   lunarYear,
		LunarMonth:  period.MonthNumber,
		LunarDay:    lunarDay,
		IsLeapMonth: period.IsLeap,

		YearPillar:  renderPillar(YearPillar(lunarYear)),
		MonthPillar: renderPillar(MonthPillar(lunarYear, period.MonthNumber)),
		DayPillar:   renderPillar(dayPair),
		HourPillar:  renderPillar(HourPillar(t, offsetSeconds)),

		ConstructionStar: ConstructionStarFor(period.MonthNumber, dayPair.Branch),
		Spirit:           SpiritFor(period.MonthNumber, dayPair.Branch),
	}, nil
}

// lunarYearOf derives the lunar year from a resolved period. Months
// 1-11 take the Gregorian year of the period's UTC start; a month-12
// period starting in January or February belongs to the year before,
// which absorbs the drift of month 12 across the Gregorian boundary.
func lunarYearOf(period *MonthPeriod) int {
	startYear := period.Start.UTC().Year()
	if period.MonthNumber == 12 && period.Start.UTC().Month() <= time.February {
		return startYear - 1
	}
	return startYear
}
