package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycleBijection(t *testing.T) {
	seen := make(map[[2]int]int)
	for cycle := 1; cycle <= 60; cycle++ {
		p := pairFromCycle(cycle)
		require.Equal(t, (cycle-1)%10, p.Stem)
		require.Equal(t, (cycle-1)%12, p.Branch)
		key := [2]int{p.Stem, p.Branch}
		_, dup := seen[key]
		require.False(t, dup, "cycle %d collides with %d", cycle, seen[key])
		seen[key] = cycle
		assert.Equal(t, cycle, cycleFromStemBranch(p.Stem, p.Branch))
	}
}

func TestYearPillar(t *testing.T) {
	tests := []struct {
		year   int
		stem   string
		branch string
		cycle  int
	}{
		{4, "甲", "子", 1},     // anchor year
		{1984, "甲", "子", 1},  // modern jiazi year
		{2024, "甲", "辰", 41}, // wood dragon
		{2025, "乙", "巳", 42}, // wood snake
		{1900, "庚", "子", 37},
	}
	for _, tt := range tests {
		p := YearPillar(tt.year)
		assert.Equal(t, tt.stem, p.StemLabel(), "year %d stem", tt.year)
		assert.Equal(t, tt.branch, p.BranchLabel(), "year %d branch", tt.year)
		assert.Equal(t, tt.cycle, p.Cycle, "year %d cycle", tt.year)
	}
}

func TestMonthPillarBranchesFixed(t *testing.T) {
	// Month branches are independent of the year: month 1 is 寅,
	// month 11 is 子, month 12 is 丑.
	for _, year := range []int{1984, 2000, 2025} {
		assert.Equal(t, "寅", MonthPillar(year, 1).BranchLabel())
		assert.Equal(t, "子", MonthPillar(year, 11).BranchLabel())
		assert.Equal(t, "丑", MonthPillar(year, 12).BranchLabel())
	}
}

func TestMonthPillarFiveTigers(t *testing.T) {
	// 2024 is 甲辰: a 甲 year starts month 1 at 丙寅.
	assert.Equal(t, "丙寅", MonthPillar(2024, 1).String())
	// 2025 is 乙巳: an 乙 year starts month 1 at 戊寅.
	assert.Equal(t, "戊寅", MonthPillar(2025, 1).String())
	// Stems advance one per month: month 2 of 2025 is 己卯.
	assert.Equal(t, "己卯", MonthPillar(2025, 2).String())
}

func TestDayPillarAnchor(t *testing.T) {
	// The documented anchor: 4 CE January 31 is 甲子, cycle 1.
	anchor := time.Date(4, time.January, 31, 0, 0, 0, 0, time.UTC)
	p := DayPillar(anchor, 0)
	assert.Equal(t, 1, p.Cycle)
	assert.Equal(t, "甲", p.StemLabel())
	assert.Equal(t, "子", p.BranchLabel())
}

func TestDayPillarKnownDates(t *testing.T) {
	cst := 8 * 3600

	// 1949-10-01 (CST) was a 甲子 day.
	p := DayPillar(time.Date(1949, time.October, 1, 12, 0, 0, 0, time.FixedZone("CST", cst)), cst)
	assert.Equal(t, "甲子", p.String())
	assert.Equal(t, 1, p.Cycle)

	// 2000-01-01 (CST) was a 戊午 day.
	p = DayPillar(time.Date(2000, time.January, 1, 12, 0, 0, 0, time.FixedZone("CST", cst)), cst)
	assert.Equal(t, "戊午", p.String())
	assert.Equal(t, 55, p.Cycle)
}

func TestDayPillarLocalMidnightBoundary(t *testing.T) {
	cst := 8 * 3600
	// 2000-01-01 16:30 UTC is 2000-01-02 00:30 CST: next day in CST,
	// same day in UTC.
	instant := time.Date(2000, time.January, 1, 16, 30, 0, 0, time.UTC)
	assert.Equal(t, 56, DayPillar(instant, cst).Cycle)
	assert.Equal(t, 55, DayPillar(instant, 0).Cycle)
}

func TestHourBranchSlots(t *testing.T) {
	tests := []struct {
		hour, minute int
		branch       string
	}{
		{23, 0, "子"},
		{0, 59, "子"},
		{1, 0, "丑"},
		{2, 59, "丑"},
		{3, 0, "寅"},
		{11, 30, "午"},
		{12, 59, "午"},
		{13, 0, "未"},
		{21, 0, "亥"},
		{22, 59, "亥"},
	}
	for _, tt := range tests {
		got := BranchLabel(hourBranch(tt.hour, tt.minute))
		assert.Equal(t, tt.branch, got, "%02d:%02d", tt.hour, tt.minute)
	}
}

func TestHourPillarFiveRats(t *testing.T) {
	cst := 8 * 3600
	zone := time.FixedZone("CST", cst)

	// 1949-10-01 is a 甲 day: its 子 hour starts at 甲, so noon (午,
	// branch 6) is 庚午.
	noon := time.Date(1949, time.October, 1, 12, 0, 0, 0, zone)
	assert.Equal(t, "庚午", HourPillar(noon, cst).String())

	// At 23:00 the hour belongs to the next day's 子 hour: the next day
	// is 乙, whose 子 hour starts at 丙.
	lateNight := time.Date(1949, time.October, 1, 23, 30, 0, 0, zone)
	p := HourPillar(lateNight, cst)
	assert.Equal(t, "丙子", p.String())

	// At 00:30 the same calendar night, the day stem is already 乙
	// without any rollover.
	earlyMorning := time.Date(1949, time.October, 2, 0, 30, 0, 0, zone)
	assert.Equal(t, "丙子", HourPillar(earlyMorning, cst).String())
}
