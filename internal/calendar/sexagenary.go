package calendar

import (
	"fmt"
	"time"
)

// The ten Heavenly Stems and twelve Earthly Branches. Indexed 0-based;
// index 0 is 甲 / 子. Read-only.
var (
	heavenlyStems = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	stemPinyin    = [10]string{"jiǎ", "yǐ", "bǐng", "dīng", "wù", "jǐ", "gēng", "xīn", "rén", "guǐ"}

	earthlyBranches = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
	branchPinyin    = [12]string{"zǐ", "chǒu", "yín", "mǎo", "chén", "sì", "wǔ", "wèi", "shēn", "yǒu", "xū", "hài"}
	branchAnimals   = [12]string{"Rat", "Ox", "Tiger", "Rabbit", "Dragon", "Snake", "Horse", "Goat", "Monkey", "Rooster", "Dog", "Pig"}
)

// StemLabel returns the Chinese character for a stem index 0-9.
// Out-of-range indices are programming errors and panic.
func StemLabel(i int) string {
	if i < 0 || i >= len(heavenlyStems) {
		panic(fmt.Sprintf("calendar: stem index %d out of range", i))
	}
	return heavenlyStems[i]
}

// BranchLabel returns the Chinese character for a branch index 0-11.
// Out-of-range indices are programming errors and panic.
func BranchLabel(i int) string {
	if i < 0 || i >= len(earthlyBranches) {
		panic(fmt.Sprintf("calendar: branch index %d out of range", i))
	}
	return earthlyBranches[i]
}

// StemPinyin returns the pinyin reading for a stem index 0-9.
func StemPinyin(i int) string {
	if i < 0 || i >= len(stemPinyin) {
		panic(fmt.Sprintf("calendar: stem index %d out of range", i))
	}
	return stemPinyin[i]
}

// BranchPinyin returns the pinyin reading for a branch index 0-11.
func BranchPinyin(i int) string {
	if i < 0 || i >= len(branchPinyin) {
		panic(fmt.Sprintf("calendar: branch index %d out of range", i))
	}
	return branchPinyin[i]
}

// BranchAnimal returns the zodiac animal for a branch index 0-11.
func BranchAnimal(i int) string {
	if i < 0 || i >= len(branchAnimals) {
		panic(fmt.Sprintf("calendar: branch index %d out of range", i))
	}
	return branchAnimals[i]
}

// Pair is one sexagenary stem-branch pair: a 0-based stem index, a
// 0-based branch index and its 1-60 cycle number. The cycle number
// satisfies (cycle-1) mod 10 == stem and (cycle-1) mod 12 == branch.
type Pair struct {
	Stem   int // 0-9
	Branch int // 0-11
	Cycle  int // 1-60
}

// StemLabel returns the pair's stem character.
func (p Pair) StemLabel() string { return StemLabel(p.Stem) }

// BranchLabel returns the pair's branch character.
func (p Pair) BranchLabel() string { return BranchLabel(p.Branch) }

func (p Pair) String() string { return p.StemLabel() + p.BranchLabel() }

// pairFromCycle builds a Pair from a 1-60 cycle number.
func pairFromCycle(cycle int) Pair {
	return Pair{Stem: (cycle - 1) % 10, Branch: (cycle - 1) % 12, Cycle: cycle}
}

// cycleFromStemBranch recovers the 1-60 cycle number for a stem/branch
// combination. Only 60 of the 120 combinations occur; the stems and
// branches of a valid pair share parity.
func cycleFromStemBranch(stem, branch int) int {
	for c := 1; c <= 60; c++ {
		if (c-1)%10 == stem && (c-1)%12 == branch {
			return c
		}
	}
	panic(fmt.Sprintf("calendar: no cycle for stem %d branch %d", stem, branch))
}

// YearPillar returns the sexagenary pair for a lunar year.
// Year 4 CE is the anchor: cycle 1, 甲子.
func YearPillar(lunarYear int) Pair {
	cycle := (lunarYear-4)%60 + 1
	if cycle <= 0 {
		cycle += 60
	}
	return pairFromCycle(cycle)
}

// firstMonthStem is the "five tigers" table: the stem of lunar month 1
// keyed by the year stem. Year stems five apart share a start.
var firstMonthStem = [10]int{
	0: 2, 5: 2, // 甲/己 -> 丙
	1: 4, 6: 4, // 乙/庚 -> 戊
	2: 6, 7: 6, // 丙/辛 -> 庚
	3: 8, 8: 8, // 丁/壬 -> 壬
	4: 0, 9: 0, // 戊/癸 -> 甲
}

// MonthPillar returns the sexagenary pair for a lunar month of a lunar
// year. The month branch is fixed per month (month 1 is 寅); the stem
// follows the five-tigers table from the year stem.
func MonthPillar(lunarYear, lunarMonth int) Pair {
	if lunarMonth < 1 || lunarMonth > 12 {
		panic(fmt.Sprintf("calendar: lunar month %d out of range", lunarMonth))
	}
	year := YearPillar(lunarYear)
	stem := (firstMonthStem[year.Stem] + (lunarMonth - 1)) % 10
	branch := (lunarMonth + 1) % 12
	return Pair{Stem: stem, Branch: branch, Cycle: cycleFromStemBranch(stem, branch)}
}

// dayAnchor is the day-count of 4 CE January 31, the documented 甲子
// (cycle 1) anchor date for the day pillar.
var dayAnchor = daysFromCivil(4, 1, 31)

// DayPillar returns the sexagenary pair for the local wall-clock date of
// t under a fixed UTC offset. The day boundary is local midnight; the
// 23:00 rollover is the hour pillar's concern, not the day pillar's.
func DayPillar(t time.Time, offsetSeconds int) Pair {
	return dayPillarOf(localDate(t, offsetSeconds))
}

func dayPillarOf(date DateOnly) Pair {
	diff := date.DayNumber() - dayAnchor
	cycle := int((diff%60+60)%60) + 1
	return pairFromCycle(cycle)
}

// ziStemStart is the "five rats" table: the stem of the 子 hour keyed by
// the day stem. Day stems five apart share a start.
var ziStemStart = [10]int{
	0: 0, 5: 0, // 甲/己 -> 甲
	1: 2, 6: 2, // 乙/庚 -> 丙
	2: 4, 7: 4, // 丙/辛 -> 戊
	3: 6, 8: 6, // 丁/壬 -> 庚
	4: 8, 9: 8, // 戊/癸 -> 壬
}

// HourPillar returns the sexagenary pair for the two-hour branch slot of
// the local wall-clock time of t. The 子 slot spans 23:00-00:59; from
// 23:00 the pillar is based on the next day's stem, so the sexagenary
// day rolls over at 23:00 rather than midnight.
func HourPillar(t time.Time, offsetSeconds int) Pair {
	hour, minute := localClock(t, offsetSeconds)
	branch := hourBranch(hour, minute)

	date := localDate(t, offsetSeconds)
	dayStem := dayPillarOf(date).Stem
	if hour >= 23 {
		dayStem = dayPillarOf(civilFromDays(date.DayNumber() + 1)).Stem
	}

	stem := (ziStemStart[dayStem] + branch) % 10
	return Pair{Stem: stem, Branch: branch, Cycle: cycleFromStemBranch(stem, branch)}
}

// hourBranch maps a wall-clock time to its branch slot index 0-11.
func hourBranch(hour, minute int) int {
	decimal := float64(hour) + float64(minute)/60.0
	if decimal >= 23.0 || decimal < 1.0 {
		return 0
	}
	branch := int((decimal-1.0)/2.0) + 1
	if branch >= 12 {
		branch = 11
	}
	return branch
}
