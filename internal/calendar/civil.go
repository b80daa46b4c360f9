// Package calendar converts solar (Gregorian/UTC) instants into
// traditional Chinese lunisolar dates with sexagenary pillars.
package calendar

import (
	"fmt"
	"time"
)

// DateOnly is a proleptic Gregorian calendar date with no time-of-day,
// used wherever the algorithm compares local dates rather than instants.
type DateOnly struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
}

func (d DateOnly) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Compare returns -1, 0 or +1 ordering d against other.
func (d DateOnly) Compare(other DateOnly) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(d.Month - other.Month)
	default:
		return sign(d.Day - other.Day)
	}
}

// Before reports whether d is earlier than other.
func (d DateOnly) Before(other DateOnly) bool { return d.Compare(other) < 0 }

// DayNumber returns the count of days since the Unix epoch date
// (1970-01-01 = 0), valid over the whole proleptic Gregorian range.
func (d DateOnly) DayNumber() int64 {
	return daysFromCivil(d.Year, d.Month, d.Day)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// daysFromCivil and civilFromDays are Howard Hinnant's branchless
// date algorithms; the 719468 shift moves the era origin from
// 0000-03-01 to 1970-01-01.

func daysFromCivil(y, m, d int) int64 {
	yy := int64(y)
	if m <= 2 {
		yy--
	}
	var era int64
	if yy >= 0 {
		era = yy / 400
	} else {
		era = (yy - 399) / 400
	}
	yoe := yy - era*400
	var mAdj int64
	if m > 2 {
		mAdj = int64(m) - 3
	} else {
		mAdj = int64(m) + 9
	}
	doy := (153*mAdj+2)/5 + int64(d) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

func civilFromDays(days int64) DateOnly {
	z := days + 719468
	var era int64
	if z >= 0 {
		era = z / 146097
	} else {
		era = (z - 146096) / 146097
	}
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := int(doy - (153*mp+2)/5 + 1)
	var m int
	if mp < 10 {
		m = int(mp) + 3
	} else {
		m = int(mp) - 9
	}
	if m <= 2 {
		y++
	}
	return DateOnly{Year: int(y), Month: m, Day: d}
}

// localDate returns the wall-clock calendar date of t shifted by a fixed
// UTC offset in seconds. No DST rules are applied.
func localDate(t time.Time, offsetSeconds int) DateOnly {
	y, m, d := t.In(fixedZone(offsetSeconds)).Date()
	return DateOnly{Year: y, Month: int(m), Day: d}
}

// localClock returns the wall-clock hour and minute of t under a fixed
// UTC offset.
func localClock(t time.Time, offsetSeconds int) (hour, minute int) {
	hour, minute, _ = t.In(fixedZone(offsetSeconds)).Clock()
	return hour, minute
}

func fixedZone(offsetSeconds int) *time.Location {
	if offsetSeconds == 0 {
		return time.UTC
	}
	return time.FixedZone("", offsetSeconds)
}
