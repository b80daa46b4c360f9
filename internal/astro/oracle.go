// Package astro locates astronomical events (new moons, solar term
// crossings) by numerical root-finding on ecliptic longitude.
package astro

import (
	"math"
	"time"
)

// Body identifies a solar-system body the oracle can answer for.
type Body int

const (
	Sun Body = iota
	Moon
)

// Oracle supplies the apparent geocentric ecliptic longitude of a body,
// in degrees [0, 360), for a Julian Day (UT).
//
// The event finder treats the oracle as a black box, so any ephemeris
// backend can be plugged in; tests use a synthetic linear oracle.
type Oracle interface {
	Longitude(body Body, jd float64) float64
}

// Julian Day of the Unix epoch (1970-01-01 00:00 UT).
const unixEpochJD = 2440587.5

// JulianDay converts a time to a Julian Day (UT).
func JulianDay(t time.Time) float64 {
	ms := t.UnixMilli()
	return float64(ms)/86400000.0 + unixEpochJD
}

// TimeFromJD converts a Julian Day (UT) back to a UTC time,
// rounded to the nearest millisecond.
func TimeFromJD(jd float64) time.Time {
	ms := math.Round((jd - unixEpochJD) * 86400000.0)
	return time.UnixMilli(int64(ms)).UTC()
}

// norm360 normalizes an angle to [0, 360).
func norm360(a float64) float64 {
	a = math.Mod(a, 360.0)
	if a < 0 {
		a += 360.0
	}
	return a
}

// norm180 normalizes an angle to (-180, +180].
func norm180(a float64) float64 {
	a = math.Mod(a, 360.0)
	if a > 180.0 {
		a -= 360.0
	}
	if a <= -180.0 {
		a += 360.0
	}
	return a
}
