package astro

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linearOracle moves both bodies at constant rates, giving a synodic
// month of 360/(moonRate-sunRate) days. It exercises the finder without
// any ephemeris involvement.
type linearOracle struct {
	sunRate  float64 // deg/day
	moonRate float64 // deg/day
}

func (o linearOracle) Longitude(body Body, jd float64) float64 {
	days := jd - 2451545.0
	switch body {
	case Sun:
		return norm360(days * o.sunRate)
	case Moon:
		return norm360(days * o.moonRate)
	default:
		panic("unknown body")
	}
}

func testOracle() linearOracle {
	return linearOracle{sunRate: 360.0 / 365.2422, moonRate: 360.0 / 27.321582}
}

func TestNewMoonsSpacing(t *testing.T) {
	finder := NewFinder(testOracle())
	moons := finder.NewMoons(2024, 2025)

	// Two years hold 24 or 25 synodic months.
	require.GreaterOrEqual(t, len(moons), 24)
	require.LessOrEqual(t, len(moons), 25)

	synodic := 360.0 / (testOracle().moonRate - testOracle().sunRate)
	for i := 1; i < len(moons); i++ {
		require.True(t, moons[i].After(moons[i-1]), "instants must be strictly increasing")
		gap := moons[i].Sub(moons[i-1]).Hours() / 24.0
		assert.InDelta(t, synodic, gap, 1e-4)
	}
}

func TestNewMoonRefinementPrecision(t *testing.T) {
	o := testOracle()
	finder := NewFinder(o)
	moons := finder.NewMoons(2025, 2025)
	require.NotEmpty(t, moons)

	for _, nm := range moons {
		jd := JulianDay(nm)
		elong := norm180(o.Longitude(Moon, jd) - o.Longitude(Sun, jd))
		// 1e-8 day at ~12.2 deg/day elongation rate is ~1.2e-7 deg.
		assert.Less(t, math.Abs(elong), 1e-4)
	}
}

func TestSolarTermsSectorSequence(t *testing.T) {
	o := testOracle()
	finder := NewFinder(o)
	terms := finder.SolarTerms(2025, 2025)

	require.GreaterOrEqual(t, len(terms), 24)
	require.LessOrEqual(t, len(terms), 25)

	for i, st := range terms {
		require.GreaterOrEqual(t, st.Sector, 0)
		require.Less(t, st.Sector, 24)
		if i > 0 {
			require.True(t, st.Time.After(terms[i-1].Time))
			assert.Equal(t, (terms[i-1].Sector+1)%24, st.Sector, "sectors advance one at a time")
		}
		lon := o.Longitude(Sun, JulianDay(st.Time))
		assert.Less(t, math.Abs(norm180(lon-float64(st.Sector)*15.0)), 1e-4)
	}
}

func TestJulianDayRoundTrip(t *testing.T) {
	times := []time.Time{
		time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 21, 2, 42, 11, 0, time.UTC),
		time.Date(4, time.January, 31, 0, 0, 0, 0, time.UTC),
	}
	for _, ts := range times {
		got := TimeFromJD(JulianDay(ts))
		assert.WithinDuration(t, ts, got, time.Millisecond)
	}
	assert.InDelta(t, 2440587.5, JulianDay(time.Unix(0, 0)), 1e-9)
}
