package astro

import "time"

// Bisection convergence threshold in Julian Days (~1 ms).
const bisectPrecisionJD = 1e-8

// scanStepJD is the fixed scan step in days.
//
// Precondition: no two qualifying events of the same stream occur within
// one scan step. This holds with wide margin for new moons (~29.5 days
// apart) and solar terms (~15 days apart); the finder does not guard
// against oracles that violate it.
const scanStepJD = 1.0

// SolarTerm is a solar-term crossing: the instant the Sun's longitude
// enters a 15-degree sector, with the sector index 0-23
// (sector 0 begins at longitude 0, the March equinox).
type SolarTerm struct {
	Time   time.Time `json:"time"`
	Sector int       `json:"sector"`
}

// Finder locates new moons and solar-term crossings by scanning a year
// range in one-day steps and bisecting each bracketing interval.
type Finder struct {
	oracle Oracle
}

// NewFinder returns a Finder backed by the given oracle.
func NewFinder(oracle Oracle) *Finder {
	return &Finder{oracle: oracle}
}

// elongation is the Moon-Sun longitude difference normalized to
// (-180, +180]; it crosses zero ascending at each new moon.
func (f *Finder) elongation(jd float64) float64 {
	return norm180(f.oracle.Longitude(Moon, jd) - f.oracle.Longitude(Sun, jd))
}

// NewMoons returns the new-moon instants from Jan 1 of startYear through
// Dec 31 of endYear, in strictly increasing order.
func (f *Finder) NewMoons(startYear, endYear int) []time.Time {
	jd := JulianDay(time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC))
	jdEnd := JulianDay(time.Date(endYear+1, time.January, 1, 0, 0, 0, 0, time.UTC))

	var moons []time.Time
	prev := f.elongation(jd)
	for jd < jdEnd {
		next := jd + scanStepJD
		curr := f.elongation(next)

		// Ascending zero crossing only; descending crossings are the
		// +/-180 wrap at full moon and must not fire.
		if prev < 0 && curr >= 0 {
			moons = append(moons, TimeFromJD(f.bisectNewMoon(jd, next)))
		}

		prev = curr
		jd = next
	}
	return moons
}

// bisectNewMoon narrows [lo, hi] to the elongation zero crossing.
func (f *Finder) bisectNewMoon(lo, hi float64) float64 {
	eLo := f.elongation(lo)
	for i := 0; i < 50; i++ {
		mid := (lo + hi) / 2
		eMid := f.elongation(mid)
		if (eLo < 0) == (eMid < 0) {
			lo, eLo = mid, eMid
		} else {
			hi = mid
		}
		if hi-lo < bisectPrecisionJD {
			break
		}
	}
	return (lo + hi) / 2
}

// SolarTerms returns the solar-term crossings from Jan 1 of startYear
// through Dec 31 of endYear, in strictly increasing order.
func (f *Finder) SolarTerms(startYear, endYear int) []SolarTerm {
	jd := JulianDay(time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC))
	jdEnd := JulianDay(time.Date(endYear+1, time.January, 1, 0, 0, 0, 0, time.UTC))

	var terms []SolarTerm
	prevSector := sector(f.oracle.Longitude(Sun, jd))
	for jd < jdEnd {
		next := jd + scanStepJD
		currSector := sector(f.oracle.Longitude(Sun, next))

		if currSector != prevSector {
			target := float64(currSector) * 15.0
			cross := f.bisectSunCrossing(target, jd, next)
			terms = append(terms, SolarTerm{Time: TimeFromJD(cross), Sector: currSector})
		}

		prevSector = currSector
		jd = next
	}
	return terms
}

// bisectSunCrossing narrows [lo, hi] to the instant the Sun's longitude
// crosses target degrees.
func (f *Finder) bisectSunCrossing(target, lo, hi float64) float64 {
	dLo := norm180(f.oracle.Longitude(Sun, lo) - target)
	for i := 0; i < 50; i++ {
		mid := (lo + hi) / 2
		dMid := norm180(f.oracle.Longitude(Sun, mid) - target)
		if (dLo < 0) == (dMid < 0) {
			lo, dLo = mid, dMid
		} else {
			hi = mid
		}
		if hi-lo < bisectPrecisionJD {
			break
		}
	}
	return (lo + hi) / 2
}

func sector(longitude float64) int {
	return int(norm360(longitude)/15.0) % 24
}
