package astro

import "math"

// MeeusOracle is the built-in ephemeris: truncated series from Meeus,
// "Astronomical Algorithms" (2nd ed.), ch. 25 (Sun) and ch. 47 (Moon).
//
// Accuracy is roughly 0.01 deg for the Sun and 0.05 deg for the Moon,
// which bounds event timing errors to about a minute for solar terms
// and a few minutes for new moons. That is sufficient for date-level
// calendar results; callers needing sub-second instants should inject
// an Oracle backed by a full ephemeris instead.
type MeeusOracle struct{}

// Longitude implements Oracle.
func (MeeusOracle) Longitude(body Body, jd float64) float64 {
	t := (jd - 2451545.0) / 36525.0
	switch body {
	case Sun:
		return sunLongitude(t)
	case Moon:
		return moonLongitude(t)
	default:
		panic("astro: unknown body")
	}
}

func sind(deg float64) float64 { return math.Sin(deg * math.Pi / 180.0) }

// sunLongitude returns the Sun's apparent geocentric ecliptic longitude
// in degrees for Julian centuries t since J2000.
func sunLongitude(t float64) float64 {
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := 357.52911 + 35999.05029*t - 0.0001537*t*t
	c := (1.914602-0.004817*t-0.000014*t*t)*sind(m) +
		(0.019993-0.000101*t)*sind(2*m) +
		0.000289*sind(3*m)
	omega := 125.04 - 1934.136*t
	apparent := l0 + c - 0.00569 - 0.00478*sind(omega)
	return norm360(apparent)
}

// moonTerm is one row of Meeus table 47.A: multiples of the fundamental
// arguments D, M, M', F and the sine coefficient in 1e-6 degrees.
type moonTerm struct {
	d, m, mp, f int
	coeff       float64
}

var moonLongitudeTerms = []moonTerm{
	{0, 0, 1, 0, 6288774}, {2, 0, -1, 0, 1274027}, {2, 0, 0, 0, 658314},
	{0, 0, 2, 0, 213618}, {0, 1, 0, 0, -185116}, {0, 0, 0, 2, -114332},
	{2, 0, -2, 0, 58793}, {2, -1, -1, 0, 57066}, {2, 0, 1, 0, 53322},
	{2, -1, 0, 0, 45758}, {0, 1, -1, 0, -40923}, {1, 0, 0, 0, -34720},
	{0, 1, 1, 0, -30383}, {2, 0, 0, -2, 15327}, {0, 0, 1, 2, -12528},
	{0, 0, 1, -2, 10980}, {4, 0, -1, 0, 10675}, {0, 0, 3, 0, 10034},
	{4, 0, -2, 0, 8548}, {2, 1, -1, 0, -7888}, {2, 1, 0, 0, -6766},
	{1, 0, -1, 0, -5163}, {1, 1, 0, 0, 4987}, {2, -1, 1, 0, 4036},
	{2, 0, 2, 0, 3994}, {4, 0, 0, 0, 3861}, {2, 0, -3, 0, 3665},
	{0, 1, -2, 0, -2689}, {2, 0, -1, 2, -2602}, {2, -1, -2, 0, 2390},
	{1, 0, 1, 0, -2348}, {2, -2, 0, 0, 2236}, {0, 1, 2, 0, -2120},
	{0, 2, 0, 0, -2069}, {2, -2, -1, 0, 2048}, {2, 0, 1, -2, -1773},
	{2, 0, 0, 2, -1595}, {4, -1, -1, 0, 1215}, {0, 0, 2, 2, -1110},
	{3, 0, -1, 0, -892}, {2, 1, 1, 0, -810}, {4, -1, -2, 0, 759},
	{0, 2, -1, 0, -713}, {2, 2, -1, 0, -700}, {2, 1, -2, 0, 691},
	{2, -1, 0, -2, 596}, {4, 0, 1, 0, 549}, {0, 0, 4, 0, 537},
	{4, -1, 0, 0, 520}, {1, 0, -2, 0, -487}, {2, 1, 0, -2, -399},
	{0, 0, 2, -2, -381}, {1, 1, 1, 0, 351}, {3, 0, -2, 0, -340},
	{4, 0, -3, 0, 330}, {2, -1, 2, 0, 327}, {0, 2, 1, 0, -323},
	{1, 1, -1, 0, 299}, {2, 0, 3, 0, 105},
}

// moonLongitude returns the Moon's geocentric ecliptic longitude in
// degrees for Julian centuries t since J2000.
func moonLongitude(t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	t4 := t3 * t

	// Fundamental arguments, degrees.
	lp := 218.3164477 + 481267.88123421*t - 0.0015786*t2 + t3/538841.0 - t4/65194000.0
	d := 297.8501921 + 445267.1114034*t - 0.0018819*t2 + t3/545868.0 - t4/113065000.0
	m := 357.5291092 + 35999.0502909*t - 0.0001536*t2 + t3/24490000.0
	mp := 134.9633964 + 477198.8675055*t + 0.0087414*t2 + t3/69699.0 - t4/14712000.0
	f := 93.2720950 + 483202.0175233*t - 0.0036539*t2 - t3/3526000.0 + t4/863310000.0

	// Eccentricity correction for terms involving M.
	e := 1.0 - 0.002516*t - 0.0000074*t2

	var sum float64
	for _, term := range moonLongitudeTerms {
		arg := float64(term.d)*d + float64(term.m)*m + float64(term.mp)*mp + float64(term.f)*f
		coeff := term.coeff
		switch term.m {
		case 1, -1:
			coeff *= e
		case 2, -2:
			coeff *= e * e
		}
		sum += coeff * sind(arg)
	}

	// Additive terms for Venus, Jupiter and flattening perturbations.
	a1 := 119.75 + 131.849*t
	a2 := 53.09 + 479264.290*t
	sum += 3958.0*sind(a1) + 1962.0*sind(lp-f) + 318.0*sind(a2)

	return norm360(lp + sum/1e6)
}
