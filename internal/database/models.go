package database

import (
	"time"
)

// SolarTermRow is a stored solar-term crossing.
type SolarTermRow struct {
	Instant time.Time `json:"instant"`
	Sector  int       `json:"sector"` // 0-23, even sectors are principal terms
}

// CoverageRange summarizes which calendar years the cache holds.
// Empty is true when no year has been computed yet.
type CoverageRange struct {
	StartYear int  `json:"startYear"`
	EndYear   int  `json:"endYear"`
	Empty     bool `json:"empty"`
}

// YearEvents bundles one calendar year's computed events for insertion.
type YearEvents struct {
	Year       int
	NewMoons   []time.Time
	SolarTerms []SolarTermRow
}
