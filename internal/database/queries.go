package database

import (
	"context"
	"fmt"
	"time"
)

// =============================================================================
// Event Cache Queries
// =============================================================================

// StoreYearEvents inserts one or more years' worth of computed events.
//
// This is IDEMPOTENT - safe to run multiple times with same data.
// Used by the precompute path and the ephemgen tool.
//
// Key feature: events and the coverage marker for a year land in the
// same transaction. Readers never see a year marked covered while its
// events are only partially written.
func (db *DB) StoreYearEvents(ctx context.Context, years []YearEvents) error {
	return db.WithTx(ctx, func(tx *Tx) error {
		for _, ye := range years {
			for _, nm := range ye.NewMoons {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO new_moons (instant_ms) VALUES (?)
					ON CONFLICT(instant_ms) DO NOTHING
				`, nm.UnixMilli())
				if err != nil {
					return fmt.Errorf("insert new moon: %w", err)
				}
			}

			for _, st := range ye.SolarTerms {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO solar_terms (instant_ms, sector) VALUES (?, ?)
					ON CONFLICT(instant_ms) DO UPDATE SET sector = excluded.sector
				`, st.Instant.UnixMilli(), st.Sector)
				if err != nil {
					return fmt.Errorf("insert solar term: %w", err)
				}
			}

			_, err := tx.ExecContext(ctx, `
				INSERT INTO event_coverage (year) VALUES (?)
				ON CONFLICT(year) DO UPDATE SET computed_at = datetime('now')
			`, ye.Year)
			if err != nil {
				return fmt.Errorf("record coverage for %d: %w", ye.Year, err)
			}
		}
		return nil
	})
}

// NewMoonsBetween returns stored new moon instants in [from, to),
// ascending. Returns an empty slice if none are stored in the range.
func (db *DB) NewMoonsBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT instant_ms FROM new_moons
		WHERE instant_ms >= ? AND instant_ms < ?
		ORDER BY instant_ms ASC
	`, from.UnixMilli(), to.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("query new moons: %w", err)
	}
	defer rows.Close()

	var moons []time.Time
	for rows.Next() {
		var ms int64
		if err := rows.Scan(&ms); err != nil {
			return nil, fmt.Errorf("scan new moon row: %w", err)
		}
		moons = append(moons, time.UnixMilli(ms).UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate new moon rows: %w", err)
	}

	return moons, nil
}

// SolarTermsBetween returns stored solar term crossings in [from, to),
// ascending by instant.
func (db *DB) SolarTermsBetween(ctx context.Context, from, to time.Time) ([]SolarTermRow, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT instant_ms, sector FROM solar_terms
		WHERE instant_ms >= ? AND instant_ms < ?
		ORDER BY instant_ms ASC
	`, from.UnixMilli(), to.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("query solar terms: %w", err)
	}
	defer rows.Close()

	var terms []SolarTermRow
	for rows.Next() {
		var ms int64
		var sector int
		if err := rows.Scan(&ms, &sector); err != nil {
			return nil, fmt.Errorf("scan solar term row: %w", err)
		}
		terms = append(terms, SolarTermRow{
			Instant: time.UnixMilli(ms).UTC(),
			Sector:  sector,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate solar term rows: %w", err)
	}

	return terms, nil
}

// YearsCovered reports whether every calendar year in [startYear, endYear]
// has its events stored.
func (db *DB) YearsCovered(ctx context.Context, startYear, endYear int) (bool, error) {
	if startYear > endYear {
		return false, fmt.Errorf("invalid year range %d..%d", startYear, endYear)
	}

	var count int
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM event_coverage
		WHERE year >= ? AND year <= ?
	`, startYear, endYear).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query coverage: %w", err)
	}

	return count == endYear-startYear+1, nil
}

// Coverage returns the span of covered years.
//
// Useful for:
// - Health check endpoint
// - Verifying precompute runs
// - ephemgen status output
//
// The range may contain gaps; use YearsCovered to check a specific window.
func (db *DB) Coverage(ctx context.Context) (*CoverageRange, error) {
	var count int
	var minYear, maxYear *int

	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*), MIN(year), MAX(year) FROM event_coverage
	`).Scan(&count, &minYear, &maxYear)
	if err != nil {
		return nil, fmt.Errorf("query coverage range: %w", err)
	}

	if count == 0 || minYear == nil || maxYear == nil {
		return &CoverageRange{Empty: true}, nil
	}

	return &CoverageRange{
		StartYear: *minYear,
		EndYear:   *maxYear,
	}, nil
}
