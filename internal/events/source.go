// Package events supplies the astronomical event sets that calendar
// conversions consume, computing and caching them as needed.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/junyi-hu/lunisolar-api/internal/astro"
	"github.com/junyi-hu/lunisolar-api/internal/calendar"
	"github.com/junyi-hu/lunisolar-api/internal/database"
)

// Source yields the events covering a span of calendar years.
// Implementations must return instants in ascending order.
type Source interface {
	// Events returns all new moons and solar terms from the start of
	// startYear through the end of endYear, with margin enough for
	// month-period construction at the span's edges.
	Events(ctx context.Context, startYear, endYear int) (calendar.Events, error)
}

// =============================================================================
// Computing Source
// =============================================================================

// ComputingSource runs the event finder directly, with no persistence.
// Used by tests and by ephemgen before a database exists.
type ComputingSource struct {
	finder *astro.Finder
}

// NewComputingSource returns a Source backed by the given oracle.
func NewComputingSource(oracle astro.Oracle) *ComputingSource {
	return &ComputingSource{finder: astro.NewFinder(oracle)}
}

// Events computes the span's events on every call.
func (s *ComputingSource) Events(ctx context.Context, startYear, endYear int) (calendar.Events, error) {
	if startYear > endYear {
		return calendar.Events{}, fmt.Errorf("invalid year range %d..%d", startYear, endYear)
	}
	if err := ctx.Err(); err != nil {
		return calendar.Events{}, err
	}

	return calendar.Events{
		NewMoons:   s.finder.NewMoons(startYear, endYear),
		SolarTerms: s.finder.SolarTerms(startYear, endYear),
	}, nil
}

// =============================================================================
// Caching Source
// =============================================================================

// CachingSource reads events from the database, computing and storing
// any years not yet covered. A mutex serializes the compute-and-store
// path so concurrent requests for the same uncovered years do the
// finder work once.
type CachingSource struct {
	db     *database.DB
	finder *astro.Finder
	logger *slog.Logger

	mu sync.Mutex // guards compute-and-store
}

// NewCachingSource returns a Source that persists computed events.
func NewCachingSource(db *database.DB, oracle astro.Oracle, logger *slog.Logger) *CachingSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingSource{
		db:     db,
		finder: astro.NewFinder(oracle),
		logger: logger,
	}
}

// Events returns the span's events, computing missing years first.
func (s *CachingSource) Events(ctx context.Context, startYear, endYear int) (calendar.Events, error) {
	if startYear > endYear {
		return calendar.Events{}, fmt.Errorf("invalid year range %d..%d", startYear, endYear)
	}

	if err := s.Ensure(ctx, startYear, endYear); err != nil {
		return calendar.Events{}, err
	}

	from := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(endYear+1, time.January, 1, 0, 0, 0, 0, time.UTC)

	moons, err := s.db.NewMoonsBetween(ctx, from, to)
	if err != nil {
		return calendar.Events{}, fmt.Errorf("load new moons: %w", err)
	}

	rows, err := s.db.SolarTermsBetween(ctx, from, to)
	if err != nil {
		return calendar.Events{}, fmt.Errorf("load solar terms: %w", err)
	}

	terms := make([]astro.SolarTerm, len(rows))
	for i, row := range rows {
		terms[i] = astro.SolarTerm{Time: row.Instant, Sector: row.Sector}
	}

	return calendar.Events{NewMoons: moons, SolarTerms: terms}, nil
}

// Ensure computes and stores events for every uncovered year in
// [startYear, endYear]. It is safe for concurrent use.
func (s *CachingSource) Ensure(ctx context.Context, startYear, endYear int) error {
	covered, err := s.db.YearsCovered(ctx, startYear, endYear)
	if err != nil {
		return fmt.Errorf("check coverage: %w", err)
	}
	if covered {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the lock; another request may have filled the gap.
	covered, err = s.db.YearsCovered(ctx, startYear, endYear)
	if err != nil {
		return fmt.Errorf("check coverage: %w", err)
	}
	if covered {
		return nil
	}

	var pending []database.YearEvents
	for year := startYear; year <= endYear; year++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		yearCovered, err := s.db.YearsCovered(ctx, year, year)
		if err != nil {
			return fmt.Errorf("check coverage for %d: %w", year, err)
		}
		if yearCovered {
			continue
		}

		s.logger.Info("computing events",
			slog.Int("year", year),
		)

		ye := database.YearEvents{Year: year}
		ye.NewMoons = s.finder.NewMoons(year, year)
		for _, term := range s.finder.SolarTerms(year, year) {
			ye.SolarTerms = append(ye.SolarTerms, database.SolarTermRow{
				Instant: term.Time,
				Sector:  term.Sector,
			})
		}
		pending = append(pending, ye)
	}

	if len(pending) == 0 {
		return nil
	}

	if err := s.db.StoreYearEvents(ctx, pending); err != nil {
		return fmt.Errorf("store events: %w", err)
	}

	s.logger.Info("events stored",
		slog.Int("years", len(pending)),
	)

	return nil
}
