// Command ephemgen precomputes astronomical events into the SQLite
// cache so the API never has to run the event finder under request
// load. It can also print a year's events for manual inspection.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/junyi-hu/lunisolar-api/internal/astro"
	"github.com/junyi-hu/lunisolar-api/internal/database"
	"github.com/junyi-hu/lunisolar-api/internal/events"
)

func main() {
	dbPath := flag.String("db", "./data/ephemeris.db", "Path to SQLite event cache")
	startYear := flag.Int("start", time.Now().UTC().Year()-1, "First year to compute")
	endYear := flag.Int("end", time.Now().UTC().Year()+1, "Last year to compute")
	dump := flag.Bool("print", false, "Print the computed events instead of only storing them")
	flag.Parse()

	if *startYear > *endYear {
		fmt.Fprintf(os.Stderr, "start year %d is after end year %d\n", *startYear, *endYear)
		os.Exit(2)
	}
	if *startYear < 1600 || *endYear > 2200 {
		fmt.Fprintf(os.Stderr, "years must lie within 1600..2200\n")
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.Open(database.DefaultConfig(*dbPath), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if _, err := db.Migrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	source := events.NewCachingSource(db, astro.MeeusOracle{}, logger)

	started := time.Now()
	if err := source.Ensure(ctx, *startYear, *endYear); err != nil {
		fmt.Fprintf(os.Stderr, "compute events: %v\n", err)
		os.Exit(1)
	}

	coverage, err := db.Coverage(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "coverage: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Event cache %s ===\n", *dbPath)
	fmt.Printf("Computed %d..%d in %s\n", *startYear, *endYear, time.Since(started).Round(time.Millisecond))
	fmt.Printf("Coverage: %d..%d\n\n", coverage.StartYear, coverage.EndYear)

	if !*dump {
		return
	}

	ev, err := source.Events(ctx, *startYear, *endYear)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load events: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("New moons (%d):\n", len(ev.NewMoons))
	for _, moon := range ev.NewMoons {
		fmt.Printf("  %s\n", moon.UTC().Format(time.RFC3339))
	}

	fmt.Printf("\nSolar terms (%d):\n", len(ev.SolarTerms))
	for _, term := range ev.SolarTerms {
		kind := "jieqi"
		if term.Sector%2 == 0 {
			kind = "zhongqi"
		}
		fmt.Printf("  %s  sector %2d  %s\n", term.Time.UTC().Format(time.RFC3339), term.Sector, kind)
	}
}
