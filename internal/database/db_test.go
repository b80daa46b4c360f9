package database

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"
)

// testDB creates a temporary in-memory database for testing.
func testDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	cfg := Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}

	// Quiet logger for tests
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	db, err := Open(cfg, logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	// Run migrations
	ctx := context.Background()
	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// seedTestEvents inserts a small synthetic year of events.
func seedTestEvents(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()

	base := time.Date(2025, time.January, 29, 12, 36, 0, 0, time.UTC)
	ye := YearEvents{
		Year: 2025,
		NewMoons: []time.Time{
			base,
			base.AddDate(0, 0, 29).Add(13 * time.Hour),
			base.AddDate(0, 0, 59).Add(2 * time.Hour),
		},
		SolarTerms: []SolarTermRow{
			{Instant: time.Date(2025, time.February, 3, 22, 10, 0, 0, time.UTC), Sector: 21},
			{Instant: time.Date(2025, time.February, 18, 18, 6, 0, 0, time.UTC), Sector: 22},
			{Instant: time.Date(2025, time.March, 5, 16, 7, 0, 0, time.UTC), Sector: 23},
			{Instant: time.Date(2025, time.March, 20, 9, 1, 0, 0, time.UTC), Sector: 0},
		},
	}

	if err := db.StoreYearEvents(ctx, []YearEvents{ye}); err != nil {
		t.Fatalf("seed events: %v", err)
	}
}

// -----------------------------------------------------------------
// DB tests
// -----------------------------------------------------------------

func TestOpen(t *testing.T) {
	db := testDB(t)

	// Verify connection works
	ctx := context.Background()
	if err := db.Health(ctx); err != nil {
		t.Errorf("Health() error = %v", err)
	}
}

func TestMigrate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Migrations should have run (in testDB)
	// Running again should be a no-op
	count, err := db.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Migrate() count = %d, want 0 (already applied)", count)
	}
}

// -----------------------------------------------------------------
// Event cache tests
// -----------------------------------------------------------------

func TestStoreYearEvents_Idempotent(t *testing.T) {
	db := testDB(t)
	seedTestEvents(t, db)
	seedTestEvents(t, db) // same rows again

	ctx := context.Background()
	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	moons, err := db.NewMoonsBetween(ctx, from, to)
	if err != nil {
		t.Fatalf("NewMoonsBetween() error = %v", err)
	}
	if len(moons) != 3 {
		t.Errorf("NewMoonsBetween() returned %d moons, want 3 (inserts must dedupe)", len(moons))
	}
}

func TestNewMoonsBetween_Ordering(t *testing.T) {
	db := testDB(t)
	seedTestEvents(t, db)
	ctx := context.Background()

	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	moons, err := db.NewMoonsBetween(ctx, from, to)
	if err != nil {
		t.Fatalf("NewMoonsBetween() error = %v", err)
	}

	for i := 1; i < len(moons); i++ {
		if !moons[i-1].Before(moons[i]) {
			t.Errorf("moons not ascending at index %d: %v >= %v", i, moons[i-1], moons[i])
		}
	}
}

func TestNewMoonsBetween_HalfOpen(t *testing.T) {
	db := testDB(t)
	seedTestEvents(t, db)
	ctx := context.Background()

	first := time.Date(2025, time.January, 29, 12, 36, 0, 0, time.UTC)

	// [first, first) is empty, [first, first+1ms) contains first
	moons, err := db.NewMoonsBetween(ctx, first, first)
	if err != nil {
		t.Fatalf("NewMoonsBetween() error = %v", err)
	}
	if len(moons) != 0 {
		t.Errorf("empty range returned %d moons, want 0", len(moons))
	}

	moons, err = db.NewMoonsBetween(ctx, first, first.Add(time.Millisecond))
	if err != nil {
		t.Fatalf("NewMoonsBetween() error = %v", err)
	}
	if len(moons) != 1 {
		t.Fatalf("range returned %d moons, want 1", len(moons))
	}
	if !moons[0].Equal(first) {
		t.Errorf("moon = %v, want %v", moons[0], first)
	}
}

func TestSolarTermsBetween(t *testing.T) {
	db := testDB(t)
	seedTestEvents(t, db)
	ctx := context.Background()

	from := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	terms, err := db.SolarTermsBetween(ctx, from, to)
	if err != nil {
		t.Fatalf("SolarTermsBetween() error = %v", err)
	}
	if len(terms) != 3 {
		t.Fatalf("SolarTermsBetween() returned %d terms, want 3", len(terms))
	}

	wantSectors := []int{21, 22, 23}
	for i, term := range terms {
		if term.Sector != wantSectors[i] {
			t.Errorf("term[%d].Sector = %d, want %d", i, term.Sector, wantSectors[i])
		}
	}
}

func TestYearsCovered(t *testing.T) {
	db := testDB(t)
	seedTestEvents(t, db)
	ctx := context.Background()

	covered, err := db.YearsCovered(ctx, 2025, 2025)
	if err != nil {
		t.Fatalf("YearsCovered() error = %v", err)
	}
	if !covered {
		t.Error("YearsCovered(2025, 2025) = false, want true")
	}

	// 2024 and 2026 were never stored
	covered, err = db.YearsCovered(ctx, 2024, 2026)
	if err != nil {
		t.Fatalf("YearsCovered() error = %v", err)
	}
	if covered {
		t.Error("YearsCovered(2024, 2026) = true, want false")
	}
}

func TestYearsCovered_InvalidRange(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if _, err := db.YearsCovered(ctx, 2026, 2024); err == nil {
		t.Error("YearsCovered() with inverted range should error")
	}
}

func TestCoverage(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Empty database
	cov, err := db.Coverage(ctx)
	if err != nil {
		t.Fatalf("Coverage() error = %v", err)
	}
	if !cov.Empty {
		t.Error("Coverage() on empty database should report Empty")
	}

	seedTestEvents(t, db)

	cov, err = db.Coverage(ctx)
	if err != nil {
		t.Fatalf("Coverage() error = %v", err)
	}
	if cov.Empty {
		t.Fatal("Coverage() should not be empty after seeding")
	}
	if cov.StartYear != 2025 || cov.EndYear != 2025 {
		t.Errorf("Coverage() = %d..%d, want 2025..2025", cov.StartYear, cov.EndYear)
	}
}

// -----------------------------------------------------------------
// Transaction tests
// -----------------------------------------------------------------

func TestWithTx_Rollback(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Failed transaction should rollback
	err := db.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO event_coverage (year) VALUES (?)", 2030)
		if err != nil {
			return err
		}
		// Force error to trigger rollback
		return ErrNotFound
	})
	if err != ErrNotFound {
		t.Fatalf("WithTx() rollback case error = %v, want ErrNotFound", err)
	}

	// Verify year was NOT recorded
	covered, err := db.YearsCovered(ctx, 2030, 2030)
	if err != nil {
		t.Fatalf("YearsCovered() error = %v", err)
	}
	if covered {
		t.Error("coverage row should not exist after rollback")
	}
}
