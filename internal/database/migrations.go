package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
var migrationsSQL = map[int]string{
	1: migrationV1EventCacheSchema,
}

// migrationV1EventCacheSchema creates the astronomical event cache.
//
// Key design decisions:
//
// 1. INSTANTS NOT DATES
//   - Events are stored as Unix milliseconds UTC, not local dates.
//   - Local-date interpretation depends on the caller's UTC offset, so
//     it happens at query time in the calendar package, never here.
//
// 2. COVERAGE IS PER CALENDAR YEAR
//   - A year appears in event_coverage only after both its new moons
//     and its solar terms were inserted in the same transaction.
//   - A conversion needs three consecutive covered years (the target
//     year plus one on each side), which the events source checks
//     before trusting cached rows.
const migrationV1EventCacheSchema = `
-- Migration 001: Event cache

-- New moon instants (Sun-Moon elongation crossing zero going positive).
CREATE TABLE new_moons (
    instant_ms INTEGER PRIMARY KEY
);

-- Solar term crossings. Sector is the 15-degree band the Sun entered:
-- 0 = vernal equinox, 6 = summer solstice, 12 = autumnal equinox,
-- 18 = winter solstice. Even sectors are the principal (zhongqi) terms.
CREATE TABLE solar_terms (
    instant_ms INTEGER PRIMARY KEY,
    sector     INTEGER NOT NULL CHECK (sector >= 0 AND sector < 24)
);

CREATE INDEX idx_solar_terms_sector ON solar_terms(sector);

-- Years whose events are fully computed and stored.
CREATE TABLE event_coverage (
    year        INTEGER PRIMARY KEY,
    computed_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`
