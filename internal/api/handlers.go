package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/junyi-hu/lunisolar-api/internal/calendar"
	"github.com/junyi-hu/lunisolar-api/internal/config"
	"github.com/junyi-hu/lunisolar-api/internal/database"
	"github.com/junyi-hu/lunisolar-api/internal/events"
)

// Years outside the ephemeris validity window produce degraded series.
const (
	minYear = 1600
	maxYear = 2200
)

// Precomputer fills the event cache ahead of demand.
type Precomputer interface {
	Ensure(ctx context.Context, startYear, endYear int) error
}

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db         *database.DB
	source     events.Source
	precompute Precomputer
	cfg        *config.Config
	logger     *slog.Logger
	metrics    *Metrics
}

// NewHandlers creates a new Handlers instance. precompute may be nil,
// which disables the admin precompute endpoint.
func NewHandlers(db *database.DB, source events.Source, precompute Precomputer,
	cfg *config.Config, logger *slog.Logger, metrics *Metrics) *Handlers {
	return &Handlers{
		db:         db,
		source:     source,
		precompute: precompute,
		cfg:        cfg,
		logger:     logger,
		metrics:    metrics,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Health(ctx); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteServiceUnavailable(w, "Database unhealthy")
		return
	}

	coverage, err := h.db.Coverage(ctx)
	if err != nil {
		h.logger.Warn("coverage lookup failed", slog.Any("error", err))
		WriteServiceUnavailable(w, "Database unhealthy")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"status":   "healthy",
		"coverage": coverage,
	})
}

// Convert handles GET /api/v1/convert?date=YYYY-MM-DD&time=HH:MM&offset=seconds
func (h *Handlers) Convert(w http.ResponseWriter, r *http.Request) {
	h.convert(w, r, r.URL.Query().Get("date"))
}

// ConvertDate handles GET /api/v1/convert/{date}
func (h *Handlers) ConvertDate(w http.ResponseWriter, r *http.Request) {
	h.convert(w, r, chi.URLParam(r, "date"))
}

func (h *Handlers) convert(w http.ResponseWriter, r *http.Request, dateStr string) {
	ctx := r.Context()

	if dateStr == "" {
		h.metrics.IncrementConversion("bad_request")
		WriteBadRequest(w, "Date parameter is required")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		h.metrics.IncrementConversion("bad_request")
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	hour, minute := 12, 0 // noon avoids midnight boundary surprises
	if clockStr := r.URL.Query().Get("time"); clockStr != "" {
		clock, err := time.Parse("15:04", clockStr)
		if err != nil {
			h.metrics.IncrementConversion("bad_request")
			WriteBadRequest(w, fmt.Sprintf("Invalid time format: %s. Use HH:MM", clockStr))
			return
		}
		hour, minute = clock.Hour(), clock.Minute()
	}

	offset, err := h.parseOffset(r)
	if err != nil {
		h.metrics.IncrementConversion("bad_request")
		WriteBadRequest(w, err.Error())
		return
	}

	year := date.Year()
	if year < minYear || year > maxYear {
		h.metrics.IncrementConversion("bad_request")
		WriteBadRequest(w, fmt.Sprintf("Year must be between %d and %d", minYear, maxYear))
		return
	}

	// The instant is the local wall clock in the requested offset.
	zone := time.FixedZone("", offset)
	instant := time.Date(year, date.Month(), date.Day(), hour, minute, 0, 0, zone)

	ev, err := h.source.Events(ctx, year-1, year+1)
	if err != nil {
		h.metrics.IncrementConversion("error")
		h.logger.Error("event lookup failed",
			slog.String("date", dateStr),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to load astronomical events")
		return
	}

	result, err := calendar.Convert(instant, offset, ev)
	if err != nil {
		h.writeConversionError(w, dateStr, err)
		return
	}

	h.metrics.IncrementConversion("ok")
	WriteSuccess(w, map[string]interface{}{
		"date":          dateStr,
		"offsetSeconds": offset,
		"result":        result,
	})
}

// Almanac handles GET /api/v1/almanac/{year}/{month}?offset=seconds
func (h *Handlers) Almanac(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < minYear || year > maxYear {
		WriteBadRequest(w, fmt.Sprintf("Year must be between %d and %d", minYear, maxYear))
		return
	}

	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		WriteBadRequest(w, "Month must be between 1 and 12")
		return
	}

	offset, err := h.parseOffset(r)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	ev, err := h.source.Events(ctx, year-1, year+1)
	if err != nil {
		h.logger.Error("event lookup failed",
			slog.Int("year", year),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to load astronomical events")
		return
	}

	days, err := calendar.MonthAlmanac(year, month, offset, ev)
	if err != nil {
		h.writeConversionError(w, fmt.Sprintf("%04d-%02d", year, month), err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"year":          year,
		"month":         month,
		"offsetSeconds": offset,
		"days":          days,
	})
}

// NewMoons handles GET /api/v1/events/new-moons?from=YYYY&to=YYYY
func (h *Handlers) NewMoons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	from, to, err := parseYearRange(r)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	ev, err := h.source.Events(ctx, from, to)
	if err != nil {
		h.logger.Error("event lookup failed", slog.Any("error", err))
		WriteInternalError(w, "Failed to load astronomical events")
		return
	}

	moons := make([]string, len(ev.NewMoons))
	for i, moon := range ev.NewMoons {
		moons[i] = moon.UTC().Format(time.RFC3339)
	}

	WriteSuccess(w, map[string]interface{}{
		"from":     from,
		"to":       to,
		"newMoons": moons,
	})
}

// SolarTerms handles GET /api/v1/events/solar-terms?from=YYYY&to=YYYY
func (h *Handlers) SolarTerms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	from, to, err := parseYearRange(r)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	ev, err := h.source.Events(ctx, from, to)
	if err != nil {
		h.logger.Error("event lookup failed", slog.Any("error", err))
		WriteInternalError(w, "Failed to load astronomical events")
		return
	}

	type termOut struct {
		Time   string `json:"time"`
		Sector int    `json:"sector"`
	}
	terms := make([]termOut, len(ev.SolarTerms))
	for i, term := range ev.SolarTerms {
		terms[i] = termOut{Time: term.Time.UTC().Format(time.RFC3339), Sector: term.Sector}
	}

	WriteSuccess(w, map[string]interface{}{
		"from":       from,
		"to":         to,
		"solarTerms": terms,
	})
}

// Precompute handles POST /api/v1/admin/precompute
func (h *Handlers) Precompute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.precompute == nil {
		WriteError(w, http.StatusNotImplemented, "Precompute is not available", "NOT_IMPLEMENTED")
		return
	}

	var req struct {
		StartYear int `json:"startYear"`
		EndYear   int `json:"endYear"`
	}
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if req.StartYear < minYear || req.EndYear > maxYear || req.StartYear > req.EndYear {
		WriteBadRequest(w, fmt.Sprintf("Year range must lie within %d..%d", minYear, maxYear))
		return
	}
	if req.EndYear-req.StartYear > 200 {
		WriteBadRequest(w, "Year range cannot exceed 200 years")
		return
	}

	start := time.Now()
	if err := h.precompute.Ensure(ctx, req.StartYear, req.EndYear); err != nil {
		h.logger.Error("precompute failed",
			slog.Int("start_year", req.StartYear),
			slog.Int("end_year", req.EndYear),
			slog.Any("error", err))
		WriteInternalError(w, "Precompute failed")
		return
	}
	h.metrics.ObservePrecompute(time.Since(start))

	WriteSuccess(w, map[string]interface{}{
		"startYear": req.StartYear,
		"endYear":   req.EndYear,
		"duration":  time.Since(start).String(),
	})
}

// parseOffset reads the offset query parameter in seconds, falling back
// to the configured default.
func (h *Handlers) parseOffset(r *http.Request) (int, error) {
	offsetStr := r.URL.Query().Get("offset")
	if offsetStr == "" {
		return h.cfg.DefaultUTCOffsetSeconds, nil
	}

	offset, err := strconv.Atoi(offsetStr)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q: must be an integer number of seconds", offsetStr)
	}
	if offset < -12*3600 || offset > 14*3600 {
		return 0, fmt.Errorf("offset %d out of range: must be between %d and %d seconds", offset, -12*3600, 14*3600)
	}
	return offset, nil
}

func parseYearRange(r *http.Request) (int, int, error) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		return 0, 0, errors.New("both from and to year parameters are required")
	}

	from, err := strconv.Atoi(fromStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid from year %q", fromStr)
	}
	to, err := strconv.Atoi(toStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid to year %q", toStr)
	}

	if from < minYear || to > maxYear || from > to {
		return 0, 0, fmt.Errorf("year range must lie within %d..%d", minYear, maxYear)
	}
	// Limit range to keep responses bounded
	if to-from > 50 {
		return 0, 0, errors.New("year range cannot exceed 50 years")
	}

	return from, to, nil
}

// writeConversionError maps calendar errors to HTTP responses.
func (h *Handlers) writeConversionError(w http.ResponseWriter, input string, err error) {
	switch {
	case errors.Is(err, calendar.ErrMalformedInput):
		h.metrics.IncrementConversion("bad_request")
		WriteBadRequest(w, err.Error())
	case errors.Is(err, calendar.ErrPeriodNotFound),
		errors.Is(err, calendar.ErrInsufficientEventData),
		errors.Is(err, calendar.ErrMissingSolsticeTerm):
		h.metrics.IncrementConversion("error")
		h.logger.Warn("conversion outside event window",
			slog.String("input", input),
			slog.Any("error", err))
		WriteNotFound(w, "Date is outside the computed event window")
	default:
		h.metrics.IncrementConversion("error")
		h.logger.Error("conversion failed",
			slog.String("input", input),
			slog.Any("error", err))
		WriteInternalError(w, "Conversion failed")
	}
}

// decodeJSON decodes JSON request body.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	return json.NewDecoder(r.Body).Decode(v)
}
