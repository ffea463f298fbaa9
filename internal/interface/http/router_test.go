package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/auth"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/holiday"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/hotelpref"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/trip"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/weather"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/config"
	apperrors "github.com/singhHarcharan/trip-planner-agent/pkg/errors"
)

func TestRouter_PlanTripSuccess(t *testing.T) {
	deps := newStubDeps()
	deps.planner.planFn = func(ctx context.Context, req trip.PlanRequest) (trip.PlanResponse, error) {
		require.Equal(t, "fly me to Paris", req.Prompt)
		require.Equal(t, int64(1001), req.EmployeeID)
		require.True(t, req.DryRun)
		return trip.PlanResponse{Status: trip.StatusPlanned, SelectedDate: "2025-08-20"}, nil
	}

	rec := performRequest(http.MethodPost, "/api/v1/trips/plan", `{"prompt":"fly me to Paris","dryRun":true}`, newRouterUnderTest(t, deps, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got trip.PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, trip.StatusPlanned, got.Status)
	require.Equal(t, "2025-08-20", got.SelectedDate)
}

func TestRouter_PlanTripMissingPrompt(t *testing.T) {
	rec := performRequest(http.MethodPost, "/api/v1/trips/plan", `{}`, newRouterUnderTest(t, newStubDeps(), nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.NotEmpty(t, errBody["error"]["message"])
}

func TestRouter_PlanTripBookingFailure(t *testing.T) {
	deps := newStubDeps()
	deps.planner.planFn = func(ctx context.Context, req trip.PlanRequest) (trip.PlanResponse, error) {
		return trip.PlanResponse{}, apperrors.Wrap("booking_error", "hotel booking failed", errors.New("desk down"))
	}

	rec := performRequest(http.MethodPost, "/api/v1/trips/plan", `{"prompt":"go"}`, newRouterUnderTest(t, deps, nil))
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, "booking_error", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_ExtractTrip(t *testing.T) {
	deps := newStubDeps()
	deps.extractor.extractFn = func(ctx context.Context, prompt string) (trip.Extraction, error) {
		return trip.Extraction{Message: trip.NotATripMessage}, nil
	}

	rec := performRequest(http.MethodPost, "/api/v1/trips/extract", `{"prompt":"hello"}`, newRouterUnderTest(t, deps, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got trip.Extraction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, trip.NotATripMessage, got.Message)
}

func TestRouter_WeatherDates(t *testing.T) {
	deps := newStubDeps()
	deps.weather.fn = func(ctx context.Context, req weather.DatesRequest) (weather.DatesResponse, error) {
		require.Equal(t, "Paris", req.Location)
		require.Equal(t, "sunny", req.Condition)
		require.Equal(t, 5, req.Days)
		return weather.DatesResponse{Condition: "sunny", Dates: []string{"2025-08-18"}}, nil
	}

	rec := performRequest(http.MethodGet, "/api/v1/weather/dates?location=Paris&condition=sunny&days=5", "", newRouterUnderTest(t, deps, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got weather.DatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, []string{"2025-08-18"}, got.Dates)
}

func TestRouter_WeatherLocationNotFound(t *testing.T) {
	deps := newStubDeps()
	deps.weather.fn = func(ctx context.Context, req weather.DatesRequest) (weather.DatesResponse, error) {
		return weather.DatesResponse{}, apperrors.Wrap("location_not_found", "no coordinates found for Atlantis", weather.ErrLocationNotFound)
	}

	rec := performRequest(http.MethodGet, "/api/v1/weather/dates?location=Atlantis", "", newRouterUnderTest(t, deps, nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "location_not_found", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_HolidaysEmployeeResolution(t *testing.T) {
	deps := newStubDeps()
	var seen []int64
	deps.holidays.fn = func(ctx context.Context, employeeID int64) (holiday.Response, error) {
		seen = append(seen, employeeID)
		return holiday.Response{EmployeeID: employeeID}, nil
	}
	server := newRouterUnderTest(t, deps, nil)

	require.Equal(t, http.StatusOK, performRequest(http.MethodGet, "/api/v1/holidays", "", server).Code)
	require.Equal(t, http.StatusOK, performRequest(http.MethodGet, "/api/v1/holidays?employeeId=42", "", server).Code)
	require.Equal(t, []int64{1001, 42}, seen)

	rec := performRequest(http.MethodGet, "/api/v1/holidays?employeeId=abc", "", server)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_HotelPreferences(t *testing.T) {
	deps := newStubDeps()
	deps.prefs.preferencesFn = func(ctx context.Context, query string) (hotelpref.PreferencesResponse, error) {
		require.Equal(t, "quiet rooms", query)
		return hotelpref.PreferencesResponse{Text: "no structured data"}, nil
	}
	deps.prefs.indexFn = func(ctx context.Context) (hotelpref.IndexResult, error) {
		return hotelpref.IndexResult{}, apperrors.Wrap("document_error", "read preference document", errors.New("missing"))
	}
	server := newRouterUnderTest(t, deps, nil)

	rec := performRequest(http.MethodGet, "/api/v1/hotel-preferences?query=quiet+rooms", "", server)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(http.MethodPost, "/api/v1/hotel-preferences/index", "", server)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "document_error", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_Healthz(t *testing.T) {
	rec := performRequest(http.MethodGet, "/healthz", "", newRouterUnderTest(t, newStubDeps(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_AuthRequiresBearerToken(t *testing.T) {
	authSvc := auth.NewService(auth.Config{Secret: "test-secret", TokenTTL: time.Hour}, newTestLogger())
	deps := newStubDeps()
	var seen int64
	deps.holidays.fn = func(ctx context.Context, employeeID int64) (holiday.Response, error) {
		seen = employeeID
		return holiday.Response{EmployeeID: employeeID}, nil
	}
	server := newRouterUnderTest(t, deps, func(cfg *config.Config) {
		cfg.Auth.Enabled = true
	}, withAuth(authSvc))

	rec := performRequest(http.MethodGet, "/api/v1/holidays", "", server)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/holidays?employeeId=42", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	token, err := authSvc.Issue(context.Background(), auth.IssueRequest{EmployeeID: 7})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/holidays?employeeId=42", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(7), seen)

	// health stays open
	require.Equal(t, http.StatusOK, performRequest(http.MethodGet, "/healthz", "", server).Code)
}

func TestRouter_RateLimit(t *testing.T) {
	server := newRouterUnderTest(t, newStubDeps(), func(cfg *config.Config) {
		cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 2}
	})

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, performRequest(http.MethodGet, "/api/v1/holidays", "", server).Code)
	}
	rec := performRequest(http.MethodGet, "/api/v1/holidays", "", server)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_RetriesExtractButNotPlan(t *testing.T) {
	deps := newStubDeps()
	extractCalls := 0
	deps.extractor.extractFn = func(ctx context.Context, prompt string) (trip.Extraction, error) {
		extractCalls++
		require.Equal(t, "again", prompt)
		if extractCalls == 1 {
			return trip.Extraction{}, errors.New("flaky")
		}
		return trip.Extraction{Message: "ok"}, nil
	}
	planCalls := 0
	deps.planner.planFn = func(ctx context.Context, req trip.PlanRequest) (trip.PlanResponse, error) {
		planCalls++
		return trip.PlanResponse{}, errors.New("flaky")
	}
	server := newRouterUnderTest(t, deps, func(cfg *config.Config) {
		cfg.HTTP.Retry = config.RetryConfig{Enabled: true, MaxAttempts: 3, BaseBackoff: time.Millisecond, Exclude: []string{"/api/v1/trips/plan"}}
	})

	rec := performRequest(http.MethodPost, "/api/v1/trips/extract", `{"prompt":"again"}`, server)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, extractCalls)

	rec = performRequest(http.MethodPost, "/api/v1/trips/plan", `{"prompt":"go"}`, server)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, planCalls)
}

func TestRouter_CORSPreflight(t *testing.T) {
	server := newRouterUnderTest(t, newStubDeps(), func(cfg *config.Config) {
		cfg.HTTP.CORSOrigins = []string{"https://desk.example.com"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/trips/plan", nil)
	req.Header.Set("Origin", "https://desk.example.com")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://desk.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestBackoffDoubles(t *testing.T) {
	require.Equal(t, time.Duration(0), backoff(time.Second, 1))
	require.Equal(t, time.Second, backoff(time.Second, 2))
	require.Equal(t, 4*time.Second, backoff(time.Second, 4))
}

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

type routerOption func(*routerSetup)

type routerSetup struct {
	authSvc auth.Service
}

func withAuth(svc auth.Service) routerOption {
	return func(s *routerSetup) { s.authSvc = svc }
}

func newRouterUnderTest(t *testing.T, deps *stubDeps, mutate func(*config.Config), opts ...routerOption) *http.Server {
	t.Helper()
	setup := &routerSetup{}
	for _, opt := range opts {
		opt(setup)
	}
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	if mutate != nil {
		mutate(cfg)
	}
	handler := NewHandler(deps.planner, deps.extractor, deps.weather, deps.holidays, deps.prefs, holiday.DefaultEmployeeID, newTestLogger())
	return NewRouter(cfg, handler, setup.authSvc)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

type stubDeps struct {
	planner   *stubPlanner
	extractor *stubExtractor
	weather   *stubWeather
	holidays  *stubHolidays
	prefs     *stubPrefs
}

func newStubDeps() *stubDeps {
	return &stubDeps{
		planner:   &stubPlanner{},
		extractor: &stubExtractor{},
		weather:   &stubWeather{},
		holidays:  &stubHolidays{},
		prefs:     &stubPrefs{},
	}
}

type stubPlanner struct {
	planFn func(ctx context.Context, req trip.PlanRequest) (trip.PlanResponse, error)
}

func (s *stubPlanner) Plan(ctx context.Context, req trip.PlanRequest) (trip.PlanResponse, error) {
	if s.planFn != nil {
		return s.planFn(ctx, req)
	}
	return trip.PlanResponse{}, nil
}

type stubExtractor struct {
	extractFn func(ctx context.Context, prompt string) (trip.Extraction, error)
}

func (s *stubExtractor) Extract(ctx context.Context, prompt string) (trip.Extraction, error) {
	if s.extractFn != nil {
		return s.extractFn(ctx, prompt)
	}
	return trip.Extraction{}, nil
}

type stubWeather struct {
	fn func(ctx context.Context, req weather.DatesRequest) (weather.DatesResponse, error)
}

func (s *stubWeather) RelevantDates(ctx context.Context, req weather.DatesRequest) (weather.DatesResponse, error) {
	if s.fn != nil {
		return s.fn(ctx, req)
	}
	return weather.DatesResponse{}, nil
}

type stubHolidays struct {
	fn func(ctx context.Context, employeeID int64) (holiday.Response, error)
}

func (s *stubHolidays) Upcoming(ctx context.Context, employeeID int64) (holiday.Response, error) {
	if s.fn != nil {
		return s.fn(ctx, employeeID)
	}
	return holiday.Response{EmployeeID: employeeID}, nil
}

type stubPrefs struct {
	indexFn       func(ctx context.Context) (hotelpref.IndexResult, error)
	preferencesFn func(ctx context.Context, query string) (hotelpref.PreferencesResponse, error)
}

func (s *stubPrefs) Index(ctx context.Context) (hotelpref.IndexResult, error) {
	if s.indexFn != nil {
		return s.indexFn(ctx)
	}
	return hotelpref.IndexResult{}, nil
}

func (s *stubPrefs) Retrieve(ctx context.Context, query string, n int) ([]hotelpref.Match, error) {
	return nil, nil
}

func (s *stubPrefs) Preferences(ctx context.Context, query string) (hotelpref.PreferencesResponse, error) {
	if s.preferencesFn != nil {
		return s.preferencesFn(ctx, query)
	}
	return hotelpref.PreferencesResponse{}, nil
}
