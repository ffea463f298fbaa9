package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/holiday"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/hotelpref"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/trip"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/weather"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	planner           trip.Planner
	extractor         trip.Extractor
	weatherSvc        weather.Service
	holidaySvc        holiday.Service
	prefsSvc          hotelpref.Service
	defaultEmployeeID int64
	logger            *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(planner trip.Planner, extractor trip.Extractor, weatherSvc weather.Service, holidaySvc holiday.Service, prefsSvc hotelpref.Service, defaultEmployeeID int64, logger *slog.Logger) *Handler {
	if defaultEmployeeID <= 0 {
		defaultEmployeeID = holiday.DefaultEmployeeID
	}
	return &Handler{
		planner:           planner,
		extractor:         extractor,
		weatherSvc:        weatherSvc,
		holidaySvc:        holidaySvc,
		prefsSvc:          prefsSvc,
		defaultEmployeeID: defaultEmployeeID,
		logger:            logger.With("component", "http.handler"),
	}
}

// PlanTrip runs the full planning pipeline.
func (h *Handler) PlanTrip(c *gin.Context) {
	var req trip.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	req.EmployeeID = employeeID(c, req.EmployeeID, h.defaultEmployeeID)

	resp, err := h.planner.Plan(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err, "plan_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExtractTrip returns the structured reading of a prompt without planning.
func (h *Handler) ExtractTrip(c *gin.Context) {
	var req trip.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.extractor.Extract(c.Request.Context(), req.Prompt)
	if err != nil {
		abortWithError(c, domainError(err, "extract_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// WeatherDates lists forecast days matching a condition.
func (h *Handler) WeatherDates(c *gin.Context) {
	var req weather.DatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.weatherSvc.RelevantDates(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err, "weather_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Holidays lists the caller's upcoming holidays.
func (h *Handler) Holidays(c *gin.Context) {
	var requested int64
	if raw := c.Query("employeeId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "employeeId must be an integer", err))
			return
		}
		requested = parsed
	}

	resp, err := h.holidaySvc.Upcoming(c.Request.Context(), employeeID(c, requested, h.defaultEmployeeID))
	if err != nil {
		abortWithError(c, domainError(err, "holidays_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// IndexPreferences re-reads and re-indexes the preference document.
func (h *Handler) IndexPreferences(c *gin.Context) {
	resp, err := h.prefsSvc.Index(c.Request.Context())
	if err != nil {
		abortWithError(c, domainError(err, "index_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HotelPreferences extracts structured preferences from the indexed document.
func (h *Handler) HotelPreferences(c *gin.Context) {
	resp, err := h.prefsSvc.Preferences(c.Request.Context(), c.Query("query"))
	if err != nil {
		abortWithError(c, domainError(err, "preferences_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
