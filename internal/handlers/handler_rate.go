package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/dkazlouski/currency_exchange_app/internal/core/ports/services"
	"github.com/dkazlouski/currency_exchange_app/internal/dto"
	"github.com/dkazlouski/currency_exchange_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests related to currency rates.
type rateHandler struct {
	rateService     portssvc.RateSvcFacade
	rateSyncService portssvc.RateSyncSvcFacade
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade, rss portssvc.RateSyncSvcFacade) *rateHandler {
	return &rateHandler{
		rateService:     rs,
		rateSyncService: rss,
	}
}

// registerRateRoutes registers routes related to currency rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade, rateSyncService portssvc.RateSyncSvcFacade) {
	h := newRateHandler(rateService, rateSyncService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listRates)
		rates.POST("/sync", h.syncRates)
	}
}

// listRates godoc
// @Summary List rates for a date
// @Description Returns all stored rates for the given date (today when omitted)
// @Tags rates
// @Produce  json
// @Param   ondate query string false "Date in YYYY-MM-DD format"
// @Success 200 {array} dto.RateResponse
// @Failure 400 {object} map[string]string "Invalid date format"
// @Failure 503 {object} map[string]string "Storage fault"
// @Router /rates [get]
func (h *rateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ondate, ok := parseDateQuery(c, "ondate")
	if !ok {
		return
	}

	rates, err := h.rateService.ListRates(c.Request.Context(), ondate)
	if err != nil {
		logger.Error("Failed to list rates", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListRateResponse(rates))
}

// syncRates godoc
// @Summary Trigger a rate sync
// @Description Fetches the daily rates from the external feed and upserts them for the given date (feed's today when omitted)
// @Tags rates
// @Produce  json
// @Param   ondate query string false "Date in YYYY-MM-DD format"
// @Success 200 {object} dto.SyncRatesResponse
// @Failure 502 {object} map[string]string "Feed unreachable or malformed"
// @Failure 503 {object} map[string]string "Storage fault"
// @Router /rates/sync [post]
func (h *rateHandler) syncRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ondate, ok := parseDateQuery(c, "ondate")
	if !ok {
		return
	}

	count, err := h.rateSyncService.SyncForDate(c.Request.Context(), ondate)
	if err != nil {
		logger.Error("Manual rates sync failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SyncRatesResponse{RowsAffected: count})
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter. On a malformed
// value it writes a 400 response and reports false.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format, expected YYYY-MM-DD"})
		return nil, false
	}
	return &parsed, true
}
