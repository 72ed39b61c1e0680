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

// reportingHandler handles HTTP requests for deal aggregation reports.
type reportingHandler struct {
	dealService portssvc.DealSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(ds portssvc.DealSvcFacade) *reportingHandler {
	return &reportingHandler{
		dealService: ds,
	}
}

// registerReportingRoutes registers reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, dealService portssvc.DealSvcFacade) {
	h := newReportingHandler(dealService)

	reports := rg.Group("/reports")
	{
		reports.GET("/turnover", h.getTurnoverReport)
	}
}

// getTurnoverReport godoc
// @Summary Per-currency turnover of confirmed deals
// @Description Sums incoming and outgoing amounts and counts deal participation per currency over a closed date range
// @Tags reports
// @Produce  json
// @Param   from query string true "Range start in YYYY-MM-DD format"
// @Param   to query string true "Range end in YYYY-MM-DD format"
// @Param   currency query string false "Optional currency code to filter"
// @Success 200 {array} dto.TurnoverItemResponse
// @Failure 400 {object} map[string]string "Missing or malformed range"
// @Failure 503 {object} map[string]string "Storage fault"
// @Router /reports/turnover [get]
func (h *reportingHandler) getTurnoverReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}
	if from == nil || to == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both from and to query parameters are required"})
		return
	}

	// The range is closed: include the whole "to" day.
	rangeEnd := to.Add(24*time.Hour - time.Nanosecond)

	rows, err := h.dealService.GetTurnoverReport(c.Request.Context(), *from, rangeEnd, c.Query("currency"))
	if err != nil {
		logger.Error("Failed to build turnover report", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTurnoverReportResponse(rows))
}
