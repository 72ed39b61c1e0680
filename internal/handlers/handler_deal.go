package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/dkazlouski/currency_exchange_app/internal/core/ports/services"
	"github.com/dkazlouski/currency_exchange_app/internal/dto"
	"github.com/dkazlouski/currency_exchange_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// dealHandler handles HTTP requests related to deals.
type dealHandler struct {
	dealService portssvc.DealSvcFacade
}

// newDealHandler creates a new dealHandler.
func newDealHandler(ds portssvc.DealSvcFacade) *dealHandler {
	return &dealHandler{
		dealService: ds,
	}
}

// registerDealRoutes registers routes related to deals.
func registerDealRoutes(rg *gin.RouterGroup, dealService portssvc.DealSvcFacade) {
	h := newDealHandler(dealService)

	deals := rg.Group("/deals")
	{
		deals.POST("/preview", h.previewDeal)
		deals.POST("/confirm", h.confirmDeal)
		deals.GET("/pending", h.listPendingDeals)
	}
}

// previewDeal godoc
// @Summary Quote a conversion and create a draft deal
// @Description Converts an amount at the latest official rates and persists a PENDING deal with the quoted rates locked in
// @Tags deals
// @Accept  json
// @Produce  json
// @Param   deal body dto.PreviewDealRequest true "Conversion details"
// @Success 200 {object} dto.PreviewDealResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown currency"
// @Failure 503 {object} map[string]string "Corrupt rate data or storage fault"
// @Router /deals/preview [post]
func (h *dealHandler) previewDeal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PreviewDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewDeal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.dealService.PreviewDeal(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Deal preview failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// confirmDeal godoc
// @Summary Finalize a pending deal
// @Description Transitions a PENDING deal to CONFIRMED or REJECTED exactly once
// @Tags deals
// @Accept  json
// @Produce  json
// @Param   confirmation body dto.ConfirmDealRequest true "Deal id and requested action"
// @Success 200 {object} dto.ConfirmDealResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 404 {object} map[string]string "Deal not found"
// @Failure 409 {object} map[string]string "Deal already finalized"
// @Router /deals/confirm [post]
func (h *dealHandler) confirmDeal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConfirmDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConfirmDeal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.dealService.ConfirmDeal(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Deal confirmation failed", slog.String("deal_id", req.DealID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listPendingDeals godoc
// @Summary List draft deals
// @Description Returns all deals still in PENDING status with their snapshotted quotes, newest first
// @Tags deals
// @Produce  json
// @Success 200 {array} dto.PendingDealResponse
// @Failure 503 {object} map[string]string "Storage fault"
// @Router /deals/pending [get]
func (h *dealHandler) listPendingDeals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	deals, err := h.dealService.ListPendingDeals(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list pending deals", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListPendingDealResponse(deals))
}
