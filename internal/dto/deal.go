package dto

import (
	"time"

	"github.com/dkazlouski/currency_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PreviewDealRequest defines the payload for quoting a conversion.
type PreviewDealRequest struct {
	AmountFrom   decimal.Decimal `json:"amountFrom" binding:"required"`
	CurrencyFrom string          `json:"currencyFrom" binding:"required,len=3,uppercase"`
	CurrencyTo   string          `json:"currencyTo" binding:"required,len=3,uppercase"`
}

// PreviewDealResponse returns the locked-in quote and the new draft deal id.
type PreviewDealResponse struct {
	DealID    string            `json:"dealId"`
	AmountTo  decimal.Decimal   `json:"amountTo"`
	RateFrom  decimal.Decimal   `json:"rateFrom"`
	ScaleFrom int64             `json:"scaleFrom"`
	RateTo    decimal.Decimal   `json:"rateTo"`
	ScaleTo   int64             `json:"scaleTo"`
	Status    domain.DealStatus `json:"status"`
}

// ConfirmDealRequest defines the payload for finalizing a pending deal.
type ConfirmDealRequest struct {
	DealID string               `json:"dealId" binding:"required,uuid"`
	Action domain.ConfirmAction `json:"action" binding:"required,oneof=confirm reject"`
}

// ConfirmDealResponse returns the terminal state of a finalized deal.
type ConfirmDealResponse struct {
	ID     string            `json:"id"`
	Status domain.DealStatus `json:"status"`
}

// PendingDealResponse is one draft deal with its snapshotted quote fields.
type PendingDealResponse struct {
	ID           string            `json:"id"`
	CreatedAt    time.Time         `json:"createdAt"`
	AmountFrom   decimal.Decimal   `json:"amountFrom"`
	AmountTo     decimal.Decimal   `json:"amountTo"`
	CurrencyFrom string            `json:"currencyFrom"`
	CurrencyTo   string            `json:"currencyTo"`
	RateFrom     decimal.Decimal   `json:"rateFrom"`
	ScaleFrom    int64             `json:"scaleFrom"`
	RateTo       decimal.Decimal   `json:"rateTo"`
	ScaleTo      int64             `json:"scaleTo"`
	Status       domain.DealStatus `json:"status"`
}

// ToPendingDealResponse converts a domain.Deal to its response DTO.
func ToPendingDealResponse(deal domain.Deal) PendingDealResponse {
	return PendingDealResponse{
		ID:           deal.DealID,
		CreatedAt:    deal.CreatedAt,
		AmountFrom:   deal.AmountFrom,
		AmountTo:     deal.AmountTo,
		CurrencyFrom: deal.CurrencyFrom,
		CurrencyTo:   deal.CurrencyTo,
		RateFrom:     deal.RateFrom,
		ScaleFrom:    deal.ScaleFrom,
		RateTo:       deal.RateTo,
		ScaleTo:      deal.ScaleTo,
		Status:       deal.Status,
	}
}

// ToListPendingDealResponse converts a slice of deals to response DTOs.
func ToListPendingDealResponse(deals []domain.Deal) []PendingDealResponse {
	responses := make([]PendingDealResponse, len(deals))
	for i, deal := range deals {
		responses[i] = ToPendingDealResponse(deal)
	}
	return responses
}
