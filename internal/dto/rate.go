package dto

import (
	"time"

	"github.com/dkazlouski/currency_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateResponse defines the structure for API responses containing rate details.
type RateResponse struct {
	Currency string          `json:"currency"`
	Scale    int64           `json:"scale"`
	Rate     decimal.Decimal `json:"rate"`
	Date     time.Time       `json:"date"`
}

// SyncRatesResponse reports how many rows a manual sync processed.
type SyncRatesResponse struct {
	RowsAffected int64 `json:"rowsAffected"`
}

// ToRateResponse converts a domain.Rate to RateResponse DTO.
func ToRateResponse(rate domain.Rate) RateResponse {
	return RateResponse{
		Currency: rate.Currency,
		Scale:    rate.Scale,
		Rate:     rate.Rate,
		Date:     rate.Date,
	}
}

// ToListRateResponse converts a slice of domain.Rate to RateResponse DTOs.
func ToListRateResponse(rates []domain.Rate) []RateResponse {
	responses := make([]RateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = ToRateResponse(rate)
	}
	return responses
}
