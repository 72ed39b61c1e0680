package dto

import (
	"github.com/dkazlouski/currency_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TurnoverItemResponse is one per-currency row of the turnover report.
type TurnoverItemResponse struct {
	Currency  string          `json:"currency"`
	InAmount  decimal.Decimal `json:"inAmount"`
	OutAmount decimal.Decimal `json:"outAmount"`
	DealCount int64           `json:"dealCount"`
}

// ToTurnoverReportResponse converts aggregation rows to response DTOs.
func ToTurnoverReportResponse(rows []domain.CurrencyTurnover) []TurnoverItemResponse {
	responses := make([]TurnoverItemResponse, len(rows))
	for i, row := range rows {
		responses[i] = TurnoverItemResponse{
			Currency:  row.Currency,
			InAmount:  row.InAmount,
			OutAmount: row.OutAmount,
			DealCount: row.DealCount,
		}
	}
	return responses
}
