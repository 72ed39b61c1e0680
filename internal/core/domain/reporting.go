package domain

import "github.com/shopspring/decimal"

// CurrencyTurnover aggregates confirmed deals touching one currency within a
// reporting period. InAmount sums amounts received with the currency as
// destination, OutAmount sums amounts sent with it as source, and DealCount
// counts one participation per side a deal appears on.
type CurrencyTurnover struct {
	Currency  string          `json:"currency"`
	InAmount  decimal.Decimal `json:"inAmount"`
	OutAmount decimal.Decimal `json:"outAmount"`
	DealCount int64           `json:"dealCount"`
}
