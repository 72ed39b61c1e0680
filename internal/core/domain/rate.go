package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate is the official exchange rate of one currency for one calendar date,
// quoted as the value of Scale units of Currency in the base accounting currency.
// At most one row exists per (Date, Currency); the pair is unique in storage.
type Rate struct {
	Currency string          `json:"currency"` // short code, e.g. "USD"
	Scale    int64           `json:"scale"`    // units the rate is quoted per (1, 10, 100...)
	Rate     decimal.Decimal `json:"rate"`
	Date     time.Time       `json:"date"` // calendar date, midnight UTC
}
