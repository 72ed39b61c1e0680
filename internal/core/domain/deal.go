package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DealStatus is the lifecycle state of a Deal.
type DealStatus string

const (
	DealStatusPending   DealStatus = "PENDING"
	DealStatusConfirmed DealStatus = "CONFIRMED"
	DealStatusRejected  DealStatus = "REJECTED"
)

// ConfirmAction is the caller's requested outcome for a pending deal.
type ConfirmAction string

const (
	ConfirmActionConfirm ConfirmAction = "confirm"
	ConfirmActionReject  ConfirmAction = "reject"
)

// Deal is one currency conversion request and its outcome. The rate fields are
// snapshotted from the rate table at preview time and never re-read afterwards:
// the quoted terms are locked in when the draft is created. Status moves
// PENDING -> CONFIRMED or PENDING -> REJECTED exactly once; a non-pending deal
// is immutable.
type Deal struct {
	DealID       string          `json:"dealID"` // UUID, generated at creation
	CreatedAt    time.Time       `json:"createdAt"`
	AmountFrom   decimal.Decimal `json:"amountFrom"`
	AmountTo     decimal.Decimal `json:"amountTo"`
	CurrencyFrom string          `json:"currencyFrom"`
	CurrencyTo   string          `json:"currencyTo"`
	RateFrom     decimal.Decimal `json:"rateFrom"`
	ScaleFrom    int64           `json:"scaleFrom"`
	RateTo       decimal.Decimal `json:"rateTo"`
	ScaleTo      int64           `json:"scaleTo"`
	Status       DealStatus      `json:"status"`
}
