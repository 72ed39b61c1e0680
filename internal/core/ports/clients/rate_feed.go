package clients

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateRecord is one raw record from the external rate feed. Date is kept as the
// feed's raw string so the sync engine owns the hard-failure rule for records
// that are missing or carry an unparseable date.
type RateRecord struct {
	Abbreviation string
	Scale        int64
	Rate         decimal.Decimal
	Date         string
}

// RateFeed pulls official rate snapshots from the external publishing source.
// Implementations do one round trip per call and never retry internally; retry
// policy belongs to the caller.
type RateFeed interface {
	// FetchDaily fetches the daily rate list for ondate, or for the feed's "today"
	// when ondate is nil. Non-2xx responses, non-list payloads and transport
	// faults surface as apperrors.ErrExternalService.
	FetchDaily(ctx context.Context, ondate *time.Time) ([]RateRecord, error)
}
