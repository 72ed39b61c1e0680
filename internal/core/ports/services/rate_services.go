package services

import (
	"context"
	"time"

	"github.com/dkazlouski/currency_exchange_app/internal/core/domain"
)

// RateSvcFacade exposes read access to the stored rate table.
type RateSvcFacade interface {
	// ListRates returns all rates for ondate, defaulting to today when nil.
	ListRates(ctx context.Context, ondate *time.Time) ([]domain.Rate, error)
	// GetLatestRate returns the most recent rate for a currency code.
	GetLatestRate(ctx context.Context, currency string) (*domain.Rate, error)
}

// RateSyncSvcFacade runs one idempotent fetch-and-upsert cycle against the
// external feed. Used by the daily scheduler, the startup sync and the manual
// sync endpoint.
type RateSyncSvcFacade interface {
	// SyncForDate syncs rates for ondate (feed's "today" when nil) and returns
	// the number of rows upserted. A feed returning zero records is a no-op.
	SyncForDate(ctx context.Context, ondate *time.Time) (int64, error)
}
