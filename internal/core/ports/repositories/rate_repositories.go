package repositories

import (
	"context"
	"time"

	"github.com/dkazlouski/currency_exchange_app/internal/core/domain"
)

// RateRepository defines persistence operations for official currency rates.
type RateRepository interface {
	// UpsertRates inserts every row or, on a (date, currency) conflict, overwrites
	// scale and rate. The whole batch is applied atomically and committed before
	// returning. Returns the number of rows processed, overwrites included.
	UpsertRates(ctx context.Context, rates []domain.Rate) (int64, error)

	// FindLatestByCurrency returns the most recent rate row for a currency
	// (highest date wins). Returns apperrors.ErrNotFound when none exists.
	FindLatestByCurrency(ctx context.Context, currency string) (*domain.Rate, error)

	// ListByDate returns all rates for exactly the given date, possibly empty.
	ListByDate(ctx context.Context, date time.Time) ([]domain.Rate, error)
}
