package repositories

import (
	"context"
	"time"

	"github.com/dkazlouski/currency_exchange_app/internal/core/domain"
)

// DealRepository defines persistence operations for deals.
type DealRepository interface {
	// CreateDeal persists a new deal record.
	CreateDeal(ctx context.Context, deal domain.Deal) error

	// FindDealByID fetches a deal by its identifier.
	// Returns apperrors.ErrNotFound when it does not exist.
	FindDealByID(ctx context.Context, dealID string) (*domain.Deal, error)

	// FinalizeDeal conditionally transitions a deal from PENDING to newStatus as a
	// single atomic compare-and-set at the storage layer. Of two concurrent calls
	// for the same deal exactly one succeeds; the loser gets apperrors.ErrConflict.
	// A missing deal yields apperrors.ErrNotFound.
	FinalizeDeal(ctx context.Context, dealID string, newStatus domain.DealStatus) (*domain.Deal, error)

	// ListPendingDeals returns all deals still in PENDING status, newest first.
	ListPendingDeals(ctx context.Context) ([]domain.Deal, error)

	// SumConfirmedTurnover aggregates confirmed deals created within [from, to]
	// into per-currency incoming/outgoing sums and participation counts. A
	// non-empty currency narrows the result to that currency's row; empty means
	// all currencies.
	SumConfirmedTurnover(ctx context.Context, from, to time.Time, currency string) ([]domain.CurrencyTurnover, error)
}
