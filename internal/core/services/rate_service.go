package services

import (
	"context"
	"time"

	"github.com/dkazlouski/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/dkazlouski/currency_exchange_app/internal/core/ports/repositories"
)

// RateService provides read access to the stored rate table.
type RateService struct {
	BaseService
	rateRepo portsrepo.RateRepository
}

// NewRateService creates a new RateService.
func NewRateService(rateRepo portsrepo.RateRepository) *RateService {
	return &RateService{rateRepo: rateRepo}
}

// ListRates returns all rates stored for ondate, defaulting to today (UTC).
func (s *RateService) ListRates(ctx context.Context, ondate *time.Time) ([]domain.Rate, error) {
	effectiveDate := time.Now().UTC().Truncate(24 * time.Hour)
	if ondate != nil {
		effectiveDate = *ondate
	}
	return s.rateRepo.ListByDate(ctx, effectiveDate)
}

// GetLatestRate returns the most recent rate row for a currency code.
func (s *RateService) GetLatestRate(ctx context.Context, currency string) (*domain.Rate, error) {
	return s.rateRepo.FindLatestByCurrency(ctx, currency)
}
