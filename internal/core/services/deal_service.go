package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dkazlouski/currency_exchange_app/internal/apperrors"
	"github.com/dkazlouski/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/dkazlouski/currency_exchange_app/internal/core/ports/repositories"
	"github.com/dkazlouski/currency_exchange_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// amountToPlaces is the fractional precision of converted amounts.
const amountToPlaces = 4

// DealService implements the deal lifecycle: preview creates a PENDING draft
// with the quoted rates locked in, confirm finalizes it exactly once.
type DealService struct {
	BaseService
	dealRepo portsrepo.DealRepository
	rateRepo portsrepo.RateRepository
}

// NewDealService creates a new DealService.
func NewDealService(dealRepo portsrepo.DealRepository, rateRepo portsrepo.RateRepository) *DealService {
	return &DealService{
		dealRepo: dealRepo,
		rateRepo: rateRepo,
	}
}

// calcAmountTo converts amountFrom into the base accounting currency via
// amountFrom * (rateFrom / scaleFrom), then into the target currency by
// dividing through (rateTo / scaleTo). The two steps are folded so only a
// single inexact division happens before rounding to 4 places half-up.
func calcAmountTo(amountFrom, rateFrom decimal.Decimal, scaleFrom int64, rateTo decimal.Decimal, scaleTo int64) decimal.Decimal {
	baseAmount := amountFrom.Mul(rateFrom).Div(decimal.NewFromInt(scaleFrom))
	amountTo := baseAmount.Mul(decimal.NewFromInt(scaleTo)).Div(rateTo)
	return amountTo.Round(amountToPlaces)
}

// PreviewDeal quotes a conversion at the latest stored rates and persists a
// PENDING draft deal snapshotting those rates. The confirm step never re-reads
// the rate table; the quote returned here is contractually locked in.
func (s *DealService) PreviewDeal(ctx context.Context, req dto.PreviewDealRequest) (*dto.PreviewDealResponse, error) {
	currencyFrom := strings.ToUpper(req.CurrencyFrom)
	currencyTo := strings.ToUpper(req.CurrencyTo)

	if req.AmountFrom.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amountFrom must be positive", apperrors.ErrValidation)
	}
	if currencyFrom == currencyTo {
		return nil, fmt.Errorf("%w: currencyFrom and currencyTo cannot be the same", apperrors.ErrValidation)
	}

	rateFrom, err := s.lookupRate(ctx, currencyFrom)
	if err != nil {
		return nil, err
	}
	rateTo, err := s.lookupRate(ctx, currencyTo)
	if err != nil {
		return nil, err
	}

	// Zero scale or a zero target rate would make the conversion divide by zero.
	// That is corrupt upstream data, not a caller mistake.
	if rateFrom.Scale == 0 || rateTo.Scale == 0 {
		return nil, apperrors.NewDependencyError("rate data has zero scale", nil)
	}
	if rateTo.Rate.IsZero() {
		return nil, apperrors.NewDependencyError("rate data has zero rate for "+currencyTo, nil)
	}

	amountTo := calcAmountTo(req.AmountFrom, rateFrom.Rate, rateFrom.Scale, rateTo.Rate, rateTo.Scale)

	deal := domain.Deal{
		DealID:       uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		AmountFrom:   req.AmountFrom,
		AmountTo:     amountTo,
		CurrencyFrom: currencyFrom,
		CurrencyTo:   currencyTo,
		RateFrom:     rateFrom.Rate,
		ScaleFrom:    rateFrom.Scale,
		RateTo:       rateTo.Rate,
		ScaleTo:      rateTo.Scale,
		Status:       domain.DealStatusPending,
	}

	if err := s.dealRepo.CreateDeal(ctx, deal); err != nil {
		s.LogError(ctx, err, "Failed to persist draft deal", slog.String("deal_id", deal.DealID))
		return nil, err
	}

	s.LogInfo(ctx, "Draft deal created",
		slog.String("deal_id", deal.DealID),
		slog.String("currency_from", currencyFrom),
		slog.String("currency_to", currencyTo),
	)

	return &dto.PreviewDealResponse{
		DealID:    deal.DealID,
		AmountTo:  amountTo,
		RateFrom:  deal.RateFrom,
		ScaleFrom: deal.ScaleFrom,
		RateTo:    deal.RateTo,
		ScaleTo:   deal.ScaleTo,
		Status:    deal.Status,
	}, nil
}

// ConfirmDeal finalizes a pending deal. The status transition is a conditional
// update at the storage layer, so two concurrent calls for the same deal cannot
// both succeed: the loser observes the already-finalized state as a conflict.
func (s *DealService) ConfirmDeal(ctx context.Context, req dto.ConfirmDealRequest) (*dto.ConfirmDealResponse, error) {
	newStatus := domain.DealStatusRejected
	if req.Action == domain.ConfirmActionConfirm {
		newStatus = domain.DealStatusConfirmed
	}

	deal, err := s.dealRepo.FinalizeDeal(ctx, req.DealID, newStatus)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Deal finalized",
		slog.String("deal_id", deal.DealID),
		slog.String("status", string(deal.Status)),
	)

	return &dto.ConfirmDealResponse{
		ID:     deal.DealID,
		Status: deal.Status,
	}, nil
}

// ListPendingDeals returns all draft deals with their snapshotted quote fields.
func (s *DealService) ListPendingDeals(ctx context.Context) ([]domain.Deal, error) {
	return s.dealRepo.ListPendingDeals(ctx)
}

// GetTurnoverReport aggregates confirmed deals created within [from, to] into
// per-currency incoming/outgoing sums and participation counts. A non-empty
// currency narrows the report to that currency's row.
func (s *DealService) GetTurnoverReport(ctx context.Context, from, to time.Time, currency string) ([]domain.CurrencyTurnover, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: report range start is after its end", apperrors.ErrValidation)
	}
	return s.dealRepo.SumConfirmedTurnover(ctx, from, to, strings.ToUpper(currency))
}

// lookupRate resolves the latest rate for a currency, translating a missing row
// into a validation error since the caller supplied an unknown currency code.
func (s *DealService) lookupRate(ctx context.Context, currency string) (*domain.Rate, error) {
	rate, err := s.rateRepo.FindLatestByCurrency(ctx, currency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, currency)
		}
		return nil, err
	}
	return rate, nil
}
