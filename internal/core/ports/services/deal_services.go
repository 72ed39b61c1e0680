package services

import (
	"context"
	"time"

	"github.com/dkazlouski/currency_exchange_app/internal/core/domain"
	"github.com/dkazlouski/currency_exchange_app/internal/dto"
)

// DealSvcFacade exposes the deal lifecycle: quoting a conversion into a PENDING
// draft, finalizing it exactly once, and listing open drafts.
type DealSvcFacade interface {
	PreviewDeal(ctx context.Context, req dto.PreviewDealRequest) (*dto.PreviewDealResponse, error)
	ConfirmDeal(ctx context.Context, req dto.ConfirmDealRequest) (*dto.ConfirmDealResponse, error)
	ListPendingDeals(ctx context.Context) ([]domain.Deal, error)
	GetTurnoverReport(ctx context.Context, from, to time.Time, currency string) ([]domain.CurrencyTurnover, error)
}
