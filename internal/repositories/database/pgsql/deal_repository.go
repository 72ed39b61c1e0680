package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/dkazlouski/currency_exchange_app/internal/apperrors"
	"github.com/dkazlouski/currency_exchange_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dealColumns = `
	deal_id, created_at, amount_from, amount_to, currency_from, currency_to,
	rate_from, scale_from, rate_to, scale_to, status`

// PgxDealRepository implements the repositories.DealRepository interface using pgxpool.
type PgxDealRepository struct {
	BaseRepository
}

// NewPgxDealRepository creates a new PgxDealRepository.
func NewPgxDealRepository(db *pgxpool.Pool) *PgxDealRepository {
	return &PgxDealRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// CreateDeal inserts a new deal record.
func (r *PgxDealRepository) CreateDeal(ctx context.Context, deal domain.Deal) error {
	query := `
		INSERT INTO deals (
			deal_id, created_at, amount_from, amount_to, currency_from, currency_to,
			rate_from, scale_from, rate_to, scale_to, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	_, err := r.Pool.Exec(ctx, query,
		deal.DealID, deal.CreatedAt, deal.AmountFrom, deal.AmountTo,
		deal.CurrencyFrom, deal.CurrencyTo,
		deal.RateFrom, deal.ScaleFrom, deal.RateTo, deal.ScaleTo, deal.Status,
	)
	if err != nil {
		return apperrors.NewDependencyError("failed to create deal", err)
	}
	return nil
}

// FindDealByID retrieves a deal by its identifier.
func (r *PgxDealRepository) FindDealByID(ctx context.Context, dealID string) (*domain.Deal, error) {
	query := `SELECT` + dealColumns + ` FROM deals WHERE deal_id = $1;`

	deal, err := r.scanDealRow(r.Pool.QueryRow(ctx, query, dealID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("deal with ID " + dealID + " not found")
		}
		return nil, apperrors.NewDependencyError("failed to find deal", err)
	}
	return deal, nil
}

// FinalizeDeal transitions a deal out of PENDING with a single conditional
// update. The WHERE status = 'PENDING' clause is the race guard: of two
// concurrent calls exactly one matches a row, the other is disambiguated into
// not-found or already-finalized with a follow-up point read.
func (r *PgxDealRepository) FinalizeDeal(ctx context.Context, dealID string, newStatus domain.DealStatus) (*domain.Deal, error) {
	query := `
		UPDATE deals
		SET status = $2
		WHERE deal_id = $1 AND status = $3
		RETURNING` + dealColumns + `;`

	deal, err := r.scanDealRow(r.Pool.QueryRow(ctx, query, dealID, newStatus, domain.DealStatusPending))
	if err == nil {
		return deal, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewDependencyError("failed to finalize deal", err)
	}

	// Zero rows matched: either the deal does not exist or it is no longer PENDING.
	existing, findErr := r.FindDealByID(ctx, dealID)
	if findErr != nil {
		return nil, findErr
	}
	return nil, apperrors.NewConflictError("deal " + existing.DealID + " already finalized with status " + string(existing.Status))
}

// ListPendingDeals returns all deals in PENDING status, newest first. The deal
// id tie-break keeps the order deterministic for equal timestamps.
func (r *PgxDealRepository) ListPendingDeals(ctx context.Context) ([]domain.Deal, error) {
	query := `SELECT` + dealColumns + `
		FROM deals
		WHERE status = $1
		ORDER BY created_at DESC, deal_id;`

	rows, err := r.Pool.Query(ctx, query, domain.DealStatusPending)
	if err != nil {
		return nil, apperrors.NewDependencyError("failed to list pending deals", err)
	}
	defer rows.Close()

	deals := []domain.Deal{}
	for rows.Next() {
		var deal domain.Deal
		if err := rows.Scan(
			&deal.DealID, &deal.CreatedAt, &deal.AmountFrom, &deal.AmountTo,
			&deal.CurrencyFrom, &deal.CurrencyTo,
			&deal.RateFrom, &deal.ScaleFrom, &deal.RateTo, &deal.ScaleTo, &deal.Status,
		); err != nil {
			return nil, apperrors.NewDependencyError("failed to scan deal", err)
		}
		deals = append(deals, deal)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDependencyError("error iterating deals", err)
	}

	return deals, nil
}

// SumConfirmedTurnover aggregates confirmed deals created within [from, to] into
// per-currency incoming sums (currency as destination), outgoing sums (currency
// as source) and participation counts (one per side a deal appears on). An empty
// currency returns every currency's row; otherwise only the filtered one.
func (r *PgxDealRepository) SumConfirmedTurnover(ctx context.Context, from, to time.Time, currency string) ([]domain.CurrencyTurnover, error) {
	query := `
		SELECT
			currency,
			COALESCE(SUM(in_amount), 0) AS in_amount,
			COALESCE(SUM(out_amount), 0) AS out_amount,
			COUNT(*) AS deal_count
		FROM (
			SELECT currency_to AS currency, amount_to AS in_amount, NULL::numeric AS out_amount
			FROM deals
			WHERE status = $1 AND created_at >= $2 AND created_at <= $3
			UNION ALL
			SELECT currency_from AS currency, NULL::numeric AS in_amount, amount_from AS out_amount
			FROM deals
			WHERE status = $1 AND created_at >= $2 AND created_at <= $3
		) sides
		WHERE $4 = '' OR currency = $4
		GROUP BY currency
		ORDER BY currency;
	`

	rows, err := r.Pool.Query(ctx, query, domain.DealStatusConfirmed, from, to, currency)
	if err != nil {
		return nil, apperrors.NewDependencyError("failed to query turnover data", err)
	}
	defer rows.Close()

	result := []domain.CurrencyTurnover{}
	for rows.Next() {
		var row domain.CurrencyTurnover
		if err := rows.Scan(&row.Currency, &row.InAmount, &row.OutAmount, &row.DealCount); err != nil {
			return nil, apperrors.NewDependencyError("failed to scan turnover row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDependencyError("error iterating turnover rows", err)
	}

	return result, nil
}

func (r *PgxDealRepository) scanDealRow(row pgx.Row) (*domain.Deal, error) {
	var deal domain.Deal
	err := row.Scan(
		&deal.DealID, &deal.CreatedAt, &deal.AmountFrom, &deal.AmountTo,
		&deal.CurrencyFrom, &deal.CurrencyTo,
		&deal.RateFrom, &deal.ScaleFrom, &deal.RateTo, &deal.ScaleTo, &deal.Status,
	)
	if err != nil {
		return nil, err
	}
	return &deal, nil
}
