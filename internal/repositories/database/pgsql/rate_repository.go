package pgsql

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dkazlouski/currency_exchange_app/internal/apperrors"
	"github.com/dkazlouski/currency_exchange_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRateRepository implements the repositories.RateRepository interface using pgxpool.
type PgxRateRepository struct {
	BaseRepository
}

// NewPgxRateRepository creates a new PgxRateRepository.
func NewPgxRateRepository(db *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// UpsertRates inserts or overwrites the given rate rows in one transaction.
// The (rate_date, currency) uniqueness constraint turns a re-run with unchanged
// values into an effective no-op, which is what makes a sync run idempotent.
func (r *PgxRateRepository) UpsertRates(ctx context.Context, rates []domain.Rate) (int64, error) {
	if len(rates) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO rates (currency, scale, rate, rate_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (rate_date, currency)
		DO UPDATE SET scale = EXCLUDED.scale, rate = EXCLUDED.rate;
	`

	for _, rate := range rates {
		_, err = tx.Exec(ctx, query,
			strings.ToUpper(rate.Currency), rate.Scale, rate.Rate, rate.Date,
		)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			return 0, apperrors.NewDependencyError("failed to upsert rate for "+rate.Currency, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return int64(len(rates)), nil
}

// FindLatestByCurrency retrieves the most recent rate row for a currency.
func (r *PgxRateRepository) FindLatestByCurrency(ctx context.Context, currency string) (*domain.Rate, error) {
	query := `
		SELECT currency, scale, rate, rate_date
		FROM rates
		WHERE currency = $1
		ORDER BY rate_date DESC
		LIMIT 1;
	`

	var rate domain.Rate
	err := r.Pool.QueryRow(ctx, query, strings.ToUpper(currency)).Scan(
		&rate.Currency, &rate.Scale, &rate.Rate, &rate.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no rate found for currency " + currency)
		}
		return nil, apperrors.NewDependencyError("failed to find latest rate", err)
	}

	return &rate, nil
}

// ListByDate retrieves all rates stored for exactly the given date.
func (r *PgxRateRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.Rate, error) {
	query := `
		SELECT currency, scale, rate, rate_date
		FROM rates
		WHERE rate_date = $1
		ORDER BY currency;
	`

	rows, err := r.Pool.Query(ctx, query, date)
	if err != nil {
		return nil, apperrors.NewDependencyError("failed to list rates", err)
	}
	defer rows.Close()

	rates := []domain.Rate{}
	for rows.Next() {
		var rate domain.Rate
		if err := rows.Scan(&rate.Currency, &rate.Scale, &rate.Rate, &rate.Date); err != nil {
			return nil, apperrors.NewDependencyError("failed to scan rate", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDependencyError("error iterating rates", err)
	}

	return rates, nil
}
