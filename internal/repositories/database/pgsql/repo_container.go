package pgsql

import (
	portsrepo "github.com/dkazlouski/currency_exchange_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx-backed repositories over one pool.
func NewRepositoryProvider(db *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		RateRepo: NewPgxRateRepository(db),
		DealRepo: NewPgxDealRepository(db),
	}
}
