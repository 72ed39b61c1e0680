package services

import (
	portsclients "github.com/dkazlouski/currency_exchange_app/internal/core/ports/clients"
	portsrepo "github.com/dkazlouski/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/dkazlouski/currency_exchange_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, feed portsclients.RateFeed) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Rate = NewRateService(repos.RateRepo)
	container.RateSync = NewRateSyncService(feed, repos.RateRepo)
	container.Deal = NewDealService(repos.DealRepo, repos.RateRepo)

	return container
}

// Compile-time interface implementation checks.
var (
	_ portssvc.DealSvcFacade     = (*DealService)(nil)
	_ portssvc.RateSvcFacade     = (*RateService)(nil)
	_ portssvc.RateSyncSvcFacade = (*RateSyncService)(nil)
)
