package services

// ServiceContainer bundles all service facades for route registration.
type ServiceContainer struct {
	Deal     DealSvcFacade
	Rate     RateSvcFacade
	RateSync RateSyncSvcFacade
}
