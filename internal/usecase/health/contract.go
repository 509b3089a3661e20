package health

import "context"

// CachePinger checks cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// CMSChecker checks CMS configuration and availability.
type CMSChecker interface {
	Configured() bool
	HealthCheck(ctx context.Context) error
}
