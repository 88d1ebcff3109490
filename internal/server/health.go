package server

import "context"

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// StoreHealthService verifies the durable record store as part of health
// checks. The remote dataset is deliberately excluded: its unavailability is
// a supported mode, not a degradation.
type StoreHealthService struct {
	Pinger interface {
		Ping(ctx context.Context) error
	}
}

// Probe implements the HealthService interface.
func (s StoreHealthService) Probe(ctx context.Context) error {
	if s.Pinger == nil {
		return nil
	}
	return s.Pinger.Ping(ctx)
}
