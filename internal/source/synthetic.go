package source

import (
	"context"
	"sync"

	"github.com/opeyemi/lenddesk/internal/domain"
	"github.com/opeyemi/lenddesk/internal/generator"
)

// SyntheticSource serves a locally generated user collection. The first call
// generates the dataset; subsequent calls return the same memoized slice so
// downstream consumers see a stable collection until Reset.
type SyntheticSource struct {
	cfg generator.Config

	mu    sync.Mutex
	users []domain.User
}

// NewSyntheticSource builds the fallback source around a generator config.
func NewSyntheticSource(cfg generator.Config) *SyntheticSource {
	return &SyntheticSource{cfg: cfg}
}

// Fetch returns the memoized collection, generating it on first use. It
// never fails, making it a safe terminal provider in a fallback chain.
func (s *SyntheticSource) Fetch(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.users == nil {
		s.users = generator.New(s.cfg).Generate()
	}
	return s.users, nil
}

// Reset discards the memoized collection; the next Fetch regenerates.
func (s *SyntheticSource) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = nil
}
