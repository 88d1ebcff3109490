package source

import (
	"context"
	"errors"
	"log/slog"

	"github.com/opeyemi/lenddesk/internal/domain"
)

// Provider supplies the full user collection from a single origin.
type Provider interface {
	Fetch(ctx context.Context) ([]domain.User, error)
}

// ErrMissingURL indicates the remote endpoint URL is not provided.
var ErrMissingURL = errors.New("source URL is required")

// ErrEmptyPayload indicates the remote endpoint answered with no records.
var ErrEmptyPayload = errors.New("source returned empty payload")

// ErrBadStatus indicates a non-success HTTP response from the remote endpoint.
var ErrBadStatus = errors.New("source responded with non-success status")

// ErrExhausted indicates every provider in a chain failed.
var ErrExhausted = errors.New("all sources failed")

// Chain tries each provider in order and returns the first successful
// collection. Failures of earlier providers are logged and swallowed; only
// the final provider's error is surfaced.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

// NewChain builds an ordered fallback chain over the given providers.
func NewChain(logger *slog.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, logger: logger}
}

// Fetch walks the chain until a provider yields a collection.
func (c *Chain) Fetch(ctx context.Context) ([]domain.User, error) {
	var lastErr error
	for i, provider := range c.providers {
		users, err := provider.Fetch(ctx)
		if err == nil {
			return users, nil
		}
		lastErr = err
		if i < len(c.providers)-1 {
			c.logger.Warn("source failed, falling back", "provider", i, "error", err)
		}
	}
	if lastErr == nil {
		return nil, ErrExhausted
	}
	return nil, lastErr
}
