package source

import (
	"context"

	"github.com/opeyemi/lenddesk/internal/cache"
	"github.com/opeyemi/lenddesk/internal/domain"
)

// Cached interposes the shared TTL cache in front of a provider. Only
// collections obtained from the wrapped provider land in the cache slot, so
// wrapping the remote source keeps fallback data out of it and a later
// successful fetch always wins.
type Cached struct {
	inner Provider
	cache *cache.Users
}

// NewCached wraps the provider with the given cache.
func NewCached(inner Provider, c *cache.Users) *Cached {
	return &Cached{inner: inner, cache: c}
}

// Fetch serves from the cache while the entry is fresh, otherwise delegates
// to the wrapped provider and caches its result.
func (c *Cached) Fetch(ctx context.Context) ([]domain.User, error) {
	if users, ok := c.cache.Get(); ok {
		return users, nil
	}

	users, err := c.inner.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(users)
	return users, nil
}
