package cache

import (
	"sync"
	"time"

	"github.com/opeyemi/lenddesk/internal/domain"
)

// Users is a single-slot TTL cache for the full user collection. The slot is
// only ever replaced wholesale; a stale entry behaves as a miss. One instance
// is shared per process and is safe for concurrent use.
type Users struct {
	ttl time.Duration
	now func() time.Time

	mu         sync.Mutex
	users      []domain.User
	capturedAt time.Time
}

// New returns an empty cache with the given time-to-live.
func New(ttl time.Duration) *Users {
	return &Users{
		ttl: ttl,
		now: time.Now,
	}
}

// Get returns the cached collection, or nil and false when the slot is empty
// or the entry has outlived the TTL.
func (c *Users) Get() ([]domain.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.users == nil {
		return nil, false
	}
	if c.now().Sub(c.capturedAt) >= c.ttl {
		return nil, false
	}
	return c.users, true
}

// Set replaces the slot with the given collection, stamped with the current
// time.
func (c *Users) Set(users []domain.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = users
	c.capturedAt = c.now()
}

// Invalidate empties the slot; the next Get misses.
func (c *Users) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = nil
	c.capturedAt = time.Time{}
}
