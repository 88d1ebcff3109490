package store

import (
	"context"
	"log/slog"

	"github.com/opeyemi/lenddesk/internal/domain"
)

// Layered composes the structured primary store with the key-value fallback.
// Writes go through to both stores; reads prefer the primary and only
// consult the fallback when the primary fails or has no record. Primary
// failures are logged and recovered, never surfaced.
type Layered struct {
	primary  *SQLiteStore
	fallback *BoltStore
	logger   *slog.Logger
}

// NewLayered wires the two stores together.
func NewLayered(logger *slog.Logger, primary *SQLiteStore, fallback *BoltStore) *Layered {
	return &Layered{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// SaveUser writes the record to both stores. The fallback write is attempted
// even when the primary write fails, so a later read can still find the
// record.
func (l *Layered) SaveUser(ctx context.Context, user domain.User) error {
	if err := l.primary.SaveUser(ctx, user); err != nil {
		l.logger.Warn("primary store write failed, keeping fallback copy", "userId", user.ID, "error", err)
	}
	return l.fallback.SaveUser(ctx, user)
}

// GetUser prefers the primary record and falls back when the primary is
// unavailable or has no entry. Unknown ids yield (nil, nil).
func (l *Layered) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := l.primary.GetUser(ctx, id)
	if err != nil {
		l.logger.Warn("primary store read failed, trying fallback", "userId", id, "error", err)
	} else if user != nil {
		return user, nil
	}
	return l.fallback.GetUser(ctx, id)
}

// GetAllUsers merges both stores, primary records taking precedence over
// fallback copies of the same id.
func (l *Layered) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	primary, err := l.primary.GetAllUsers(ctx)
	if err != nil {
		l.logger.Warn("primary store enumeration failed, using fallback only", "error", err)
		return l.fallback.GetAllUsers(ctx)
	}

	seen := make(map[string]struct{}, len(primary))
	for _, u := range primary {
		seen[u.ID] = struct{}{}
	}

	fallback, err := l.fallback.GetAllUsers(ctx)
	if err != nil {
		l.logger.Warn("fallback store enumeration failed", "error", err)
		return primary, nil
	}
	for _, u := range fallback {
		if _, ok := seen[u.ID]; !ok {
			primary = append(primary, u)
		}
	}
	return primary, nil
}

// ClearAll removes user records from both stores. Only entries this store
// owns are touched; unrelated keys sharing the fallback file survive.
func (l *Layered) ClearAll(ctx context.Context) error {
	if err := l.primary.ClearAll(ctx); err != nil {
		l.logger.Warn("primary store clear failed", "error", err)
	}
	return l.fallback.ClearAll(ctx)
}

// Ping reports whether the primary store is reachable.
func (l *Layered) Ping(ctx context.Context) error {
	return l.primary.Ping(ctx)
}

// Close releases both stores.
func (l *Layered) Close() error {
	if err := l.primary.Close(); err != nil {
		l.logger.Warn("closing primary store failed", "error", err)
	}
	return l.fallback.Close()
}
