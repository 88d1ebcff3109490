// Package store persists individual user records locally, independent of the
// in-memory collection cache. A structured SQLite store is the primary; a
// flat key-value store acts as a write-through fallback so reads still
// succeed when the primary is unavailable.
package store

import (
	"context"

	"github.com/opeyemi/lenddesk/internal/domain"
)

// RecordStore is the contract the rest of the application depends on for
// per-record persistence. Lookups for unknown ids return (nil, nil).
type RecordStore interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	SaveUser(ctx context.Context, user domain.User) error
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	ClearAll(ctx context.Context) error
}

// userKeyPrefix namespaces user records inside the key-value store so that
// clearing user data leaves unrelated entries (session keys and the like)
// untouched.
const userKeyPrefix = "user_"

// UserKey derives the key-value store key for a user id.
func UserKey(id string) string {
	return userKeyPrefix + id
}
