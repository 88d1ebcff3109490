// Package service implements the dashboard's data-access operations: a
// cached, fallback-protected view of the user collection with filtering,
// sorting, pagination and statistics, plus status mutations persisted to the
// local record store.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/opeyemi/lenddesk/internal/cache"
	"github.com/opeyemi/lenddesk/internal/domain"
	"github.com/opeyemi/lenddesk/internal/source"
	"github.com/opeyemi/lenddesk/internal/store"
)

// Illustrative multipliers behind the loan/savings headline cards; they do
// not reflect real loan or savings data.
const (
	loansPercentage   = 0.35
	loansScale        = 10
	savingsMultiplier = 20.5
)

// Users answers every user-data question the dashboard asks. Reads flow
// through the provider chain (cache, remote, synthetic fallback); status
// mutations flow to the durable record store.
type Users struct {
	logger     *slog.Logger
	chain      source.Provider
	usersCache *cache.Users
	fallback   *source.SyntheticSource
	records    store.RecordStore
}

// NewUsers assembles the service. The chain must already compose the cached
// remote source and the synthetic fallback in that order.
func NewUsers(logger *slog.Logger, chain source.Provider, usersCache *cache.Users, fallback *source.SyntheticSource, records store.RecordStore) *Users {
	return &Users{
		logger:     logger,
		chain:      chain,
		usersCache: usersCache,
		fallback:   fallback,
		records:    records,
	}
}

// collection obtains the full user collection. The synthetic terminal
// provider makes failure effectively impossible; the error return guards the
// contract anyway.
func (s *Users) collection(ctx context.Context) ([]domain.User, error) {
	users, err := s.chain.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch user collection: %w", err)
	}
	return users, nil
}

// GetUsers returns one page of the collection after applying the filter and
// sort. Total counts every matching record regardless of the page window; a
// page past the end yields an empty slice with the total intact.
func (s *Users) GetUsers(ctx context.Context, p domain.Pagination, f domain.Filter, sk domain.Sort) (domain.UserPage, error) {
	users, err := s.collection(ctx)
	if err != nil {
		return domain.UserPage{}, err
	}

	matched := applyFilter(users, f)
	sortUsers(matched, sk)

	p = p.Normalize()
	total := len(matched)
	start := (p.Page - 1) * p.Limit
	end := start + p.Limit
	if start >= total {
		start, end = 0, 0
		matched = nil
	} else if end > total {
		end = total
	}

	page := domain.UserPage{
		Users: []domain.User{},
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}
	if matched != nil {
		page.Users = matched[start:end]
	}
	return page, nil
}

// GetUserByID returns the user with the given id, preferring a locally
// persisted copy (which may carry an edited status) over the fetched
// collection. Unknown ids return (nil, nil).
func (s *Users) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, nil
	}

	stored, err := s.records.GetUser(ctx, id)
	if err != nil {
		s.logger.Warn("record store lookup failed, falling back to collection", "userId", id, "error", err)
	} else if stored != nil {
		return stored, nil
	}

	users, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			user := users[i]
			return &user, nil
		}
	}
	return nil, nil
}

// UpdateStatus sets the user's status and persists the full record to the
// durable store, so the detail view keeps the mutation across refetches.
func (s *Users) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.User, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	user.Status = status
	if err := s.records.SaveUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("persist status change for %s: %w", id, err)
	}
	return user, nil
}

// GetOrganizations returns the sorted, duplicate-free organization names in
// the collection, for the filter dropdown.
func (s *Users) GetOrganizations(ctx context.Context) ([]string, error) {
	users, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	return uniqueOrganizations(users), nil
}

// GetStatistics derives the headline card values from the collection.
func (s *Users) GetStatistics(ctx context.Context) (domain.Statistics, error) {
	users, err := s.collection(ctx)
	if err != nil {
		return domain.Statistics{}, err
	}

	active := 0
	for _, u := range users {
		if u.Status == domain.StatusActive {
			active++
		}
	}
	total := len(users)
	loans := int(math.Floor(float64(total) * loansPercentage * loansScale))
	savings := int(math.Floor(float64(total) * savingsMultiplier))

	return domain.Statistics{
		TotalUsers:       humanize.Comma(int64(total)),
		ActiveUsers:      humanize.Comma(int64(active)),
		UsersWithLoans:   humanize.Comma(int64(loans)),
		UsersWithSavings: humanize.Comma(int64(savings)),
	}, nil
}

// ClearCache empties the shared cache slot and discards the memoized
// fallback collection; the next read fetches afresh.
func (s *Users) ClearCache() {
	s.usersCache.Invalidate()
	s.fallback.Reset()
}
