package service

import (
	"sort"
	"strings"
	"time"

	"github.com/opeyemi/lenddesk/internal/domain"
)

// applyFilter returns the records satisfying every provided predicate. The
// result is always a fresh slice so callers can reorder it without touching
// the shared cached collection.
func applyFilter(users []domain.User, f domain.Filter) []domain.User {
	matched := make([]domain.User, 0, len(users))
	if f.IsZero() {
		return append(matched, users...)
	}

	var filterDay time.Time
	if f.Date != "" {
		filterDay = parseFilterDate(f.Date)
	}

	for _, u := range users {
		if !containsFold(u.Organization, f.Organization) {
			continue
		}
		if !containsFold(u.Username, f.Username) {
			continue
		}
		if !containsFold(u.Email, f.Email) {
			continue
		}
		if f.PhoneNumber != "" && !strings.Contains(u.PhoneNumber, f.PhoneNumber) {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		if f.Date != "" && !sameDay(filterDay, u.DateJoined) {
			continue
		}
		matched = append(matched, u)
	}
	return matched
}

// containsFold is a case-insensitive substring test; an empty needle always
// matches.
func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// parseFilterDate accepts the date-picker format first, then the dataset's
// own layout. A zero time means the value was unparseable, which matches
// nothing.
func parseFilterDate(value string) time.Time {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t
	}
	if t, err := time.Parse(domain.DateJoinedLayout, value); err == nil {
		return t
	}
	return time.Time{}
}

func sameDay(day time.Time, dateJoined string) bool {
	if day.IsZero() {
		return false
	}
	joined, err := time.Parse(domain.DateJoinedLayout, dateJoined)
	if err != nil {
		return false
	}
	y1, m1, d1 := day.Date()
	y2, m2, d2 := joined.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// sortUsers orders the slice in place by the requested field. Unknown fields
// leave the natural order; the sort is stable so equal keys keep their
// relative positions.
func sortUsers(users []domain.User, sk domain.Sort) {
	less := lessFunc(sk.Field)
	if less == nil {
		return
	}
	if sk.Direction == domain.SortDesc {
		inner := less
		less = func(a, b domain.User) bool { return inner(b, a) }
	}
	sort.SliceStable(users, func(i, j int) bool {
		return less(users[i], users[j])
	})
}

func lessFunc(field string) func(a, b domain.User) bool {
	switch field {
	case "username":
		return func(a, b domain.User) bool { return lowerLess(a.Username, b.Username) }
	case "email":
		return func(a, b domain.User) bool { return lowerLess(a.Email, b.Email) }
	case "organization":
		return func(a, b domain.User) bool { return lowerLess(a.Organization, b.Organization) }
	case "phoneNumber":
		return func(a, b domain.User) bool { return a.PhoneNumber < b.PhoneNumber }
	case "status":
		return func(a, b domain.User) bool { return a.Status < b.Status }
	case "dateJoined":
		return func(a, b domain.User) bool { return joinTime(a).Before(joinTime(b)) }
	default:
		return nil
	}
}

func lowerLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

func joinTime(u domain.User) time.Time {
	t, err := time.Parse(domain.DateJoinedLayout, u.DateJoined)
	if err != nil {
		return time.Time{}
	}
	return t
}

// uniqueOrganizations returns the sorted set of non-empty organization names.
func uniqueOrganizations(users []domain.User) []string {
	set := make(map[string]struct{})
	for _, u := range users {
		if u.Organization != "" {
			set[u.Organization] = struct{}{}
		}
	}
	orgs := make([]string, 0, len(set))
	for org := range set {
		orgs = append(orgs, org)
	}
	sort.Strings(orgs)
	return orgs
}
