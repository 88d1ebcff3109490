package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/opeyemi/lenddesk/internal/domain"
)

func TestGenerateCountAndUniqueIDs(t *testing.T) {
	gen := New(Config{NumUsers: 500, Seed: 7})
	users := gen.Generate()

	if len(users) != 500 {
		t.Fatalf("expected 500 users, got %d", len(users))
	}

	seen := make(map[string]struct{}, len(users))
	for _, u := range users {
		if u.ID == "" {
			t.Fatal("generated user has empty id")
		}
		if _, dup := seen[u.ID]; dup {
			t.Fatalf("duplicate id %s", u.ID)
		}
		seen[u.ID] = struct{}{}
	}
}

func TestGenerateCoversAllStatuses(t *testing.T) {
	gen := New(Config{NumUsers: 500, Seed: 7})
	users := gen.Generate()

	counts := make(map[domain.Status]int)
	for _, u := range users {
		if !u.Status.Valid() {
			t.Fatalf("invalid status %q", u.Status)
		}
		counts[u.Status]++
	}
	for _, status := range domain.Statuses {
		if counts[status] == 0 {
			t.Fatalf("status %s absent from generated collection", status)
		}
	}
	if counts[domain.StatusActive] <= counts[domain.StatusBlacklisted] {
		t.Fatalf("expected Active (%d) to outnumber Blacklisted (%d)",
			counts[domain.StatusActive], counts[domain.StatusBlacklisted])
	}
}

func TestGenerateFieldFormats(t *testing.T) {
	gen := New(Config{NumUsers: 50, Seed: 3})
	users := gen.Generate()

	for _, u := range users {
		if !strings.HasPrefix(u.AccountBalance, "₦") || !strings.HasSuffix(u.AccountBalance, ".00") {
			t.Fatalf("account balance %q not currency formatted", u.AccountBalance)
		}
		if len(u.AccountNumber) != 10 {
			t.Fatalf("account number %q is not 10 digits", u.AccountNumber)
		}
		if len(u.PhoneNumber) != 11 {
			t.Fatalf("phone number %q is not 11 digits", u.PhoneNumber)
		}
		joined, err := time.Parse(domain.DateJoinedLayout, u.DateJoined)
		if err != nil {
			t.Fatalf("dateJoined %q does not match layout: %v", u.DateJoined, err)
		}
		if joined.Year() < 2015 {
			t.Fatalf("dateJoined %q predates 2015", u.DateJoined)
		}
		if u.UserTier < 1 || u.UserTier > 5 {
			t.Fatalf("user tier %d out of range", u.UserTier)
		}
		if u.Organization == "" || u.Username == "" || u.Email == "" {
			t.Fatalf("user %s has empty identity fields", u.ID)
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	fixed := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	genA := New(Config{NumUsers: 20, Seed: 99})
	genA.now = func() time.Time { return fixed }
	genB := New(Config{NumUsers: 20, Seed: 99})
	genB.now = func() time.Time { return fixed }

	a := genA.Generate()
	b := genB.Generate()

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded generation diverged at index %d", i)
		}
	}
}
