package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/core/port"
	"github.com/brightshield/insurance-portal/internal/repository"
)

func TestUserRepositoryConflictOnDuplicateEmail(t *testing.T) {
	store := NewStore()
	users := store.Users()
	ctx := context.Background()

	if err := users.Create(ctx, domain.User{ID: "u1", Email: "jamie@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := users.Create(ctx, domain.User{ID: "u2", Email: "JAMIE@example.com"}); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate email, got %v", err)
	}
}

func TestUserRepositoryLookups(t *testing.T) {
	store := NewStore()
	users := store.Users()
	ctx := context.Background()

	if err := users.Create(ctx, domain.User{ID: "u1", Email: "jamie@example.com", FirstName: "Jamie"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	byID, err := users.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.FirstName != "Jamie" {
		t.Fatalf("first name = %q, want Jamie", byID.FirstName)
	}

	byEmail, err := users.GetByEmail(ctx, "Jamie@Example.COM")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != "u1" {
		t.Fatalf("lookup returned %q, want u1", byEmail.ID)
	}

	if _, err := users.GetByID(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := users.Update(ctx, domain.User{ID: "missing"}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("update missing: expected ErrNotFound, got %v", err)
	}
}

func TestRepositoriesReturnCopies(t *testing.T) {
	store := NewStore()
	users := store.Users()
	ctx := context.Background()

	if err := users.Create(ctx, domain.User{ID: "u1", Email: "jamie@example.com", Phone: "555-0142"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := users.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	got.Phone = "tampered"

	again, err := users.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if again.Phone != "555-0142" {
		t.Fatalf("mutating a returned copy leaked into the store: %q", again.Phone)
	}
}

func TestLatencyHonorsContextCancellation(t *testing.T) {
	store := NewStore(WithLatency(time.Second))
	users := store.Users()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := users.GetByID(ctx, "u1")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("call did not honor cancellation, took %v", elapsed)
	}
}

func TestQuoteRepositoryDelete(t *testing.T) {
	store := NewStore()
	quotes := store.Quotes()
	ctx := context.Background()

	if err := quotes.Create(ctx, domain.Quote{ID: "q1", UserID: "u1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := quotes.Delete(ctx, "q1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := quotes.GetByID(ctx, "q1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := quotes.Delete(ctx, "q1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("double delete: expected ErrNotFound, got %v", err)
	}
}

func TestListByUserScoping(t *testing.T) {
	store := NewStore()
	quotes := store.Quotes()
	ctx := context.Background()

	for _, q := range []domain.Quote{
		{ID: "q1", UserID: "u1"},
		{ID: "q2", UserID: "u2"},
		{ID: "q3", UserID: "u1"},
	} {
		if err := quotes.Create(ctx, q); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	mine, err := quotes.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 quotes for u1, got %d", len(mine))
	}
	for _, q := range mine {
		if q.UserID != "u1" {
			t.Fatalf("foreign quote %q leaked into user listing", q.ID)
		}
	}
}

func TestSeedLoadsDemoData(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	if err := store.Seed(now, func(string) (string, error) {
		return "salt:hash", nil
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ctx := context.Background()

	users, err := store.Users().List(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) == 0 {
		t.Fatal("expected seeded users")
	}
	var haveCustomer, haveStaff bool
	for _, u := range users {
		switch u.Role {
		case domain.RoleCustomer:
			haveCustomer = true
		case domain.RoleAgent, domain.RoleAdmin:
			haveStaff = true
		}
		if u.PasswordHash == "" {
			t.Fatalf("seeded user %q has no password hash", u.Email)
		}
	}
	if !haveCustomer || !haveStaff {
		t.Fatal("seed must include both customer and staff accounts")
	}

	posts, err := store.Content().ListPosts(ctx)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) == 0 {
		t.Fatal("expected seeded blog posts")
	}

	policies, err := store.Policies().List(ctx)
	if err != nil {
		t.Fatalf("list policies: %v", err)
	}
	for _, p := range policies {
		if _, err := store.Users().GetByID(ctx, p.UserID); err != nil {
			t.Fatalf("seeded policy %q references unknown user %q", p.ID, p.UserID)
		}
	}
}

func TestWizardStoreExpiry(t *testing.T) {
	ws := NewWizardStore()
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	ws.now = func() time.Time { return now }
	ctx := context.Background()

	session := port.WizardSession{ID: "w1", State: port.WizardStateTypeSelection}
	if err := ws.Put(ctx, session, time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}

	if _, err := ws.Get(ctx, "w1"); err != nil {
		t.Fatalf("get before expiry: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := ws.Get(ctx, "w1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}

	// Deleting a missing session is not an error.
	if err := ws.Delete(ctx, "w1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
