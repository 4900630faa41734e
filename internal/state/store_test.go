package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	kafkainfra "github.com/brightshield/insurance-portal/internal/infra/kafka"
	memoryrepo "github.com/brightshield/insurance-portal/internal/repository/memory"
	"github.com/brightshield/insurance-portal/internal/usecase"
)

// failingPolicyRepository fails every read; used to drive the error branch.
type failingPolicyRepository struct {
	err error
}

func (r *failingPolicyRepository) Create(context.Context, domain.Policy) error { return r.err }
func (r *failingPolicyRepository) GetByID(context.Context, string) (*domain.Policy, error) {
	return nil, r.err
}
func (r *failingPolicyRepository) Update(context.Context, domain.Policy) error { return r.err }
func (r *failingPolicyRepository) List(context.Context) ([]domain.Policy, error) {
	return nil, r.err
}
func (r *failingPolicyRepository) ListByUser(context.Context, string) ([]domain.Policy, error) {
	return nil, r.err
}

type commandFixture struct {
	commands *Commands
	store    *Store
	policies *usecase.PolicyService
	quotes   *usecase.QuoteService
	payments *usecase.PaymentService
}

func newCommandFixture(t *testing.T, now time.Time) *commandFixture {
	t.Helper()

	repo := memoryrepo.NewStore()
	events := kafkainfra.NewStubPublisher(zaptest.NewLogger(t))
	log := zaptest.NewLogger(t)

	clock := func() time.Time { return now }
	quotes := usecase.NewQuoteService(repo.Quotes(), events, log).WithClock(clock)
	policies := usecase.NewPolicyService(repo.Policies(), repo.Quotes(), events, log).WithClock(clock)
	claims := usecase.NewClaimService(repo.Claims(), repo.Policies(), events, log).WithClock(clock)
	payments := usecase.NewPaymentService(repo.Payments(), repo.Policies(), events, log).WithClock(clock)

	store := NewStore()
	return &commandFixture{
		commands: NewCommands(store, quotes, policies, claims, payments),
		store:    store,
		policies: policies,
		quotes:   quotes,
		payments: payments,
	}
}

func (f *commandFixture) issuePolicy(t *testing.T, userID string) *domain.Policy {
	t.Helper()

	quote, err := f.quotes.Create(context.Background(), userID, domain.QuoteRequest{
		Type:            domain.InsuranceLife,
		CoverageDetails: domain.CoverageDetails{CoverageAmount: 50000},
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}
	policy, err := f.policies.IssueFromQuote(context.Background(), quote.ID, userID, domain.RoleCustomer)
	if err != nil {
		t.Fatalf("issue policy: %v", err)
	}
	return policy
}

func TestFetchPoliciesLifecycle(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	f := newCommandFixture(t, now)
	ctx := context.Background()

	f.issuePolicy(t, "user-1")
	f.issuePolicy(t, "user-2")

	if err := f.commands.FetchPolicies(ctx, "user-1"); err != nil {
		t.Fatalf("fetch policies: %v", err)
	}

	slice := f.store.Policies()
	if slice.Loading {
		t.Fatal("loading flag must clear after a successful fetch")
	}
	if slice.Error != "" {
		t.Fatalf("unexpected error on slice: %q", slice.Error)
	}
	if len(slice.Items) != 1 {
		t.Fatalf("expected 1 policy for user-1, got %d", len(slice.Items))
	}

	if err := f.commands.FetchAllPolicies(ctx); err != nil {
		t.Fatalf("fetch all policies: %v", err)
	}
	if got := len(f.store.Policies().Items); got != 2 {
		t.Fatalf("expected 2 policies in staff view, got %d", got)
	}
}

func TestFetchFailureRecordsErrorAndKeepsItems(t *testing.T) {
	log := zaptest.NewLogger(t)
	events := kafkainfra.NewStubPublisher(log)
	repo := memoryrepo.NewStore()

	fetchErr := errors.New("backend unavailable")
	quotes := usecase.NewQuoteService(repo.Quotes(), events, log)
	policies := usecase.NewPolicyService(&failingPolicyRepository{err: fetchErr}, repo.Quotes(), events, log)
	claims := usecase.NewClaimService(repo.Claims(), repo.Policies(), events, log)
	payments := usecase.NewPaymentService(repo.Payments(), repo.Policies(), events, log)

	store := NewStore()
	commands := NewCommands(store, quotes, policies, claims, payments)

	if err := commands.FetchPolicies(context.Background(), "user-1"); !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error returned, got %v", err)
	}

	slice := store.Policies()
	if slice.Loading {
		t.Fatal("loading flag must clear after a failed fetch")
	}
	if slice.Error != fetchErr.Error() {
		t.Fatalf("slice error = %q, want %q", slice.Error, fetchErr.Error())
	}
}

func TestClosedStoreDropsLateResults(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	f := newCommandFixture(t, now)
	ctx := context.Background()

	f.issuePolicy(t, "user-1")
	f.store.Close()

	// The service call still runs; only the reducer application is dropped.
	if err := f.commands.FetchPolicies(ctx, "user-1"); err != nil {
		t.Fatalf("fetch policies: %v", err)
	}

	slice := f.store.Policies()
	if len(slice.Items) != 0 || slice.Loading || slice.Error != "" {
		t.Fatalf("closed store must stay untouched, got %+v", slice)
	}
}

func TestMutationsUpsertAndRemove(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	f := newCommandFixture(t, now)
	ctx := context.Background()

	policy := f.issuePolicy(t, "user-1")
	if err := f.commands.FetchPolicies(ctx, "user-1"); err != nil {
		t.Fatalf("fetch policies: %v", err)
	}

	cancelled, err := f.commands.CancelPolicy(ctx, policy.ID)
	if err != nil {
		t.Fatalf("cancel policy: %v", err)
	}
	if cancelled.Status != domain.PolicyStatusCancelled {
		t.Fatalf("status = %q, want cancelled", cancelled.Status)
	}

	items := f.store.Policies().Items
	if len(items) != 1 {
		t.Fatalf("upsert must replace, not append: got %d items", len(items))
	}
	if items[0].Status != domain.PolicyStatusCancelled {
		t.Fatalf("store kept stale status %q", items[0].Status)
	}

	quote, err := f.commands.SaveQuote(ctx, "user-1", domain.QuoteRequest{
		Type:            domain.InsuranceHealth,
		CoverageDetails: domain.CoverageDetails{CoverageAmount: 10000},
	})
	if err != nil {
		t.Fatalf("save quote: %v", err)
	}
	if got := len(f.store.Quotes().Items); got != 1 {
		t.Fatalf("expected saved quote in store, got %d items", got)
	}

	if err := f.commands.DeleteQuote(ctx, quote.ID); err != nil {
		t.Fatalf("delete quote: %v", err)
	}
	if got := len(f.store.Quotes().Items); got != 0 {
		t.Fatalf("expected quote removed from store, got %d items", got)
	}
}

func TestDerivedAggregates(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	f := newCommandFixture(t, now)
	ctx := context.Background()

	policy := f.issuePolicy(t, "user-1")

	if _, err := f.commands.MakePayment(ctx, usecase.PaymentInput{
		UserID: "user-1", PolicyID: policy.ID, Amount: 600, Method: domain.PaymentMethodCreditCard,
	}); err != nil {
		t.Fatalf("make payment: %v", err)
	}
	if _, err := f.payments.Schedule(ctx, usecase.PaymentInput{
		UserID: "user-1", PolicyID: policy.ID, Amount: 600, DueDate: now.Add(10 * 24 * time.Hour),
	}); err != nil {
		t.Fatalf("schedule payment: %v", err)
	}
	if err := f.commands.FetchPayments(ctx, "user-1"); err != nil {
		t.Fatalf("fetch payments: %v", err)
	}

	stats := f.store.PaymentStats(now)
	if stats.TotalPaid != 600 || stats.Pending != 600 || stats.Overdue != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	upcoming := f.store.UpcomingPayments(now)
	if len(upcoming) != 1 {
		t.Fatalf("expected 1 upcoming payment, got %d", len(upcoming))
	}

	if _, err := f.commands.CancelPolicy(ctx, policy.ID); err != nil {
		t.Fatalf("cancel policy: %v", err)
	}
	if err := f.commands.FetchPolicies(ctx, "user-1"); err != nil {
		t.Fatalf("fetch policies: %v", err)
	}
	counts := f.store.PolicyCounts()
	if counts[domain.PolicyStatusCancelled] != 1 {
		t.Fatalf("expected 1 cancelled policy, got %+v", counts)
	}
}

func TestStoreReadsReturnCopies(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	f := newCommandFixture(t, now)
	ctx := context.Background()

	f.issuePolicy(t, "user-1")
	if err := f.commands.FetchPolicies(ctx, "user-1"); err != nil {
		t.Fatalf("fetch policies: %v", err)
	}

	snapshot := f.store.Policies()
	snapshot.Items[0].Status = domain.PolicyStatusExpired

	if got := f.store.Policies().Items[0].Status; got != domain.PolicyStatusActive {
		t.Fatalf("mutating a snapshot leaked into the store: %q", got)
	}
}
