package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	kafkainfra "github.com/brightshield/insurance-portal/internal/infra/kafka"
	"github.com/brightshield/insurance-portal/internal/repository"
	memoryrepo "github.com/brightshield/insurance-portal/internal/repository/memory"
)

func newPolicyServicesForTest(t *testing.T, now time.Time) (*PolicyService, *QuoteService) {
	t.Helper()

	store := memoryrepo.NewStore()
	events := kafkainfra.NewStubPublisher(zaptest.NewLogger(t))
	log := zaptest.NewLogger(t)

	quotes := NewQuoteService(store.Quotes(), events, log).WithClock(func() time.Time { return now })
	policies := NewPolicyService(store.Policies(), store.Quotes(), events, log).WithClock(func() time.Time { return now })
	return policies, quotes
}

func TestIssueFromQuoteCarriesPremiumAndCoverage(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	policies, quotes := newPolicyServicesForTest(t, now)
	ctx := context.Background()

	quote, err := quotes.Create(ctx, "user-1", domain.QuoteRequest{
		Type:            domain.InsuranceAuto,
		VehicleInfo:     &domain.VehicleInfo{Year: 2005, Mileage: 150000},
		CoverageDetails: domain.CoverageDetails{CoverageType: "full", CoverageAmount: 50000, Deductible: 500},
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	policy, err := policies.IssueFromQuote(ctx, quote.ID, "user-1", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("issue policy: %v", err)
	}

	if policy.QuoteID != quote.ID {
		t.Fatalf("policy quote id = %q, want %q", policy.QuoteID, quote.ID)
	}
	if policy.Premium != quote.Premium {
		t.Fatalf("premium changed on binding: quote %d, policy %d", quote.Premium, policy.Premium)
	}
	if policy.CoverageDetails != quote.CoverageDetails {
		t.Fatalf("coverage changed on binding: %+v vs %+v", policy.CoverageDetails, quote.CoverageDetails)
	}
	if policy.Status != domain.PolicyStatusActive {
		t.Fatalf("status = %q, want active", policy.Status)
	}
	if !strings.HasPrefix(policy.PolicyNumber, "POL-") {
		t.Fatalf("policy number %q missing POL- prefix", policy.PolicyNumber)
	}
	if !policy.EndDate.Equal(now.Add(365 * 24 * time.Hour)) {
		t.Fatalf("end date = %v, want one year out", policy.EndDate)
	}
	if !policy.NextPaymentDate.Equal(now.Add(30 * 24 * time.Hour)) {
		t.Fatalf("next payment = %v, want 30 days out", policy.NextPaymentDate)
	}

	stored, err := policies.Get(ctx, policy.ID)
	if err != nil {
		t.Fatalf("get policy: %v", err)
	}
	if stored.PolicyNumber != policy.PolicyNumber {
		t.Fatalf("stored policy number %q, want %q", stored.PolicyNumber, policy.PolicyNumber)
	}
}

func TestIssueFromQuoteUnknownQuote(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	policies, _ := newPolicyServicesForTest(t, now)

	if _, err := policies.IssueFromQuote(context.Background(), "missing", "user-1", domain.RoleCustomer); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIssueFromQuoteEnforcesQuoteOwnership(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	policies, quotes := newPolicyServicesForTest(t, now)
	ctx := context.Background()

	quote, err := quotes.Create(ctx, "victim", domain.QuoteRequest{
		Type:            domain.InsuranceAuto,
		VehicleInfo:     &domain.VehicleInfo{Year: 2018, Mileage: 40000},
		CoverageDetails: domain.CoverageDetails{CoverageAmount: 50000},
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	if _, err := policies.IssueFromQuote(ctx, quote.ID, "attacker", domain.RoleCustomer); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a foreign quote, got %v", err)
	}

	all, err := policies.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("refused binding must store nothing, got %d policies", len(all))
	}

	// Agents bind on behalf of customers.
	policy, err := policies.IssueFromQuote(ctx, quote.ID, "agent-1", domain.RoleAgent)
	if err != nil {
		t.Fatalf("agent issue: %v", err)
	}
	if policy.Status != domain.PolicyStatusActive {
		t.Fatalf("status = %q, want active", policy.Status)
	}
}

func TestRenewResetsTermAndPreservesIdentity(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	policies, quotes := newPolicyServicesForTest(t, issuedAt)
	ctx := context.Background()

	quote, err := quotes.Create(ctx, "user-1", domain.QuoteRequest{
		Type:            domain.InsuranceLife,
		CoverageDetails: domain.CoverageDetails{CoverageAmount: 50000},
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}
	policy, err := policies.IssueFromQuote(ctx, quote.ID, "user-1", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("issue policy: %v", err)
	}
	if _, err := policies.Cancel(ctx, policy.ID); err != nil {
		t.Fatalf("cancel policy: %v", err)
	}

	renewedAt := issuedAt.Add(200 * 24 * time.Hour)
	policies.WithClock(func() time.Time { return renewedAt })

	renewed, err := policies.Renew(ctx, policy.ID)
	if err != nil {
		t.Fatalf("renew policy: %v", err)
	}

	if renewed.Status != domain.PolicyStatusActive {
		t.Fatalf("status = %q, want active", renewed.Status)
	}
	if renewed.PolicyNumber != policy.PolicyNumber {
		t.Fatalf("policy number changed on renewal: %q to %q", policy.PolicyNumber, renewed.PolicyNumber)
	}
	if renewed.Premium != policy.Premium {
		t.Fatalf("premium changed on renewal: %d to %d", policy.Premium, renewed.Premium)
	}
	if !renewed.StartDate.Equal(renewedAt) {
		t.Fatalf("start date = %v, want %v", renewed.StartDate, renewedAt)
	}
	if !renewed.EndDate.Equal(renewedAt.Add(365 * 24 * time.Hour)) {
		t.Fatalf("end date = %v, want full term from renewal", renewed.EndDate)
	}
	if !renewed.NextPaymentDate.Equal(renewedAt.Add(30 * 24 * time.Hour)) {
		t.Fatalf("next payment = %v, want 30 days from renewal", renewed.NextPaymentDate)
	}
}

func TestCancelOnlyChangesStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	policies, quotes := newPolicyServicesForTest(t, now)
	ctx := context.Background()

	quote, err := quotes.Create(ctx, "user-1", domain.QuoteRequest{
		Type:            domain.InsuranceHome,
		HomeInfo:        &domain.HomeInfo{YearBuilt: 2001, SquareFootage: 1800},
		CoverageDetails: domain.CoverageDetails{CoverageAmount: 200000},
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}
	policy, err := policies.IssueFromQuote(ctx, quote.ID, "user-1", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("issue policy: %v", err)
	}

	cancelled, err := policies.Cancel(ctx, policy.ID)
	if err != nil {
		t.Fatalf("cancel policy: %v", err)
	}

	if cancelled.Status != domain.PolicyStatusCancelled {
		t.Fatalf("status = %q, want cancelled", cancelled.Status)
	}
	if !cancelled.StartDate.Equal(policy.StartDate) || !cancelled.EndDate.Equal(policy.EndDate) {
		t.Fatal("cancellation must not touch the policy term")
	}
	if cancelled.Premium != policy.Premium || cancelled.PolicyNumber != policy.PolicyNumber {
		t.Fatal("cancellation must not touch premium or policy number")
	}
}

func TestListByUserScopesPolicies(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	policies, quotes := newPolicyServicesForTest(t, now)
	ctx := context.Background()

	for _, userID := range []string{"user-1", "user-1", "user-2"} {
		quote, err := quotes.Create(ctx, userID, domain.QuoteRequest{
			Type:            domain.InsuranceHealth,
			CoverageDetails: domain.CoverageDetails{CoverageAmount: 10000},
		})
		if err != nil {
			t.Fatalf("create quote: %v", err)
		}
		if _, err := policies.IssueFromQuote(ctx, quote.ID, userID, domain.RoleCustomer); err != nil {
			t.Fatalf("issue policy: %v", err)
		}
	}

	mine, err := policies.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 policies for user-1, got %d", len(mine))
	}

	all, err := policies.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 policies in total, got %d", len(all))
	}
}
