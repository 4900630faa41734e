package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	kafkainfra "github.com/brightshield/insurance-portal/internal/infra/kafka"
	"github.com/brightshield/insurance-portal/internal/repository"
	memoryrepo "github.com/brightshield/insurance-portal/internal/repository/memory"
)

func newPaymentFixture(t *testing.T, now time.Time) (*PaymentService, *domain.Policy) {
	t.Helper()

	store := memoryrepo.NewStore()
	events := kafkainfra.NewStubPublisher(zaptest.NewLogger(t))
	log := zaptest.NewLogger(t)

	quotes := NewQuoteService(store.Quotes(), events, log).WithClock(func() time.Time { return now })
	policies := NewPolicyService(store.Policies(), store.Quotes(), events, log).WithClock(func() time.Time { return now })
	payments := NewPaymentService(store.Payments(), store.Policies(), events, log).WithClock(func() time.Time { return now })

	quote, err := quotes.Create(context.Background(), "user-1", domain.QuoteRequest{
		Type:            domain.InsuranceHealth,
		CoverageDetails: domain.CoverageDetails{CoverageAmount: 20000},
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}
	policy, err := policies.IssueFromQuote(context.Background(), quote.ID, "user-1", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("issue policy: %v", err)
	}
	return payments, policy
}

func TestPaymentsEnforcePolicyOwnership(t *testing.T) {
	now := time.Date(2026, 5, 2, 15, 0, 0, 0, time.UTC)
	payments, policy := newPaymentFixture(t, now)
	ctx := context.Background()

	_, err := payments.MakePayment(ctx, PaymentInput{
		UserID:   "attacker",
		Role:     domain.RoleCustomer,
		PolicyID: policy.ID,
		Amount:   400,
		Method:   domain.PaymentMethodCreditCard,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a foreign policy, got %v", err)
	}

	_, err = payments.Schedule(ctx, PaymentInput{
		UserID:   "attacker",
		Role:     domain.RoleCustomer,
		PolicyID: policy.ID,
		Amount:   400,
		DueDate:  now.Add(10 * 24 * time.Hour),
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a foreign schedule, got %v", err)
	}

	all, err := payments.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("refused payments must store nothing, got %d", len(all))
	}

	// Agents record payments taken over the counter.
	if _, err := payments.MakePayment(ctx, PaymentInput{
		UserID:   "agent-1",
		Role:     domain.RoleAgent,
		PolicyID: policy.ID,
		Amount:   400,
		Method:   domain.PaymentMethodCreditCard,
	}); err != nil {
		t.Fatalf("agent payment: %v", err)
	}
}

func TestMakePaymentRecordsCompletedTransaction(t *testing.T) {
	now := time.Date(2026, 5, 2, 15, 0, 0, 0, time.UTC)
	payments, policy := newPaymentFixture(t, now)
	ctx := context.Background()

	payment, err := payments.MakePayment(ctx, PaymentInput{
		UserID:   "user-1",
		PolicyID: policy.ID,
		Amount:   400,
		Method:   domain.PaymentMethodCreditCard,
	})
	if err != nil {
		t.Fatalf("make payment: %v", err)
	}

	if payment.Status != domain.PaymentStatusCompleted {
		t.Fatalf("status = %q, want completed", payment.Status)
	}
	if payment.PaidAt == nil || !payment.PaidAt.Equal(now) {
		t.Fatalf("paid at = %v, want %v", payment.PaidAt, now)
	}
	if !payment.DueDate.Equal(now) {
		t.Fatalf("due date defaults to now, got %v", payment.DueDate)
	}

	stored, err := payments.Get(ctx, payment.ID)
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if stored.Amount != 400 {
		t.Fatalf("stored amount = %d, want 400", stored.Amount)
	}
}

func TestMakePaymentValidatesInput(t *testing.T) {
	now := time.Date(2026, 5, 2, 15, 0, 0, 0, time.UTC)
	payments, policy := newPaymentFixture(t, now)
	ctx := context.Background()

	if _, err := payments.MakePayment(ctx, PaymentInput{
		PolicyID: policy.ID, Amount: 0, Method: domain.PaymentMethodCheck,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero amount: expected ErrInvalidInput, got %v", err)
	}

	if _, err := payments.MakePayment(ctx, PaymentInput{
		PolicyID: policy.ID, Amount: 100, Method: domain.PaymentMethod("barter"),
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown method: expected ErrInvalidInput, got %v", err)
	}

	if _, err := payments.MakePayment(ctx, PaymentInput{
		PolicyID: "missing", Amount: 100, Method: domain.PaymentMethodCheck,
	}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("unknown policy: expected ErrNotFound, got %v", err)
	}
}

func TestScheduleCreatesPendingObligation(t *testing.T) {
	now := time.Date(2026, 5, 2, 15, 0, 0, 0, time.UTC)
	payments, policy := newPaymentFixture(t, now)
	ctx := context.Background()

	if _, err := payments.Schedule(ctx, PaymentInput{
		UserID: "user-1", PolicyID: policy.ID, Amount: 400,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing due date: expected ErrInvalidInput, got %v", err)
	}

	due := now.Add(14 * 24 * time.Hour)
	payment, err := payments.Schedule(ctx, PaymentInput{
		UserID:   "user-1",
		PolicyID: policy.ID,
		Amount:   400,
		Method:   domain.PaymentMethodBankTransfer,
		DueDate:  due,
	})
	if err != nil {
		t.Fatalf("schedule payment: %v", err)
	}

	if payment.Status != domain.PaymentStatusPending {
		t.Fatalf("status = %q, want pending", payment.Status)
	}
	if payment.PaidAt != nil {
		t.Fatalf("pending payment must not have a paid-at time, got %v", payment.PaidAt)
	}
	if !payment.DueDate.Equal(due) {
		t.Fatalf("due date = %v, want %v", payment.DueDate, due)
	}
}

func TestUpcomingAppliesThirtyDayWindow(t *testing.T) {
	now := time.Date(2026, 5, 2, 15, 0, 0, 0, time.UTC)
	payments, policy := newPaymentFixture(t, now)
	ctx := context.Background()

	schedule := func(due time.Time) *domain.Payment {
		p, err := payments.Schedule(ctx, PaymentInput{
			UserID: "user-1", PolicyID: policy.ID, Amount: 100, DueDate: due,
		})
		if err != nil {
			t.Fatalf("schedule payment: %v", err)
		}
		return p
	}

	inWindow := schedule(now.Add(10 * 24 * time.Hour))
	schedule(now.Add(45 * 24 * time.Hour))     // beyond the horizon
	schedule(now.Add(-2 * 24 * time.Hour))     // already overdue
	if _, err := payments.MakePayment(ctx, PaymentInput{ // completed, never upcoming
		UserID: "user-1", PolicyID: policy.ID, Amount: 100, Method: domain.PaymentMethodCheck,
		DueDate: now.Add(5 * 24 * time.Hour),
	}); err != nil {
		t.Fatalf("make payment: %v", err)
	}

	upcoming, err := payments.Upcoming(ctx, "user-1")
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(upcoming) != 1 {
		t.Fatalf("expected 1 upcoming payment, got %d", len(upcoming))
	}
	if upcoming[0].ID != inWindow.ID {
		t.Fatalf("upcoming returned %q, want %q", upcoming[0].ID, inWindow.ID)
	}
}

func TestComputePaymentStats(t *testing.T) {
	now := time.Date(2026, 5, 2, 15, 0, 0, 0, time.UTC)
	paidAt := now.Add(-24 * time.Hour)

	payments := []domain.Payment{
		{Status: domain.PaymentStatusCompleted, Amount: 300, PaidAt: &paidAt},
		{Status: domain.PaymentStatusCompleted, Amount: 200, PaidAt: &paidAt},
		{Status: domain.PaymentStatusPending, Amount: 150, DueDate: now.Add(5 * 24 * time.Hour)},
		{Status: domain.PaymentStatusPending, Amount: 75, DueDate: now.Add(-24 * time.Hour)},
		{Status: domain.PaymentStatusFailed, Amount: 999},
	}

	stats := ComputePaymentStats(payments, now)

	if stats.TotalPaid != 500 {
		t.Fatalf("total paid = %d, want 500", stats.TotalPaid)
	}
	if stats.Pending != 225 {
		t.Fatalf("pending = %d, want 225", stats.Pending)
	}
	if stats.Overdue != 75 {
		t.Fatalf("overdue = %d, want 75", stats.Overdue)
	}
}
