package usecase

import (
	"context"
	"fmt"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/core/port"
)

// Window within which a pending payment counts as upcoming.
const upcomingWindow = 30 * 24 * time.Hour

// PaymentService manages premium payments. Payments are append-only: a
// settled payment is recorded as completed at creation, never mutated.
type PaymentService struct {
	payments port.PaymentRepository
	policies port.PolicyRepository
	events   port.EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewPaymentService constructs a PaymentService instance.
func NewPaymentService(payments port.PaymentRepository, policies port.PolicyRepository, events port.EventPublisher, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		policies: policies,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the time source; used by tests.
func (s *PaymentService) WithClock(now func() time.Time) *PaymentService {
	s.now = now
	return s
}

// PaymentInput carries the fields of a payment submission.
type PaymentInput struct {
	UserID   string
	Role     domain.Role
	PolicyID string
	Amount   int64
	Method   domain.PaymentMethod
	DueDate  time.Time
}

// MakePayment records a completed transaction against a policy. The policy
// must exist and belong to the caller.
func (s *PaymentService) MakePayment(ctx context.Context, input PaymentInput) (*domain.Payment, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if !input.Method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, input.Method)
	}

	policy, err := s.policies.GetByID(ctx, input.PolicyID)
	if err != nil {
		return nil, err
	}
	if !ownsRecord(input.Role, input.UserID, policy.UserID) {
		return nil, fmt.Errorf("%w: policy belongs to another customer", ErrForbidden)
	}

	now := s.now().UTC()
	payment := domain.Payment{
		ID:       uuid.NewString(),
		UserID:   input.UserID,
		PolicyID: policy.ID,
		Amount:   input.Amount,
		Status:   domain.PaymentStatusCompleted,
		Method:   input.Method,
		PaidAt:   &now,
		DueDate:  input.DueDate,
	}
	if payment.DueDate.IsZero() {
		payment.DueDate = now
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	if err := s.events.PublishPaymentCompleted(ctx, domain.PaymentCompletedEvent{
		EventID:   uuid.NewString(),
		PaymentID: payment.ID,
		UserID:    payment.UserID,
		PolicyID:  payment.PolicyID,
		Amount:    payment.Amount,
		Method:    payment.Method,
		PaidAt:    now,
	}); err != nil {
		s.logger.Warn("publish payment completed event failed", zap.Error(err))
	}

	return &payment, nil
}

// Schedule records a pending obligation with a due date and no paid-at time.
func (s *PaymentService) Schedule(ctx context.Context, input PaymentInput) (*domain.Payment, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if input.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", ErrInvalidInput)
	}

	policy, err := s.policies.GetByID(ctx, input.PolicyID)
	if err != nil {
		return nil, err
	}
	if !ownsRecord(input.Role, input.UserID, policy.UserID) {
		return nil, fmt.Errorf("%w: policy belongs to another customer", ErrForbidden)
	}

	payment := domain.Payment{
		ID:       uuid.NewString(),
		UserID:   input.UserID,
		PolicyID: policy.ID,
		Amount:   input.Amount,
		Status:   domain.PaymentStatusPending,
		Method:   input.Method,
		DueDate:  input.DueDate,
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return &payment, nil
}

// Upcoming returns the user's pending payments due within the next 30 days.
func (s *PaymentService) Upcoming(ctx context.Context, userID string) ([]domain.Payment, error) {
	payments, err := s.payments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return UpcomingPayments(payments, s.now().UTC()), nil
}

// List returns every payment; intended for agent and admin views.
func (s *PaymentService) List(ctx context.Context) ([]domain.Payment, error) {
	return s.payments.List(ctx)
}

// ListByUser returns the payments owned by userID.
func (s *PaymentService) ListByUser(ctx context.Context, userID string) ([]domain.Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}

// Get returns the payment with the given id.
func (s *PaymentService) Get(ctx context.Context, id string) (*domain.Payment, error) {
	return s.payments.GetByID(ctx, id)
}

// UpcomingPayments filters to pending payments due in [now, now+30d].
func UpcomingPayments(payments []domain.Payment, now time.Time) []domain.Payment {
	horizon := now.Add(upcomingWindow)
	var out []domain.Payment
	for _, payment := range payments {
		if payment.Status != domain.PaymentStatusPending {
			continue
		}
		if payment.DueDate.Before(now) || payment.DueDate.After(horizon) {
			continue
		}
		out = append(out, payment)
	}
	return out
}

// ComputePaymentStats aggregates totals for dashboard display: sum of
// completed amounts, sum of pending amounts, and the pending portion whose
// due date has passed.
func ComputePaymentStats(payments []domain.Payment, now time.Time) domain.PaymentStats {
	var stats domain.PaymentStats
	for _, payment := range payments {
		switch payment.Status {
		case domain.PaymentStatusCompleted:
			stats.TotalPaid += payment.Amount
		case domain.PaymentStatusPending:
			stats.Pending += payment.Amount
			if payment.DueDate.Before(now) {
				stats.Overdue += payment.Amount
			}
		}
	}
	return stats
}
