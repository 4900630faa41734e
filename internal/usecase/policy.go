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

const (
	policyTerm         = 365 * 24 * time.Hour
	paymentGracePeriod = 30 * 24 * time.Hour
)

// PolicyService manages bound policies.
type PolicyService struct {
	policies port.PolicyRepository
	quotes   port.QuoteRepository
	events   port.EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewPolicyService constructs a PolicyService instance.
func NewPolicyService(policies port.PolicyRepository, quotes port.QuoteRepository, events port.EventPublisher, logger *zap.Logger) *PolicyService {
	return &PolicyService{
		policies: policies,
		quotes:   quotes,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the time source; used by tests.
func (s *PolicyService) WithClock(now func() time.Time) *PolicyService {
	s.now = now
	return s
}

// ownsRecord reports whether a caller may act on a record owned by ownerID.
// Staff act on anything; unowned records are open to any caller.
func ownsRecord(role domain.Role, userID, ownerID string) bool {
	if role.Staff() {
		return true
	}
	return ownerID == "" || ownerID == userID
}

// IssueFromQuote binds a policy from an accepted quote. The quote must exist
// and belong to the caller (staff may bind on behalf of any customer); its
// premium and coverage carry over unchanged.
func (s *PolicyService) IssueFromQuote(ctx context.Context, quoteID, userID string, role domain.Role) (*domain.Policy, error) {
	quote, err := s.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if !ownsRecord(role, userID, quote.UserID) {
		return nil, fmt.Errorf("%w: quote belongs to another customer", ErrForbidden)
	}

	now := s.now().UTC()
	policy := domain.Policy{
		ID:              uuid.NewString(),
		UserID:          userID,
		QuoteID:         quote.ID,
		PolicyNumber:    domain.NewPolicyNumber(now),
		Type:            quote.Type,
		Status:          domain.PolicyStatusActive,
		Premium:         quote.Premium,
		CoverageDetails: quote.CoverageDetails,
		StartDate:       now,
		EndDate:         now.Add(policyTerm),
		NextPaymentDate: now.Add(paymentGracePeriod),
		Documents:       []domain.Document{},
	}

	if err := s.policies.Create(ctx, policy); err != nil {
		return nil, fmt.Errorf("create policy: %w", err)
	}

	if err := s.events.PublishPolicyIssued(ctx, domain.PolicyIssuedEvent{
		EventID:      uuid.NewString(),
		PolicyID:     policy.ID,
		UserID:       policy.UserID,
		QuoteID:      policy.QuoteID,
		PolicyNumber: policy.PolicyNumber,
		Type:         policy.Type,
		Premium:      policy.Premium,
		IssuedAt:     now,
	}); err != nil {
		s.logger.Warn("publish policy issued event failed", zap.Error(err))
	}

	return &policy, nil
}

// Renew re-activates a policy for a fresh term starting at the renewal call:
// status becomes active, the end date advances a full term, and the next
// payment falls due in 30 days. Policy number and premium are preserved.
func (s *PolicyService) Renew(ctx context.Context, id string) (*domain.Policy, error) {
	policy, err := s.policies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	policy.Status = domain.PolicyStatusActive
	policy.StartDate = now
	policy.EndDate = now.Add(policyTerm)
	policy.NextPaymentDate = now.Add(paymentGracePeriod)

	if err := s.policies.Update(ctx, *policy); err != nil {
		return nil, fmt.Errorf("renew policy: %w", err)
	}

	if err := s.events.PublishPolicyRenewed(ctx, domain.PolicyRenewedEvent{
		EventID:      uuid.NewString(),
		PolicyID:     policy.ID,
		UserID:       policy.UserID,
		PolicyNumber: policy.PolicyNumber,
		NewEndDate:   policy.EndDate,
		RenewedAt:    now,
	}); err != nil {
		s.logger.Warn("publish policy renewed event failed", zap.Error(err))
	}

	return policy, nil
}

// Cancel marks a policy cancelled. Nothing else changes: number, premium,
// and dates stay as they were.
func (s *PolicyService) Cancel(ctx context.Context, id string) (*domain.Policy, error) {
	policy, err := s.policies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	policy.Status = domain.PolicyStatusCancelled

	if err := s.policies.Update(ctx, *policy); err != nil {
		return nil, fmt.Errorf("cancel policy: %w", err)
	}

	if err := s.events.PublishPolicyCancelled(ctx, domain.PolicyCancelledEvent{
		EventID:      uuid.NewString(),
		PolicyID:     policy.ID,
		UserID:       policy.UserID,
		PolicyNumber: policy.PolicyNumber,
		CancelledAt:  s.now().UTC(),
	}); err != nil {
		s.logger.Warn("publish policy cancelled event failed", zap.Error(err))
	}

	return policy, nil
}

// Get returns the policy with the given id.
func (s *PolicyService) Get(ctx context.Context, id string) (*domain.Policy, error) {
	return s.policies.GetByID(ctx, id)
}

// List returns every policy; intended for agent and admin views.
func (s *PolicyService) List(ctx context.Context) ([]domain.Policy, error) {
	return s.policies.List(ctx)
}

// ListByUser returns the policies owned by userID.
func (s *PolicyService) ListByUser(ctx context.Context, userID string) ([]domain.Policy, error) {
	return s.policies.ListByUser(ctx, userID)
}
