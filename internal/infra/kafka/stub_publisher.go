package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Used when no
// brokers are configured and in tests.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a logging-only event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, userID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	p.logger.Info("stub event published",
		zap.String("event_type", eventType),
		zap.String("user_id", userID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishUserRegistered logs user.registered events.
func (p *StubPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	p.logEvent("user.registered", event.UserID, event.RegisteredAt, event)
	return nil
}

// PublishQuoteSaved logs quote.saved events.
func (p *StubPublisher) PublishQuoteSaved(_ context.Context, event domain.QuoteSavedEvent) error {
	p.logEvent("quote.saved", event.UserID, event.CreatedAt, event)
	return nil
}

// PublishPolicyIssued logs policy.issued events.
func (p *StubPublisher) PublishPolicyIssued(_ context.Context, event domain.PolicyIssuedEvent) error {
	p.logEvent("policy.issued", event.UserID, event.IssuedAt, event)
	return nil
}

// PublishPolicyRenewed logs policy.renewed events.
func (p *StubPublisher) PublishPolicyRenewed(_ context.Context, event domain.PolicyRenewedEvent) error {
	p.logEvent("policy.renewed", event.UserID, event.RenewedAt, event)
	return nil
}

// PublishPolicyCancelled logs policy.cancelled events.
func (p *StubPublisher) PublishPolicyCancelled(_ context.Context, event domain.PolicyCancelledEvent) error {
	p.logEvent("policy.cancelled", event.UserID, event.CancelledAt, event)
	return nil
}

// PublishClaimFiled logs claim.filed events.
func (p *StubPublisher) PublishClaimFiled(_ context.Context, event domain.ClaimFiledEvent) error {
	p.logEvent("claim.filed", event.UserID, event.FiledAt, event)
	return nil
}

// PublishClaimStatusChanged logs claim.status_changed events.
func (p *StubPublisher) PublishClaimStatusChanged(_ context.Context, event domain.ClaimStatusChangedEvent) error {
	p.logEvent("claim.status_changed", event.UserID, event.ChangedAt, event)
	return nil
}

// PublishPaymentCompleted logs payment.completed events.
func (p *StubPublisher) PublishPaymentCompleted(_ context.Context, event domain.PaymentCompletedEvent) error {
	p.logEvent("payment.completed", event.UserID, event.PaidAt, event)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
