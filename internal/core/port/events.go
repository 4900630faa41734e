package port

import (
	"context"

	"github.com/brightshield/insurance-portal/internal/core/domain"
)

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error
	PublishQuoteSaved(ctx context.Context, event domain.QuoteSavedEvent) error
	PublishPolicyIssued(ctx context.Context, event domain.PolicyIssuedEvent) error
	PublishPolicyRenewed(ctx context.Context, event domain.PolicyRenewedEvent) error
	PublishPolicyCancelled(ctx context.Context, event domain.PolicyCancelledEvent) error
	PublishClaimFiled(ctx context.Context, event domain.ClaimFiledEvent) error
	PublishClaimStatusChanged(ctx context.Context, event domain.ClaimStatusChangedEvent) error
	PublishPaymentCompleted(ctx context.Context, event domain.PaymentCompletedEvent) error
}
