package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/core/port"
	"github.com/brightshield/insurance-portal/internal/infra/config"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type eventEnvelope struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	UserID    string            `json:"user_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Payload   any               `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType, userID string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	if eventID == "" {
		eventID = uuid.NewString()
	}

	envelope := eventEnvelope{
		EventID:   eventID,
		EventType: eventType,
		UserID:    userID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata: map[string]string{
			"service":     p.appCfg.Name,
			"environment": p.appCfg.Env,
		},
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishUserRegistered publishes portal.user.registered events.
func (p *EventPublisher) PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error {
	return p.publish(ctx, event.EventID, "user.registered", event.UserID, event.RegisteredAt, map[string]any{
		"user_id":       event.UserID,
		"email":         event.Email,
		"role":          event.Role,
		"registered_at": event.RegisteredAt.UTC(),
	})
}

// PublishQuoteSaved publishes portal.quote.saved events.
func (p *EventPublisher) PublishQuoteSaved(ctx context.Context, event domain.QuoteSavedEvent) error {
	return p.publish(ctx, event.EventID, "quote.saved", event.UserID, event.CreatedAt, map[string]any{
		"quote_id":   event.QuoteID,
		"user_id":    event.UserID,
		"type":       event.Type,
		"premium":    event.Premium,
		"created_at": event.CreatedAt.UTC(),
	})
}

// PublishPolicyIssued publishes portal.policy.issued events.
func (p *EventPublisher) PublishPolicyIssued(ctx context.Context, event domain.PolicyIssuedEvent) error {
	return p.publish(ctx, event.EventID, "policy.issued", event.UserID, event.IssuedAt, map[string]any{
		"policy_id":     event.PolicyID,
		"user_id":       event.UserID,
		"quote_id":      event.QuoteID,
		"policy_number": event.PolicyNumber,
		"type":          event.Type,
		"premium":       event.Premium,
		"issued_at":     event.IssuedAt.UTC(),
	})
}

// PublishPolicyRenewed publishes portal.policy.renewed events.
func (p *EventPublisher) PublishPolicyRenewed(ctx context.Context, event domain.PolicyRenewedEvent) error {
	return p.publish(ctx, event.EventID, "policy.renewed", event.UserID, event.RenewedAt, map[string]any{
		"policy_id":     event.PolicyID,
		"user_id":       event.UserID,
		"policy_number": event.PolicyNumber,
		"new_end_date":  event.NewEndDate.UTC(),
		"renewed_at":    event.RenewedAt.UTC(),
	})
}

// PublishPolicyCancelled publishes portal.policy.cancelled events.
func (p *EventPublisher) PublishPolicyCancelled(ctx context.Context, event domain.PolicyCancelledEvent) error {
	return p.publish(ctx, event.EventID, "policy.cancelled", event.UserID, event.CancelledAt, map[string]any{
		"policy_id":     event.PolicyID,
		"user_id":       event.UserID,
		"policy_number": event.PolicyNumber,
		"cancelled_at":  event.CancelledAt.UTC(),
	})
}

// PublishClaimFiled publishes portal.claim.filed events.
func (p *EventPublisher) PublishClaimFiled(ctx context.Context, event domain.ClaimFiledEvent) error {
	return p.publish(ctx, event.EventID, "claim.filed", event.UserID, event.FiledAt, map[string]any{
		"claim_id":     event.ClaimID,
		"user_id":      event.UserID,
		"policy_id":    event.PolicyID,
		"claim_number": event.ClaimNumber,
		"amount":       event.Amount,
		"filed_at":     event.FiledAt.UTC(),
	})
}

// PublishClaimStatusChanged publishes portal.claim.status_changed events.
func (p *EventPublisher) PublishClaimStatusChanged(ctx context.Context, event domain.ClaimStatusChangedEvent) error {
	return p.publish(ctx, event.EventID, "claim.status_changed", event.UserID, event.ChangedAt, map[string]any{
		"claim_id":   event.ClaimID,
		"user_id":    event.UserID,
		"old_status": event.OldStatus,
		"new_status": event.NewStatus,
		"changed_at": event.ChangedAt.UTC(),
	})
}

// PublishPaymentCompleted publishes portal.payment.completed events.
func (p *EventPublisher) PublishPaymentCompleted(ctx context.Context, event domain.PaymentCompletedEvent) error {
	return p.publish(ctx, event.EventID, "payment.completed", event.UserID, event.PaidAt, map[string]any{
		"payment_id": event.PaymentID,
		"user_id":    event.UserID,
		"policy_id":  event.PolicyID,
		"amount":     event.Amount,
		"method":     event.Method,
		"paid_at":    event.PaidAt.UTC(),
	})
}

var _ port.EventPublisher = (*EventPublisher)(nil)
