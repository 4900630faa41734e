package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/core/port"
)

// ErrInvalidStatus indicates a status outside the enumerated set.
var ErrInvalidStatus = errors.New("invalid status")

// ClaimService manages filed claims and their message threads.
type ClaimService struct {
	claims   port.ClaimRepository
	policies port.PolicyRepository
	events   port.EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewClaimService constructs a ClaimService instance.
func NewClaimService(claims port.ClaimRepository, policies port.PolicyRepository, events port.EventPublisher, logger *zap.Logger) *ClaimService {
	return &ClaimService{
		claims:   claims,
		policies: policies,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the time source; used by tests.
func (s *ClaimService) WithClock(now func() time.Time) *ClaimService {
	s.now = now
	return s
}

// FileClaimInput carries the fields of the claim filing form.
type FileClaimInput struct {
	UserID       string
	Role         domain.Role
	PolicyID     string
	Type         string
	Description  string
	Amount       int64
	IncidentDate time.Time
	Attachments  []domain.Attachment
}

// File records a new claim. The referenced policy must exist and belong to
// the caller; a missing policy fails with the repository's not-found error,
// a foreign one with ErrForbidden, and in both cases nothing is stored.
func (s *ClaimService) File(ctx context.Context, input FileClaimInput) (*domain.Claim, error) {
	if strings.TrimSpace(input.Type) == "" {
		return nil, fmt.Errorf("%w: claim type is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	policy, err := s.policies.GetByID(ctx, input.PolicyID)
	if err != nil {
		return nil, err
	}
	if !ownsRecord(input.Role, input.UserID, policy.UserID) {
		return nil, fmt.Errorf("%w: policy belongs to another customer", ErrForbidden)
	}

	now := s.now().UTC()
	claim := domain.Claim{
		ID:           uuid.NewString(),
		UserID:       input.UserID,
		PolicyID:     policy.ID,
		ClaimNumber:  domain.NewClaimNumber(now),
		Type:         input.Type,
		Description:  input.Description,
		Amount:       input.Amount,
		Status:       domain.ClaimStatusPending,
		IncidentDate: input.IncidentDate,
		ReportedAt:   now,
		Attachments:  input.Attachments,
		Messages:     []domain.ClaimMessage{},
	}
	if claim.Attachments == nil {
		claim.Attachments = []domain.Attachment{}
	}

	if err := s.claims.Create(ctx, claim); err != nil {
		return nil, fmt.Errorf("create claim: %w", err)
	}

	if err := s.events.PublishClaimFiled(ctx, domain.ClaimFiledEvent{
		EventID:     uuid.NewString(),
		ClaimID:     claim.ID,
		UserID:      claim.UserID,
		PolicyID:    claim.PolicyID,
		ClaimNumber: claim.ClaimNumber,
		Amount:      claim.Amount,
		FiledAt:     now,
	}); err != nil {
		s.logger.Warn("publish claim filed event failed", zap.Error(err))
	}

	return &claim, nil
}

// UpdateStatus moves a claim to a new state. Only enumerated statuses are
// accepted; staff gating happens at the transport layer.
func (s *ClaimService) UpdateStatus(ctx context.Context, id string, status domain.ClaimStatus) (*domain.Claim, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	claim, err := s.claims.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := claim.Status
	claim.Status = status

	if err := s.claims.Update(ctx, *claim); err != nil {
		return nil, fmt.Errorf("update claim: %w", err)
	}

	if err := s.events.PublishClaimStatusChanged(ctx, domain.ClaimStatusChangedEvent{
		EventID:   uuid.NewString(),
		ClaimID:   claim.ID,
		UserID:    claim.UserID,
		OldStatus: oldStatus,
		NewStatus: status,
		ChangedAt: s.now().UTC(),
	}); err != nil {
		s.logger.Warn("publish claim status changed event failed", zap.Error(err))
	}

	return claim, nil
}

// AddMessage appends a message to the claim's conversation thread.
func (s *ClaimService) AddMessage(ctx context.Context, claimID, senderID, senderName, text string) (*domain.ClaimMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message text is required", ErrInvalidInput)
	}

	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	message := domain.ClaimMessage{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		SenderName: senderName,
		Text:       text,
		Timestamp:  s.now().UTC(),
	}
	claim.Messages = append(claim.Messages, message)

	if err := s.claims.Update(ctx, *claim); err != nil {
		return nil, fmt.Errorf("update claim: %w", err)
	}

	return &message, nil
}

// Get returns the claim with the given id.
func (s *ClaimService) Get(ctx context.Context, id string) (*domain.Claim, error) {
	return s.claims.GetByID(ctx, id)
}

// List returns every claim; intended for agent and admin views.
func (s *ClaimService) List(ctx context.Context) ([]domain.Claim, error) {
	return s.claims.List(ctx)
}

// ListByUser returns the claims filed by userID.
func (s *ClaimService) ListByUser(ctx context.Context, userID string) ([]domain.Claim, error) {
	return s.claims.ListByUser(ctx, userID)
}
