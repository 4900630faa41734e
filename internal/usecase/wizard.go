package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/core/port"
)

var (
	// ErrWizardStep indicates an operation invalid for the session's current step.
	ErrWizardStep = errors.New("operation not allowed in current wizard step")
	// ErrAuthRequired indicates the operation needs an authenticated user.
	ErrAuthRequired = errors.New("authentication required")
	// ErrWizardOwnership indicates the session belongs to a different user.
	ErrWizardOwnership = errors.New("wizard session belongs to another user")
)

const defaultWizardTTL = time.Hour

// WizardService drives the three-step quoting flow: pick a product line,
// capture details, review the computed premium. Sessions live in a
// WizardStore until saved or expired.
type WizardService struct {
	store  port.WizardStore
	quotes *QuoteService
	logger *zap.Logger
	ttl    time.Duration
	now    func() time.Time
}

// NewWizardService constructs a WizardService instance.
func NewWizardService(store port.WizardStore, quotes *QuoteService, ttl time.Duration, logger *zap.Logger) *WizardService {
	if ttl <= 0 {
		ttl = defaultWizardTTL
	}
	return &WizardService{
		store:  store,
		quotes: quotes,
		logger: logger,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the time source; used by tests.
func (s *WizardService) WithClock(now func() time.Time) *WizardService {
	s.now = now
	return s
}

// Start opens a new session. A preset type (e.g. carried in a landing-page
// query parameter) skips straight to the details step.
func (s *WizardService) Start(ctx context.Context, userID string, preset domain.InsuranceType) (*port.WizardSession, error) {
	now := s.now().UTC()
	session := port.WizardSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		State:     port.WizardStateTypeSelection,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if preset != "" {
		if !preset.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownInsuranceType, preset)
		}
		session.Type = preset
		session.State = port.WizardStateDetails
	}

	if err := s.store.Put(ctx, session, s.ttl); err != nil {
		return nil, fmt.Errorf("store wizard session: %w", err)
	}
	return &session, nil
}

// Get loads a session, enforcing ownership for sessions started by a user.
func (s *WizardService) Get(ctx context.Context, id, userID string) (*port.WizardSession, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.UserID != "" && session.UserID != userID {
		return nil, ErrWizardOwnership
	}
	return session, nil
}

// SelectType records the product line and advances to the details step.
func (s *WizardService) SelectType(ctx context.Context, id, userID string, insType domain.InsuranceType) (*port.WizardSession, error) {
	session, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if session.State != port.WizardStateTypeSelection {
		return nil, fmt.Errorf("%w: %s", ErrWizardStep, session.State)
	}
	if !insType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInsuranceType, insType)
	}

	session.Type = insType
	session.State = port.WizardStateDetails
	session.UpdatedAt = s.now().UTC()

	if err := s.store.Put(ctx, *session, s.ttl); err != nil {
		return nil, fmt.Errorf("store wizard session: %w", err)
	}
	return session, nil
}

// ChangeType steps back from the details form to type selection. Captured
// personal and coverage fields are preserved so re-entering the form does
// not lose work; type-specific sub-forms are cleared when the type changes
// on the next SelectType.
func (s *WizardService) ChangeType(ctx context.Context, id, userID string) (*port.WizardSession, error) {
	session, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if session.State != port.WizardStateDetails && session.State != port.WizardStateReview {
		return nil, fmt.Errorf("%w: %s", ErrWizardStep, session.State)
	}

	session.State = port.WizardStateTypeSelection
	session.Quote = nil
	session.UpdatedAt = s.now().UTC()

	if err := s.store.Put(ctx, *session, s.ttl); err != nil {
		return nil, fmt.Errorf("store wizard session: %w", err)
	}
	return session, nil
}

// DetailsInput carries the details-step form fields.
type DetailsInput struct {
	PersonalInfo    domain.PersonalInfo
	VehicleInfo     *domain.VehicleInfo
	HomeInfo        *domain.HomeInfo
	CoverageDetails domain.CoverageDetails
}

// SubmitDetails validates the form, computes the premium synchronously, and
// advances to the review step carrying a transient (unsaved) quote.
func (s *WizardService) SubmitDetails(ctx context.Context, id, userID string, input DetailsInput) (*port.WizardSession, error) {
	session, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if session.State != port.WizardStateDetails {
		return nil, fmt.Errorf("%w: %s", ErrWizardStep, session.State)
	}

	if input.CoverageDetails.CoverageAmount <= 0 {
		return nil, fmt.Errorf("%w: coverage amount must be positive", ErrInvalidInput)
	}
	switch session.Type {
	case domain.InsuranceAuto:
		if input.VehicleInfo == nil {
			return nil, fmt.Errorf("%w: vehicle details are required for auto quotes", ErrInvalidInput)
		}
	case domain.InsuranceHome:
		if input.HomeInfo == nil {
			return nil, fmt.Errorf("%w: home details are required for home quotes", ErrInvalidInput)
		}
	}

	session.PersonalInfo = input.PersonalInfo
	session.VehicleInfo = input.VehicleInfo
	session.HomeInfo = input.HomeInfo
	session.CoverageDetails = input.CoverageDetails

	req := domain.QuoteRequest{
		Type:            session.Type,
		PersonalInfo:    session.PersonalInfo,
		VehicleInfo:     session.VehicleInfo,
		HomeInfo:        session.HomeInfo,
		CoverageDetails: session.CoverageDetails,
	}

	now := s.now().UTC()
	session.Quote = &domain.Quote{
		UserID:          userID,
		Type:            session.Type,
		PersonalInfo:    session.PersonalInfo,
		VehicleInfo:     session.VehicleInfo,
		HomeInfo:        session.HomeInfo,
		CoverageDetails: session.CoverageDetails,
		Premium:         s.quotes.Rate(req),
		Status:          domain.QuoteStatusDraft,
		CreatedAt:       now,
		ExpiresAt:       now.Add(quoteValidity),
		ValidUntil:      now.Add(quoteValidity),
	}
	session.State = port.WizardStateReview
	session.UpdatedAt = now

	if err := s.store.Put(ctx, *session, s.ttl); err != nil {
		return nil, fmt.Errorf("store wizard session: %w", err)
	}
	return session, nil
}

// Save persists the reviewed quote for an authenticated user. On success the
// session is discarded; on failure it stays in review so the user can retry.
func (s *WizardService) Save(ctx context.Context, id, userID string) (*domain.Quote, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	session, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if session.State != port.WizardStateReview || session.Quote == nil {
		return nil, fmt.Errorf("%w: %s", ErrWizardStep, session.State)
	}

	quote, err := s.quotes.Create(ctx, userID, domain.QuoteRequest{
		Type:            session.Type,
		PersonalInfo:    session.PersonalInfo,
		VehicleInfo:     session.VehicleInfo,
		HomeInfo:        session.HomeInfo,
		CoverageDetails: session.CoverageDetails,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Warn("delete wizard session failed", zap.String("session_id", id), zap.Error(err))
	}
	return quote, nil
}
