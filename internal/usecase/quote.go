package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	uuid "github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/core/port"
)

// Quotes are valid for 30 days from issuance.
const quoteValidity = 30 * 24 * time.Hour

// ErrUnknownInsuranceType indicates the requested product line is not offered.
var ErrUnknownInsuranceType = errors.New("unknown insurance type")

// QuoteService manages premium estimates.
type QuoteService struct {
	quotes  port.QuoteRepository
	events  port.EventPublisher
	logger  *zap.Logger
	now     func() time.Time
	counter prometheus.Counter
}

// NewQuoteService constructs a QuoteService instance.
func NewQuoteService(quotes port.QuoteRepository, events port.EventPublisher, logger *zap.Logger) *QuoteService {
	return &QuoteService{
		quotes: quotes,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source; used by tests.
func (s *QuoteService) WithClock(now func() time.Time) *QuoteService {
	s.now = now
	return s
}

// WithPremiumCounter attaches a metric incremented per premium calculation.
func (s *QuoteService) WithPremiumCounter(counter prometheus.Counter) *QuoteService {
	s.counter = counter
	return s
}

// Rate computes the premium for a request without persisting anything.
func (s *QuoteService) Rate(req domain.QuoteRequest) int64 {
	if s.counter != nil {
		s.counter.Inc()
	}
	return CalculatePremium(req)
}

// Create rates the request and persists a new active quote owned by userID
// (empty for anonymous quotes that were never saved in the legacy flow, but
// persistence is only reachable through Save, which requires a user).
func (s *QuoteService) Create(ctx context.Context, userID string, req domain.QuoteRequest) (*domain.Quote, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInsuranceType, req.Type)
	}

	now := s.now().UTC()
	quote := domain.Quote{
		ID:              uuid.NewString(),
		UserID:          userID,
		Type:            req.Type,
		PersonalInfo:    req.PersonalInfo,
		VehicleInfo:     req.VehicleInfo,
		HomeInfo:        req.HomeInfo,
		CoverageDetails: req.CoverageDetails,
		Premium:         s.Rate(req),
		Status:          domain.QuoteStatusActive,
		CreatedAt:       now,
		ExpiresAt:       now.Add(quoteValidity),
		ValidUntil:      now.Add(quoteValidity),
	}

	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	if err := s.events.PublishQuoteSaved(ctx, domain.QuoteSavedEvent{
		EventID:   uuid.NewString(),
		QuoteID:   quote.ID,
		UserID:    quote.UserID,
		Type:      quote.Type,
		Premium:   quote.Premium,
		CreatedAt: quote.CreatedAt,
	}); err != nil {
		s.logger.Warn("publish quote saved event failed", zap.Error(err))
	}

	return &quote, nil
}

// Update replaces the request fields of a quote and recomputes its premium.
func (s *QuoteService) Update(ctx context.Context, id string, req domain.QuoteRequest) (*domain.Quote, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInsuranceType, req.Type)
	}

	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	quote.Type = req.Type
	quote.PersonalInfo = req.PersonalInfo
	quote.VehicleInfo = req.VehicleInfo
	quote.HomeInfo = req.HomeInfo
	quote.CoverageDetails = req.CoverageDetails
	quote.Premium = s.Rate(req)

	if err := s.quotes.Update(ctx, *quote); err != nil {
		return nil, fmt.Errorf("update quote: %w", err)
	}
	return quote, nil
}

// Get returns the quote with the given id.
func (s *QuoteService) Get(ctx context.Context, id string) (*domain.Quote, error) {
	return s.quotes.GetByID(ctx, id)
}

// Delete removes a quote.
func (s *QuoteService) Delete(ctx context.Context, id string) error {
	return s.quotes.Delete(ctx, id)
}

// List returns every quote; intended for agent and admin views.
func (s *QuoteService) List(ctx context.Context) ([]domain.Quote, error) {
	return s.quotes.List(ctx)
}

// ListByUser returns the quotes owned by userID.
func (s *QuoteService) ListByUser(ctx context.Context, userID string) ([]domain.Quote, error) {
	return s.quotes.ListByUser(ctx, userID)
}
