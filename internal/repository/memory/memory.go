// Package memory implements the repository ports against in-process slices.
// It is the storage backend the portal ships with: mutations are guarded by a
// RWMutex and an optional simulated latency reproduces the async boundary of
// a remote database without one being present.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/brightshield/insurance-portal/internal/core/domain"
)

// Store holds the shared state for all in-memory repositories.
type Store struct {
	mu      sync.RWMutex
	latency time.Duration

	users    []domain.User
	quotes   []domain.Quote
	policies []domain.Policy
	claims   []domain.Claim
	payments []domain.Payment
	posts    []domain.BlogPost
	faqs     []domain.FAQ
	contacts []domain.ContactMessage
}

// Option configures a Store.
type Option func(*Store)

// WithLatency makes every repository call wait for d before touching the
// store, honoring context cancellation. Zero disables the delay.
func WithLatency(d time.Duration) Option {
	return func(s *Store) {
		s.latency = d
	}
}

// NewStore constructs an empty store. Use Seed to load demo data.
func NewStore(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// delay blocks for the configured latency or until the context is done.
// Called before acquiring the lock so slow "requests" do not serialize.
func (s *Store) delay(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepository { return &UserRepository{store: s} }

// Quotes returns the quote repository view of the store.
func (s *Store) Quotes() *QuoteRepository { return &QuoteRepository{store: s} }

// Policies returns the policy repository view of the store.
func (s *Store) Policies() *PolicyRepository { return &PolicyRepository{store: s} }

// Claims returns the claim repository view of the store.
func (s *Store) Claims() *ClaimRepository { return &ClaimRepository{store: s} }

// Payments returns the payment repository view of the store.
func (s *Store) Payments() *PaymentRepository { return &PaymentRepository{store: s} }

// Content returns the content repository view of the store.
func (s *Store) Content() *ContentRepository { return &ContentRepository{store: s} }
