package state

import (
	"sync"
	"time"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/usecase"
)

// Store holds the portal's application state for one consumer (typically one
// dashboard request): a slice per entity plus derived aggregates. All writes
// go through reducers under the mutex; reads return copies.
//
// After Close, late command results are dropped instead of applied, so a
// slow fetch can never write into a store whose consumer has gone away.
type Store struct {
	mu     sync.RWMutex
	closed bool

	quotes   Slice[domain.Quote]
	policies Slice[domain.Policy]
	claims   Slice[domain.Claim]
	payments Slice[domain.Payment]
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Close marks the store dead. Subsequent reducer applications are no-ops.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// apply runs a reducer under the mutex, unless the store is closed.
func (s *Store) apply(reduce func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	reduce()
}

// Quotes returns a copy of the quotes slice.
func (s *Store) Quotes() Slice[domain.Quote] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.quotes)
}

// Policies returns a copy of the policies slice.
func (s *Store) Policies() Slice[domain.Policy] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.policies)
}

// Claims returns a copy of the claims slice.
func (s *Store) Claims() Slice[domain.Claim] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.claims)
}

// Payments returns a copy of the payments slice.
func (s *Store) Payments() Slice[domain.Payment] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.payments)
}

func copySlice[T any](s Slice[T]) Slice[T] {
	items := make([]T, len(s.Items))
	copy(items, s.Items)
	s.Items = items
	return s
}

// PaymentStats derives paid/pending/overdue totals from the loaded payments.
func (s *Store) PaymentStats(now time.Time) domain.PaymentStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return usecase.ComputePaymentStats(s.payments.Items, now)
}

// UpcomingPayments derives the pending payments due within the next 30 days.
func (s *Store) UpcomingPayments(now time.Time) []domain.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return usecase.UpcomingPayments(s.payments.Items, now)
}

// PolicyCounts derives per-status policy counts from the loaded policies.
func (s *Store) PolicyCounts() map[domain.PolicyStatus]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[domain.PolicyStatus]int)
	for _, p := range s.policies.Items {
		counts[p.Status]++
	}
	return counts
}

// ClaimCounts derives per-status claim counts from the loaded claims.
func (s *Store) ClaimCounts() map[domain.ClaimStatus]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[domain.ClaimStatus]int)
	for _, c := range s.claims.Items {
		counts[c.Status]++
	}
	return counts
}
