package memory

import (
	"context"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/repository"
)

// PaymentRepository implements port.PaymentRepository against the in-memory store.
type PaymentRepository struct {
	store *Store
}

// Create appends a new payment. Payments are append-only; there is no update.
func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) error {
	if err := r.store.delay(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.payments = append(r.store.payments, payment)
	return nil
}

// GetByID returns a copy of the payment with the given id.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, payment := range r.store.payments {
		if payment.ID == id {
			copied := payment
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

// List returns a copy of all payments.
func (r *PaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.Payment, len(r.store.payments))
	copy(out, r.store.payments)
	return out, nil
}

// ListByUser returns copies of the payments owned by userID.
func (r *PaymentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Payment, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []domain.Payment
	for _, payment := range r.store.payments {
		if payment.UserID == userID {
			out = append(out, payment)
		}
	}
	return out, nil
}
