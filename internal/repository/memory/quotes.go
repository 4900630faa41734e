package memory

import (
	"context"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/repository"
)

// QuoteRepository implements port.QuoteRepository against the in-memory store.
type QuoteRepository struct {
	store *Store
}

// Create appends a new quote.
func (r *QuoteRepository) Create(ctx context.Context, quote domain.Quote) error {
	if err := r.store.delay(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.quotes = append(r.store.quotes, quote)
	return nil
}

// GetByID returns a copy of the quote with the given id.
func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, quote := range r.store.quotes {
		if quote.ID == id {
			copied := quote
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Update replaces the stored quote identified by quote.ID.
func (r *QuoteRepository) Update(ctx context.Context, quote domain.Quote) error {
	if err := r.store.delay(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.quotes {
		if r.store.quotes[i].ID == quote.ID {
			r.store.quotes[i] = quote
			return nil
		}
	}
	return repository.ErrNotFound
}

// Delete removes the quote with the given id.
func (r *QuoteRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.delay(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.quotes {
		if r.store.quotes[i].ID == id {
			r.store.quotes = append(r.store.quotes[:i], r.store.quotes[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// List returns a copy of all quotes.
func (r *QuoteRepository) List(ctx context.Context) ([]domain.Quote, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.Quote, len(r.store.quotes))
	copy(out, r.store.quotes)
	return out, nil
}

// ListByUser returns copies of the quotes owned by userID.
func (r *QuoteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Quote, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []domain.Quote
	for _, quote := range r.store.quotes {
		if quote.UserID == userID {
			out = append(out, quote)
		}
	}
	return out, nil
}
