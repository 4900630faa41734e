package memory

import (
	"context"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/repository"
)

// ClaimRepository implements port.ClaimRepository against the in-memory store.
type ClaimRepository struct {
	store *Store
}

// Create appends a new claim.
func (r *ClaimRepository) Create(ctx context.Context, claim domain.Claim) error {
	if err := r.store.delay(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.claims = append(r.store.claims, claim)
	return nil
}

// GetByID returns a copy of the claim with the given id.
func (r *ClaimRepository) GetByID(ctx context.Context, id string) (*domain.Claim, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, claim := range r.store.claims {
		if claim.ID == id {
			copied := claim
			copied.Messages = append([]domain.ClaimMessage(nil), claim.Messages...)
			copied.Attachments = append([]domain.Attachment(nil), claim.Attachments...)
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Update replaces the stored claim identified by claim.ID.
func (r *ClaimRepository) Update(ctx context.Context, claim domain.Claim) error {
	if err := r.store.delay(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.claims {
		if r.store.claims[i].ID == claim.ID {
			r.store.claims[i] = claim
			return nil
		}
	}
	return repository.ErrNotFound
}

// List returns a copy of all claims.
func (r *ClaimRepository) List(ctx context.Context) ([]domain.Claim, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.Claim, len(r.store.claims))
	copy(out, r.store.claims)
	return out, nil
}

// ListByUser returns copies of the claims filed by userID.
func (r *ClaimRepository) ListByUser(ctx context.Context, userID string) ([]domain.Claim, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []domain.Claim
	for _, claim := range r.store.claims {
		if claim.UserID == userID {
			out = append(out, claim)
		}
	}
	return out, nil
}
