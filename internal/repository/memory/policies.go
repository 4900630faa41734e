package memory

import (
	"context"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/repository"
)

// PolicyRepository implements port.PolicyRepository against the in-memory store.
type PolicyRepository struct {
	store *Store
}

// Create appends a new policy.
func (r *PolicyRepository) Create(ctx context.Context, policy domain.Policy) error {
	if err := r.store.delay(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.policies = append(r.store.policies, policy)
	return nil
}

// GetByID returns a copy of the policy with the given id.
func (r *PolicyRepository) GetByID(ctx context.Context, id string) (*domain.Policy, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, policy := range r.store.policies {
		if policy.ID == id {
			copied := policy
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Update replaces the stored policy identified by policy.ID. Concurrent
// updates are last-write-wins; callers that need stronger guarantees must
// serialize themselves.
func (r *PolicyRepository) Update(ctx context.Context, policy domain.Policy) error {
	if err := r.store.delay(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.policies {
		if r.store.policies[i].ID == policy.ID {
			r.store.policies[i] = policy
			return nil
		}
	}
	return repository.ErrNotFound
}

// List returns a copy of all policies.
func (r *PolicyRepository) List(ctx context.Context) ([]domain.Policy, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.Policy, len(r.store.policies))
	copy(out, r.store.policies)
	return out, nil
}

// ListByUser returns copies of the policies owned by userID.
func (r *PolicyRepository) ListByUser(ctx context.Context, userID string) ([]domain.Policy, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []domain.Policy
	for _, policy := range r.store.policies {
		if policy.UserID == userID {
			out = append(out, policy)
		}
	}
	return out, nil
}
