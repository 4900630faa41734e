package memory

import (
	"context"
	"strings"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/repository"
)

// UserRepository implements port.UserRepository against the in-memory store.
type UserRepository struct {
	store *Store
}

// Create appends a new user. Fails with ErrConflict when the email is taken.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	if err := r.store.delay(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrConflict
		}
	}
	r.store.users = append(r.store.users, user)
	return nil
}

// GetByID returns a copy of the user with the given id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.ID == id {
			copied := user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetByEmail returns a copy of the user with the given email (case-insensitive).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if strings.EqualFold(user.Email, email) {
			copied := user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Update replaces the stored user identified by user.ID.
func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	if err := r.store.delay(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.users {
		if r.store.users[i].ID == user.ID {
			r.store.users[i] = user
			return nil
		}
	}
	return repository.ErrNotFound
}

// List returns a copy of all users.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.User, len(r.store.users))
	copy(out, r.store.users)
	return out, nil
}
