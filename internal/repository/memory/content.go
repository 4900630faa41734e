package memory

import (
	"context"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/repository"
)

// ContentRepository implements port.ContentRepository against the in-memory store.
type ContentRepository struct {
	store *Store
}

// ListPosts returns a copy of all blog posts.
func (r *ContentRepository) ListPosts(ctx context.Context) ([]domain.BlogPost, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.BlogPost, len(r.store.posts))
	copy(out, r.store.posts)
	return out, nil
}

// GetPost returns a copy of the post with the given id.
func (r *ContentRepository) GetPost(ctx context.Context, id string) (*domain.BlogPost, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, post := range r.store.posts {
		if post.ID == id {
			copied := post
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ListFAQs returns a copy of all FAQ entries.
func (r *ContentRepository) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	if err := r.store.delay(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.FAQ, len(r.store.faqs))
	copy(out, r.store.faqs)
	return out, nil
}

// CreateContactMessage appends a contact-form submission.
func (r *ContentRepository) CreateContactMessage(ctx context.Context, msg domain.ContactMessage) error {
	if err := r.store.delay(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.contacts = append(r.store.contacts, msg)
	return nil
}
