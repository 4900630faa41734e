package port

import (
	"context"

	"github.com/brightshield/insurance-portal/internal/core/domain"
)

// ContentRepository exposes persistence behavior for marketing and help content.
type ContentRepository interface {
	ListPosts(ctx context.Context) ([]domain.BlogPost, error)
	GetPost(ctx context.Context, id string) (*domain.BlogPost, error)
	ListFAQs(ctx context.Context) ([]domain.FAQ, error)
	CreateContactMessage(ctx context.Context, msg domain.ContactMessage) error
}
