package port

import (
	"context"

	"github.com/brightshield/insurance-portal/internal/core/domain"
)

// QuoteRepository exposes persistence behavior for quotes.
type QuoteRepository interface {
	Create(ctx context.Context, quote domain.Quote) error
	GetByID(ctx context.Context, id string) (*domain.Quote, error)
	Update(ctx context.Context, quote domain.Quote) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Quote, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Quote, error)
}
