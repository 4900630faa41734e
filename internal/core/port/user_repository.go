package port

import (
	"context"

	"github.com/brightshield/insurance-portal/internal/core/domain"
)

// UserRepository exposes persistence behavior for portal accounts.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user domain.User) error
	List(ctx context.Context) ([]domain.User, error)
}
