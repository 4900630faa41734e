package port

import (
	"context"

	"github.com/brightshield/insurance-portal/internal/core/domain"
)

// PolicyRepository exposes persistence behavior for policies.
type PolicyRepository interface {
	Create(ctx context.Context, policy domain.Policy) error
	GetByID(ctx context.Context, id string) (*domain.Policy, error)
	Update(ctx context.Context, policy domain.Policy) error
	List(ctx context.Context) ([]domain.Policy, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Policy, error)
}
