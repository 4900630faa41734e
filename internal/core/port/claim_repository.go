package port

import (
	"context"

	"github.com/brightshield/insurance-portal/internal/core/domain"
)

// ClaimRepository exposes persistence behavior for claims.
type ClaimRepository interface {
	Create(ctx context.Context, claim domain.Claim) error
	GetByID(ctx context.Context, id string) (*domain.Claim, error)
	Update(ctx context.Context, claim domain.Claim) error
	List(ctx context.Context) ([]domain.Claim, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Claim, error)
}
