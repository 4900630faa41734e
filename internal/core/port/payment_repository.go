package port

import (
	"context"

	"github.com/brightshield/insurance-portal/internal/core/domain"
)

// PaymentRepository exposes persistence behavior for payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Payment, error)
}
