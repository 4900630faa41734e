package postgres

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories groups the concrete PostgreSQL repository implementations.
type Repositories struct {
	Users    *UserRepository
	Quotes   *QuoteRepository
	Policies *PolicyRepository
	Claims   *ClaimRepository
	Payments *PaymentRepository
}

// NewRepositories wires all repositories backed by the provided pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(pool),
		Quotes:   NewQuoteRepository(pool),
		Policies: NewPolicyRepository(pool),
		Claims:   NewClaimRepository(pool),
		Payments: NewPaymentRepository(pool),
	}
}
