package postgres

import (
	"context"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/repository"
)

// PaymentRepository implements port.PaymentRepository using PostgreSQL.
type PaymentRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewPaymentRepository wires a PostgreSQL-backed payment repository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{exec: pool, builder: builder()}
}

// NewPaymentRepositoryWithExecutor allows injecting a transaction or mock executor.
func NewPaymentRepositoryWithExecutor(exec pgExecutor) *PaymentRepository {
	return &PaymentRepository{exec: exec, builder: builder()}
}

var paymentColumns = []string{
	"id", "user_id", "policy_id", "amount", "status", "method", "paid_at", "due_date",
}

// Create inserts a new payment row. Payments are append-only.
func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) error {
	stmt, args, err := r.builder.Insert("portal.payments").
		Columns(paymentColumns...).
		Values(payment.ID, payment.UserID, payment.PolicyID, payment.Amount,
			payment.Status, payment.Method, payment.PaidAt, payment.DueDate).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert payment sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by identifier.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	stmt, args, err := r.builder.Select(paymentColumns...).
		From("portal.payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select payment sql: %w", err)
	}

	payment, err := scanPayment(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	return payment, nil
}

// List returns all payments ordered by due date.
func (r *PaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	return r.list(ctx, nil)
}

// ListByUser returns the payments owned by userID ordered by due date.
func (r *PaymentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Payment, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID})
}

func (r *PaymentRepository) list(ctx context.Context, pred any) ([]domain.Payment, error) {
	q := r.builder.Select(paymentColumns...).
		From("portal.payments").
		OrderBy("due_date")
	if pred != nil {
		q = q.Where(pred)
	}

	stmt, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list payments sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, *payment)
	}
	return payments, rows.Err()
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		payment domain.Payment
		paidAt  *time.Time
	)
	if err := row.Scan(
		&payment.ID,
		&payment.UserID,
		&payment.PolicyID,
		&payment.Amount,
		&payment.Status,
		&payment.Method,
		&paidAt,
		&payment.DueDate,
	); err != nil {
		return nil, err
	}
	payment.PaidAt = paidAt
	return &payment, nil
}
