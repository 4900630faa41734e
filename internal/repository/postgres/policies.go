package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/repository"
)

// PolicyRepository implements port.PolicyRepository using PostgreSQL.
type PolicyRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewPolicyRepository wires a PostgreSQL-backed policy repository.
func NewPolicyRepository(pool *pgxpool.Pool) *PolicyRepository {
	return &PolicyRepository{exec: pool, builder: builder()}
}

// NewPolicyRepositoryWithExecutor allows injecting a transaction or mock executor.
func NewPolicyRepositoryWithExecutor(exec pgExecutor) *PolicyRepository {
	return &PolicyRepository{exec: exec, builder: builder()}
}

var policyColumns = []string{
	"id", "user_id", "quote_id", "policy_number", "type", "status", "premium",
	"coverage", "start_date", "end_date", "next_payment_date", "documents",
}

// Create inserts a new policy row.
func (r *PolicyRepository) Create(ctx context.Context, policy domain.Policy) error {
	coverage, err := json.Marshal(policy.CoverageDetails)
	if err != nil {
		return fmt.Errorf("marshal coverage: %w", err)
	}
	documents, err := json.Marshal(policy.Documents)
	if err != nil {
		return fmt.Errorf("marshal documents: %w", err)
	}

	stmt, args, err := r.builder.Insert("portal.policies").
		Columns(policyColumns...).
		Values(policy.ID, policy.UserID, policy.QuoteID, policy.PolicyNumber,
			policy.Type, policy.Status, policy.Premium, coverage,
			policy.StartDate, policy.EndDate, policy.NextPaymentDate, documents).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert policy sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert policy: %w", err)
	}
	return nil
}

// GetByID retrieves a policy by identifier.
func (r *PolicyRepository) GetByID(ctx context.Context, id string) (*domain.Policy, error) {
	stmt, args, err := r.builder.Select(policyColumns...).
		From("portal.policies").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select policy sql: %w", err)
	}

	policy, err := scanPolicy(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan policy: %w", err)
	}
	return policy, nil
}

// Update replaces the mutable fields of a policy row.
func (r *PolicyRepository) Update(ctx context.Context, policy domain.Policy) error {
	coverage, err := json.Marshal(policy.CoverageDetails)
	if err != nil {
		return fmt.Errorf("marshal coverage: %w", err)
	}
	documents, err := json.Marshal(policy.Documents)
	if err != nil {
		return fmt.Errorf("marshal documents: %w", err)
	}

	stmt, args, err := r.builder.Update("portal.policies").
		Set("status", policy.Status).
		Set("premium", policy.Premium).
		Set("coverage", coverage).
		Set("start_date", policy.StartDate).
		Set("end_date", policy.EndDate).
		Set("next_payment_date", policy.NextPaymentDate).
		Set("documents", documents).
		Where(squirrel.Eq{"id": policy.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update policy sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update policy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns all policies, newest first.
func (r *PolicyRepository) List(ctx context.Context) ([]domain.Policy, error) {
	return r.list(ctx, nil)
}

// ListByUser returns the policies owned by userID, newest first.
func (r *PolicyRepository) ListByUser(ctx context.Context, userID string) ([]domain.Policy, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID})
}

func (r *PolicyRepository) list(ctx context.Context, pred any) ([]domain.Policy, error) {
	q := r.builder.Select(policyColumns...).
		From("portal.policies").
		OrderBy("start_date DESC")
	if pred != nil {
		q = q.Where(pred)
	}

	stmt, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list policies sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()

	var policies []domain.Policy
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		policies = append(policies, *policy)
	}
	return policies, rows.Err()
}

func scanPolicy(row pgx.Row) (*domain.Policy, error) {
	var (
		policy    domain.Policy
		coverage  []byte
		documents []byte
	)
	if err := row.Scan(
		&policy.ID,
		&policy.UserID,
		&policy.QuoteID,
		&policy.PolicyNumber,
		&policy.Type,
		&policy.Status,
		&policy.Premium,
		&coverage,
		&policy.StartDate,
		&policy.EndDate,
		&policy.NextPaymentDate,
		&documents,
	); err != nil {
		return nil, err
	}
	if len(coverage) > 0 {
		if err := json.Unmarshal(coverage, &policy.CoverageDetails); err != nil {
			return nil, fmt.Errorf("unmarshal coverage: %w", err)
		}
	}
	if len(documents) > 0 {
		if err := json.Unmarshal(documents, &policy.Documents); err != nil {
			return nil, fmt.Errorf("unmarshal documents: %w", err)
		}
	}
	return &policy, nil
}
