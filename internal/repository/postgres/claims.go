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

// ClaimRepository implements port.ClaimRepository using PostgreSQL.
// Attachments and the message thread are JSONB columns; messages are only
// ever appended by the usecase layer.
type ClaimRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewClaimRepository wires a PostgreSQL-backed claim repository.
func NewClaimRepository(pool *pgxpool.Pool) *ClaimRepository {
	return &ClaimRepository{exec: pool, builder: builder()}
}

// NewClaimRepositoryWithExecutor allows injecting a transaction or mock executor.
func NewClaimRepositoryWithExecutor(exec pgExecutor) *ClaimRepository {
	return &ClaimRepository{exec: exec, builder: builder()}
}

var claimColumns = []string{
	"id", "user_id", "policy_id", "claim_number", "type", "description",
	"amount", "status", "incident_date", "reported_at", "attachments", "messages",
}

// Create inserts a new claim row.
func (r *ClaimRepository) Create(ctx context.Context, claim domain.Claim) error {
	attachments, messages, err := marshalClaimBlobs(claim)
	if err != nil {
		return err
	}

	stmt, args, err := r.builder.Insert("portal.claims").
		Columns(claimColumns...).
		Values(claim.ID, claim.UserID, claim.PolicyID, claim.ClaimNumber,
			claim.Type, claim.Description, claim.Amount, claim.Status,
			claim.IncidentDate, claim.ReportedAt, attachments, messages).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert claim sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert claim: %w", err)
	}
	return nil
}

// GetByID retrieves a claim by identifier.
func (r *ClaimRepository) GetByID(ctx context.Context, id string) (*domain.Claim, error) {
	stmt, args, err := r.builder.Select(claimColumns...).
		From("portal.claims").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select claim sql: %w", err)
	}

	claim, err := scanClaim(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan claim: %w", err)
	}
	return claim, nil
}

// Update replaces the mutable fields of a claim row.
func (r *ClaimRepository) Update(ctx context.Context, claim domain.Claim) error {
	attachments, messages, err := marshalClaimBlobs(claim)
	if err != nil {
		return err
	}

	stmt, args, err := r.builder.Update("portal.claims").
		Set("status", claim.Status).
		Set("amount", claim.Amount).
		Set("attachments", attachments).
		Set("messages", messages).
		Where(squirrel.Eq{"id": claim.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update claim sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update claim: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns all claims, newest first.
func (r *ClaimRepository) List(ctx context.Context) ([]domain.Claim, error) {
	return r.list(ctx, nil)
}

// ListByUser returns the claims filed by userID, newest first.
func (r *ClaimRepository) ListByUser(ctx context.Context, userID string) ([]domain.Claim, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID})
}

func (r *ClaimRepository) list(ctx context.Context, pred any) ([]domain.Claim, error) {
	q := r.builder.Select(claimColumns...).
		From("portal.claims").
		OrderBy("reported_at DESC")
	if pred != nil {
		q = q.Where(pred)
	}

	stmt, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list claims sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()

	var claims []domain.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		claims = append(claims, *claim)
	}
	return claims, rows.Err()
}

func marshalClaimBlobs(claim domain.Claim) (attachments, messages []byte, err error) {
	if attachments, err = json.Marshal(claim.Attachments); err != nil {
		return nil, nil, fmt.Errorf("marshal attachments: %w", err)
	}
	if messages, err = json.Marshal(claim.Messages); err != nil {
		return nil, nil, fmt.Errorf("marshal messages: %w", err)
	}
	return attachments, messages, nil
}

func scanClaim(row pgx.Row) (*domain.Claim, error) {
	var (
		claim       domain.Claim
		attachments []byte
		messages    []byte
	)
	if err := row.Scan(
		&claim.ID,
		&claim.UserID,
		&claim.PolicyID,
		&claim.ClaimNumber,
		&claim.Type,
		&claim.Description,
		&claim.Amount,
		&claim.Status,
		&claim.IncidentDate,
		&claim.ReportedAt,
		&attachments,
		&messages,
	); err != nil {
		return nil, err
	}
	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &claim.Attachments); err != nil {
			return nil, fmt.Errorf("unmarshal attachments: %w", err)
		}
	}
	if len(messages) > 0 {
		if err := json.Unmarshal(messages, &claim.Messages); err != nil {
			return nil, fmt.Errorf("unmarshal messages: %w", err)
		}
	}
	return &claim, nil
}
