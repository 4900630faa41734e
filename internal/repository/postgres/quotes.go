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

// QuoteRepository implements port.QuoteRepository using PostgreSQL.
// Nested snapshots (personal info, vehicle/home attributes, coverage) are
// stored as JSONB columns.
type QuoteRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewQuoteRepository wires a PostgreSQL-backed quote repository.
func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{exec: pool, builder: builder()}
}

// NewQuoteRepositoryWithExecutor allows injecting a transaction or mock executor.
func NewQuoteRepositoryWithExecutor(exec pgExecutor) *QuoteRepository {
	return &QuoteRepository{exec: exec, builder: builder()}
}

var quoteColumns = []string{
	"id", "user_id", "type", "personal_info", "vehicle_info", "home_info",
	"coverage", "premium", "status", "created_at", "expires_at", "valid_until",
}

// Create inserts a new quote row.
func (r *QuoteRepository) Create(ctx context.Context, quote domain.Quote) error {
	personal, vehicle, home, coverage, err := marshalQuoteBlobs(quote)
	if err != nil {
		return err
	}

	var userID any
	if quote.UserID != "" {
		userID = quote.UserID
	}

	stmt, args, err := r.builder.Insert("portal.quotes").
		Columns(quoteColumns...).
		Values(quote.ID, userID, quote.Type, personal, vehicle, home, coverage,
			quote.Premium, quote.Status, quote.CreatedAt, quote.ExpiresAt, quote.ValidUntil).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert quote sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// GetByID retrieves a quote by identifier.
func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	stmt, args, err := r.builder.Select(quoteColumns...).
		From("portal.quotes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select quote sql: %w", err)
	}

	quote, err := scanQuote(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan quote: %w", err)
	}
	return quote, nil
}

// Update replaces a quote row.
func (r *QuoteRepository) Update(ctx context.Context, quote domain.Quote) error {
	personal, vehicle, home, coverage, err := marshalQuoteBlobs(quote)
	if err != nil {
		return err
	}

	stmt, args, err := r.builder.Update("portal.quotes").
		Set("type", quote.Type).
		Set("personal_info", personal).
		Set("vehicle_info", vehicle).
		Set("home_info", home).
		Set("coverage", coverage).
		Set("premium", quote.Premium).
		Set("status", quote.Status).
		Set("expires_at", quote.ExpiresAt).
		Set("valid_until", quote.ValidUntil).
		Where(squirrel.Eq{"id": quote.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update quote sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a quote row.
func (r *QuoteRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.Delete("portal.quotes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete quote sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns all quotes ordered by creation time, newest first.
func (r *QuoteRepository) List(ctx context.Context) ([]domain.Quote, error) {
	return r.list(ctx, nil)
}

// ListByUser returns the quotes owned by userID, newest first.
func (r *QuoteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Quote, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID})
}

func (r *QuoteRepository) list(ctx context.Context, pred any) ([]domain.Quote, error) {
	q := r.builder.Select(quoteColumns...).
		From("portal.quotes").
		OrderBy("created_at DESC")
	if pred != nil {
		q = q.Where(pred)
	}

	stmt, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list quotes sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var quotes []domain.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, *quote)
	}
	return quotes, rows.Err()
}

func marshalQuoteBlobs(quote domain.Quote) (personal, vehicle, home, coverage []byte, err error) {
	if personal, err = json.Marshal(quote.PersonalInfo); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal personal info: %w", err)
	}
	if quote.VehicleInfo != nil {
		if vehicle, err = json.Marshal(quote.VehicleInfo); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal vehicle info: %w", err)
		}
	}
	if quote.HomeInfo != nil {
		if home, err = json.Marshal(quote.HomeInfo); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshal home info: %w", err)
		}
	}
	if coverage, err = json.Marshal(quote.CoverageDetails); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal coverage: %w", err)
	}
	return personal, vehicle, home, coverage, nil
}

func scanQuote(row pgx.Row) (*domain.Quote, error) {
	var (
		quote    domain.Quote
		userID   *string
		personal []byte
		vehicle  []byte
		home     []byte
		coverage []byte
	)
	if err := row.Scan(
		&quote.ID,
		&userID,
		&quote.Type,
		&personal,
		&vehicle,
		&home,
		&coverage,
		&quote.Premium,
		&quote.Status,
		&quote.CreatedAt,
		&quote.ExpiresAt,
		&quote.ValidUntil,
	); err != nil {
		return nil, err
	}
	if userID != nil {
		quote.UserID = *userID
	}
	if len(personal) > 0 {
		if err := json.Unmarshal(personal, &quote.PersonalInfo); err != nil {
			return nil, fmt.Errorf("unmarshal personal info: %w", err)
		}
	}
	if len(vehicle) > 0 {
		quote.VehicleInfo = &domain.VehicleInfo{}
		if err := json.Unmarshal(vehicle, quote.VehicleInfo); err != nil {
			return nil, fmt.Errorf("unmarshal vehicle info: %w", err)
		}
	}
	if len(home) > 0 {
		quote.HomeInfo = &domain.HomeInfo{}
		if err := json.Unmarshal(home, quote.HomeInfo); err != nil {
			return nil, fmt.Errorf("unmarshal home info: %w", err)
		}
	}
	if len(coverage) > 0 {
		if err := json.Unmarshal(coverage, &quote.CoverageDetails); err != nil {
			return nil, fmt.Errorf("unmarshal coverage: %w", err)
		}
	}
	return &quote, nil
}
