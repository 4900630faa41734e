package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/repository"
)

// UserRepository implements port.UserRepository using PostgreSQL.
type UserRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewUserRepository wires a PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{exec: pool, builder: builder()}
}

// NewUserRepositoryWithExecutor allows injecting a transaction or mock executor.
func NewUserRepositoryWithExecutor(exec pgExecutor) *UserRepository {
	return &UserRepository{exec: exec, builder: builder()}
}

// Create inserts a new user row.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	address, err := json.Marshal(user.Address)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}

	stmt, args, err := r.builder.Insert("portal.users").
		Columns("id", "email", "password_hash", "first_name", "last_name", "phone", "role", "date_of_birth", "address", "created_at").
		Values(user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone, user.Role, user.DateOfBirth, address, user.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, squirrel.Expr("lower(email) = lower(?)", email))
}

func (r *UserRepository) getBy(ctx context.Context, pred any) (*domain.User, error) {
	stmt, args, err := r.builder.
		Select("id", "email", "password_hash", "first_name", "last_name", "phone", "role", "date_of_birth", "address", "created_at").
		From("portal.users").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)
	user, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}

// Update replaces the mutable profile fields of a user row.
func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	address, err := json.Marshal(user.Address)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}

	stmt, args, err := r.builder.Update("portal.users").
		Set("email", user.Email).
		Set("password_hash", user.PasswordHash).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("phone", user.Phone).
		Set("role", user.Role).
		Set("date_of_birth", user.DateOfBirth).
		Set("address", address).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns all users ordered by creation time.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	stmt, args, err := r.builder.
		Select("id", "email", "password_hash", "first_name", "last_name", "phone", "role", "date_of_birth", "address", "created_at").
		From("portal.users").
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list users sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user    domain.User
		dob     *time.Time
		address []byte
	)
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.Role,
		&dob,
		&address,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	user.DateOfBirth = dob
	if len(address) > 0 {
		if err := json.Unmarshal(address, &user.Address); err != nil {
			return nil, fmt.Errorf("unmarshal address: %w", err)
		}
	}
	return &user, nil
}
