package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/repository"
)

var userColumns = []string{
	"id", "email", "password_hash", "first_name", "last_name",
	"phone", "role", "date_of_birth", "address", "created_at",
}

func newUserRepoMock(t *testing.T) (pgxmock.PgxPoolIface, *UserRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("new pgxmock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock, NewUserRepositoryWithExecutor(mock)
}

func TestUserRepositoryCreate(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	mock.ExpectExec("INSERT INTO portal.users").
		WithArgs(
			"u1", "jamie@example.com", "salt:hash", "Jamie", "Rivera",
			"555-0142", domain.RoleCustomer, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), domain.User{
		ID:           "u1",
		Email:        "jamie@example.com",
		PasswordHash: "salt:hash",
		FirstName:    "Jamie",
		LastName:     "Rivera",
		Phone:        "555-0142",
		Role:         domain.RoleCustomer,
		Address:      domain.Address{Country: "USA"},
		CreatedAt:    time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	mock, repo := newUserRepoMock(t)
	createdAt := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, email, password_hash, first_name, last_name, phone, role, date_of_birth, address, created_at FROM portal.users").
		WithArgs("jamie@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(
			"u1", "jamie@example.com", "salt:hash", "Jamie", "Rivera",
			"555-0142", domain.RoleCustomer, nil, []byte(`{"Country":"USA"}`), createdAt,
		))

	user, err := repo.GetByEmail(context.Background(), "jamie@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if user.ID != "u1" || user.FirstName != "Jamie" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Address.Country != "USA" {
		t.Fatalf("address not decoded: %+v", user.Address)
	}
	if user.DateOfBirth != nil {
		t.Fatalf("expected nil date of birth, got %v", user.DateOfBirth)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepositoryGetByIDNotFound(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	mock.ExpectQuery("SELECT id, email, password_hash, first_name, last_name, phone, role, date_of_birth, address, created_at FROM portal.users").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepositoryUpdateNotFound(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	mock.ExpectExec("UPDATE portal.users").
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), domain.User{ID: "missing"})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepositoryList(t *testing.T) {
	mock, repo := newUserRepoMock(t)
	createdAt := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, email, password_hash, first_name, last_name, phone, role, date_of_birth, address, created_at FROM portal.users").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow("u1", "a@example.com", "h", "A", "One", "", domain.RoleCustomer, nil, []byte(`{}`), createdAt).
			AddRow("u2", "b@example.com", "h", "B", "Two", "", domain.RoleAgent, nil, []byte(`{}`), createdAt))

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[1].Role != domain.RoleAgent {
		t.Fatalf("role = %q, want agent", users[1].Role)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
