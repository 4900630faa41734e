package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	kafkainfra "github.com/brightshield/insurance-portal/internal/infra/kafka"
	"github.com/brightshield/insurance-portal/internal/infra/security"
	memoryrepo "github.com/brightshield/insurance-portal/internal/repository/memory"
)

func newAuthServiceForTest(t *testing.T) *AuthService {
	t.Helper()

	tokens, err := security.NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}

	store := memoryrepo.NewStore()
	return NewAuthService(
		store.Users(),
		tokens,
		security.DefaultPasswordValidator(),
		kafkainfra.NewStubPublisher(zaptest.NewLogger(t)),
		zaptest.NewLogger(t),
	)
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	auth := newAuthServiceForTest(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, RegisterInput{
		Email:     "  Jamie@Example.com ",
		Password:  "v9#Kp2x!mQ5z",
		FirstName: "Jamie",
		LastName:  "Rivera",
		Phone:     "555-0142",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if registered.User.Email != "jamie@example.com" {
		t.Fatalf("email not normalized, got %q", registered.User.Email)
	}
	if registered.User.Role != domain.RoleCustomer {
		t.Fatalf("expected customer role, got %q", registered.User.Role)
	}
	if registered.User.PasswordHash != "" {
		t.Fatal("password hash leaked in registration response")
	}
	if registered.Token == "" {
		t.Fatal("expected a session token")
	}

	claims, err := auth.ParseToken(ctx, registered.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID() != registered.User.ID {
		t.Fatalf("token subject %q does not match user %q", claims.UserID(), registered.User.ID)
	}
	if claims.Role != domain.RoleCustomer {
		t.Fatalf("token role = %q, want customer", claims.Role)
	}

	loggedIn, err := auth.Login(ctx, "JAMIE@example.com", "v9#Kp2x!mQ5z")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.User.ID != registered.User.ID {
		t.Fatalf("login returned user %q, want %q", loggedIn.User.ID, registered.User.ID)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	auth := newAuthServiceForTest(t)
	ctx := context.Background()

	input := RegisterInput{
		Email:     "dup@example.com",
		Password:  "v9#Kp2x!mQ5z",
		FirstName: "First",
		LastName:  "User",
	}
	if _, err := auth.Register(ctx, input); err != nil {
		t.Fatalf("first register: %v", err)
	}

	if _, err := auth.Register(ctx, input); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	auth := newAuthServiceForTest(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{
			name:  "missing email",
			input: RegisterInput{Password: "v9#Kp2x!mQ5z", FirstName: "A", LastName: "B"},
		},
		{
			name:  "malformed email",
			input: RegisterInput{Email: "not-an-email", Password: "v9#Kp2x!mQ5z", FirstName: "A", LastName: "B"},
		},
		{
			name:  "missing name",
			input: RegisterInput{Email: "a@example.com", Password: "v9#Kp2x!mQ5z"},
		},
		{
			name:  "short password",
			input: RegisterInput{Email: "a@example.com", Password: "ab1", FirstName: "A", LastName: "B"},
		},
		{
			name:  "password without digits",
			input: RegisterInput{Email: "a@example.com", Password: "onlyletterspassword", FirstName: "A", LastName: "B"},
		},
		{
			name:  "guessable password",
			input: RegisterInput{Email: "a@example.com", Password: "password1", FirstName: "A", LastName: "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := auth.Register(ctx, tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newAuthServiceForTest(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, RegisterInput{
		Email:     "jamie@example.com",
		Password:  "v9#Kp2x!mQ5z",
		FirstName: "Jamie",
		LastName:  "Rivera",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := auth.Login(ctx, "jamie@example.com", "wrong password 42"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := auth.Login(ctx, "nobody@example.com", "v9#Kp2x!mQ5z"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := auth.Login(ctx, "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty credentials: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	auth := newAuthServiceForTest(t)

	if _, err := auth.ParseToken(context.Background(), "not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestUpdateProfileMutatesOnlyProvidedFields(t *testing.T) {
	auth := newAuthServiceForTest(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, RegisterInput{
		Email:     "jamie@example.com",
		Password:  "v9#Kp2x!mQ5z",
		FirstName: "Jamie",
		LastName:  "Rivera",
		Phone:     "555-0142",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := auth.UpdateProfile(ctx, registered.User.ID, ProfileUpdate{
		Phone: "555-0199",
		Address: domain.Address{
			Street:  "1 Main St",
			City:    "Springfield",
			State:   "IL",
			ZipCode: "62701",
			Country: "USA",
		},
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}

	if updated.FirstName != "Jamie" || updated.LastName != "Rivera" {
		t.Fatalf("name changed unexpectedly: %s %s", updated.FirstName, updated.LastName)
	}
	if updated.Phone != "555-0199" {
		t.Fatalf("phone = %q, want 555-0199", updated.Phone)
	}
	if updated.Address.City != "Springfield" {
		t.Fatalf("address not applied: %+v", updated.Address)
	}

	profile, err := auth.Profile(ctx, registered.User.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Phone != "555-0199" {
		t.Fatalf("update not persisted, phone = %q", profile.Phone)
	}
	if profile.PasswordHash != "" {
		t.Fatal("password hash leaked in profile response")
	}
}
