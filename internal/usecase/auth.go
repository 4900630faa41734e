package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/core/port"
	"github.com/brightshield/insurance-portal/internal/infra/security"
	"github.com/brightshield/insurance-portal/internal/repository"
)

var (
	// ErrInvalidCredentials indicates the email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken indicates an account already exists for the email.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidToken indicates the session token is malformed or unsigned.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrExpiredToken indicates the session token has expired.
	ErrExpiredToken = errors.New("session token expired")
	// ErrInvalidInput indicates a request failed field validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden indicates the caller may not act on the referenced record.
	ErrForbidden = errors.New("insufficient permissions")
)

// AuthService coordinates registration, login, and session token handling.
type AuthService struct {
	users             port.UserRepository
	tokens            *security.TokenManager
	passwordValidator *security.PasswordValidator
	events            port.EventPublisher
	logger            *zap.Logger
	now               func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(
	users port.UserRepository,
	tokens *security.TokenManager,
	passwordValidator *security.PasswordValidator,
	events port.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:             users,
		tokens:            tokens,
		passwordValidator: passwordValidator,
		events:            events,
		logger:            logger,
		now:               time.Now,
	}
}

// WithClock overrides the time source; used by tests.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// RegisterInput carries the fields captured by the registration form.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// AuthResult pairs the sanitized user with a freshly issued session token.
type AuthResult struct {
	User  domain.User
	Token string
}

// Register creates a customer account and issues a session token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)

	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if input.FirstName == "" || input.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	if err := s.passwordValidator.Validate(input.Password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        strings.TrimSpace(input.Phone),
		Role:         domain.RoleCustomer,
		Address:      domain.Address{Country: "USA"},
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if err := s.events.PublishUserRegistered(ctx, domain.UserRegisteredEvent{
		EventID:      uuid.NewString(),
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		RegisteredAt: user.CreatedAt,
	}); err != nil {
		s.logger.Warn("publish user registered event failed", zap.Error(err))
	}

	return &AuthResult{User: sanitize(user), Token: token}, nil
}

// Login validates credentials and issues a session token. Unknown email and
// wrong password both yield the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(*user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{User: sanitize(*user), Token: token}, nil
}

// ParseToken verifies a bearer token and returns its claims.
func (s *AuthService) ParseToken(_ context.Context, token string) (*security.SessionClaims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		switch {
		case errors.Is(err, security.ErrExpiredToken):
			return nil, ErrExpiredToken
		default:
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}

// Profile returns the sanitized account for the given user id.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sanitized := sanitize(*user)
	return &sanitized, nil
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	FirstName   string
	LastName    string
	Phone       string
	DateOfBirth *time.Time
	Address     domain.Address
}

// UpdateProfile mutates the editable fields of an account.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.FirstName != "" {
		user.FirstName = strings.TrimSpace(update.FirstName)
	}
	if update.LastName != "" {
		user.LastName = strings.TrimSpace(update.LastName)
	}
	if update.Phone != "" {
		user.Phone = strings.TrimSpace(update.Phone)
	}
	if update.DateOfBirth != nil {
		user.DateOfBirth = update.DateOfBirth
	}
	if update.Address != (domain.Address{}) {
		user.Address = update.Address
	}

	if err := s.users.Update(ctx, *user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	sanitized := sanitize(*user)
	return &sanitized, nil
}

// sanitize strips the credential hash before a user leaves the usecase layer.
func sanitize(user domain.User) domain.User {
	user.PasswordHash = ""
	return user
}
