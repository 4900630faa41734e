package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	kafkainfra "github.com/brightshield/insurance-portal/internal/infra/kafka"
	"github.com/brightshield/insurance-portal/internal/infra/security"
	memoryrepo "github.com/brightshield/insurance-portal/internal/repository/memory"
	"github.com/brightshield/insurance-portal/internal/usecase"
)

func newAuthFixture(t *testing.T) (*usecase.AuthService, *security.TokenManager) {
	t.Helper()

	tokens, err := security.NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}

	auth := usecase.NewAuthService(
		memoryrepo.NewStore().Users(),
		tokens,
		security.DefaultPasswordValidator(),
		kafkainfra.NewStubPublisher(zaptest.NewLogger(t)),
		zaptest.NewLogger(t),
	)
	return auth, tokens
}

func issueToken(t *testing.T, tokens *security.TokenManager, role domain.Role) string {
	t.Helper()

	token, err := tokens.Issue(domain.User{ID: "user-1", Email: "jamie@example.com", Role: role})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth, tokens := newAuthFixture(t)

	router := gin.New()
	router.GET("/", RequireAuth(auth), func(c *gin.Context) {
		userID, ok := GetAuthenticatedUserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, userID)
	})

	tests := []struct {
		name       string
		authorize  func(r *http.Request)
		wantStatus int
	}{
		{
			name:       "missing header",
			authorize:  func(*http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "malformed header",
			authorize: func(r *http.Request) {
				r.Header.Set("Authorization", "Token abc")
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "garbage token",
			authorize: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not.a.token")
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "valid token",
			authorize: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, domain.RoleCustomer))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.authorize(req)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && rr.Body.String() != "user-1" {
				t.Fatalf("authenticated user id = %q, want user-1", rr.Body.String())
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth, tokens := newAuthFixture(t)

	router := gin.New()
	router.GET("/", OptionalAuth(auth), func(c *gin.Context) {
		userID, _ := GetAuthenticatedUserID(c)
		c.String(http.StatusOK, userID)
	})

	// Anonymous requests pass with no identity.
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "" {
		t.Fatalf("anonymous: status=%d body=%q", rr.Code, rr.Body.String())
	}

	// Invalid tokens are ignored rather than rejected.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer junk")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Body.String() != "" {
		t.Fatalf("invalid token: status=%d body=%q", rr.Code, rr.Body.String())
	}

	// Valid tokens attach the identity.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, domain.RoleCustomer))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Body.String() != "user-1" {
		t.Fatalf("valid token: status=%d body=%q", rr.Code, rr.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth, tokens := newAuthFixture(t)

	router := gin.New()
	router.GET("/", RequireAuth(auth), RequireRole(domain.RoleAgent, domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name       string
		role       domain.Role
		wantStatus int
	}{
		{name: "customer is rejected", role: domain.RoleCustomer, wantStatus: http.StatusForbidden},
		{name: "agent is allowed", role: domain.RoleAgent, wantStatus: http.StatusOK},
		{name: "admin is allowed", role: domain.RoleAdmin, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, tt.role))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}
