package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/brightshield/insurance-portal/internal/state"
	"github.com/brightshield/insurance-portal/internal/transport/http/middleware"
	"github.com/brightshield/insurance-portal/internal/usecase"
)

// DashboardHandler aggregates the signed-in user's portal data through a
// per-request state store. Each request builds its own store, runs the fetch
// commands, and reads the derived aggregates; partial failures surface as
// per-section errors instead of failing the whole summary.
type DashboardHandler struct {
	quotes   *usecase.QuoteService
	policies *usecase.PolicyService
	claims   *usecase.ClaimService
	payments *usecase.PaymentService
	logger   *zap.Logger
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(
	quotes *usecase.QuoteService,
	policies *usecase.PolicyService,
	claims *usecase.ClaimService,
	payments *usecase.PaymentService,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		quotes:   quotes,
		policies: policies,
		claims:   claims,
		payments: payments,
		logger:   logger,
	}
}

// RegisterRoutes binds the dashboard route onto an authenticated group.
func (h *DashboardHandler) RegisterRoutes(authed *gin.RouterGroup) {
	authed.GET("/dashboard", h.summary)
}

// DashboardSection reports one slice's load outcome alongside its count.
type DashboardSection struct {
	Total int    `json:"total"`
	Error string `json:"error,omitempty"`
}

// DashboardResponse is the per-role portal summary.
type DashboardResponse struct {
	Quotes           DashboardSection    `json:"quotes"`
	Policies         DashboardSection    `json:"policies"`
	Claims           DashboardSection    `json:"claims"`
	Payments         DashboardSection    `json:"payments"`
	PolicyCounts     map[string]int      `json:"policy_counts"`
	ClaimCounts      map[string]int      `json:"claim_counts"`
	PaymentStats     PaymentStatsPayload `json:"payment_stats"`
	UpcomingPayments []PaymentPayload    `json:"upcoming_payments"`
}

func (h *DashboardHandler) summary(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	store := state.NewStore()
	defer store.Close()

	commands := state.NewCommands(store, h.quotes, h.policies, h.claims, h.payments)

	ctx := c.Request.Context()
	staff := isStaff(c)

	fetches := []func() error{}
	if staff {
		fetches = append(fetches,
			func() error { return commands.FetchAllQuotes(ctx) },
			func() error { return commands.FetchAllPolicies(ctx) },
			func() error { return commands.FetchAllClaims(ctx) },
			func() error { return commands.FetchAllPayments(ctx) },
		)
	} else {
		fetches = append(fetches,
			func() error { return commands.FetchQuotes(ctx, userID) },
			func() error { return commands.FetchPolicies(ctx, userID) },
			func() error { return commands.FetchClaims(ctx, userID) },
			func() error { return commands.FetchPayments(ctx, userID) },
		)
	}
	for _, fetch := range fetches {
		if err := fetch(); err != nil {
			h.logger.Warn("dashboard fetch failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	now := time.Now().UTC()
	stats := store.PaymentStats(now)

	resp := DashboardResponse{
		Quotes:       sectionOf(len(store.Quotes().Items), store.Quotes().Error),
		Policies:     sectionOf(len(store.Policies().Items), store.Policies().Error),
		Claims:       sectionOf(len(store.Claims().Items), store.Claims().Error),
		Payments:     sectionOf(len(store.Payments().Items), store.Payments().Error),
		PolicyCounts: map[string]int{},
		ClaimCounts:  map[string]int{},
		PaymentStats: PaymentStatsPayload{
			TotalPaid: stats.TotalPaid,
			Pending:   stats.Pending,
			Overdue:   stats.Overdue,
		},
		UpcomingPayments: newPaymentPayloads(store.UpcomingPayments(now)),
	}

	for status, count := range store.PolicyCounts() {
		resp.PolicyCounts[string(status)] = count
	}
	for status, count := range store.ClaimCounts() {
		resp.ClaimCounts[string(status)] = count
	}

	c.JSON(http.StatusOK, resp)
}

func sectionOf(total int, loadErr string) DashboardSection {
	return DashboardSection{Total: total, Error: loadErr}
}
