package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/repository"
	"github.com/brightshield/insurance-portal/internal/transport/http/middleware"
	"github.com/brightshield/insurance-portal/internal/usecase"
)

// PolicyHandler exposes policy lifecycle endpoints.
type PolicyHandler struct {
	policies *usecase.PolicyService
}

// NewPolicyHandler constructs PolicyHandler.
func NewPolicyHandler(policies *usecase.PolicyService) *PolicyHandler {
	return &PolicyHandler{policies: policies}
}

// RegisterRoutes binds policy routes onto an authenticated group.
func (h *PolicyHandler) RegisterRoutes(authed *gin.RouterGroup) {
	authed.GET("/policies", h.list)
	authed.POST("/policies", h.issue)
	authed.GET("/policies/:id", h.get)
	authed.POST("/policies/:id/renew", h.renew)
	authed.POST("/policies/:id/cancel", h.cancel)
	authed.GET("/policies/:id/download", h.download)
}

var policyErrorCases = []ErrorCase{
	{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "policy not found"},
}

func (h *PolicyHandler) list(c *gin.Context) {
	userID, _ := middleware.GetAuthenticatedUserID(c)

	var (
		policies []domain.Policy
		err      error
	)
	if isStaff(c) {
		policies, err = h.policies.List(c.Request.Context())
	} else {
		policies, err = h.policies.ListByUser(c.Request.Context(), userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list policies"))
		return
	}

	policies = usecase.FilterPolicies(policies, c.Query("status"), c.Query("search"))
	payloads := newPolicyPayloads(policies)

	c.JSON(http.StatusOK, PolicyListResponse{Policies: payloads, Total: len(payloads)})
}

func (h *PolicyHandler) issue(c *gin.Context) {
	userID, _ := middleware.GetAuthenticatedUserID(c)
	role, _ := middleware.GetAuthenticatedRole(c)

	var req PolicyIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "quote_id is required"))
		return
	}

	policy, err := h.policies.IssueFromQuote(c.Request.Context(), req.QuoteID, userID, role)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "quote not found"},
			{Err: usecase.ErrForbidden, Status: http.StatusForbidden, Message: "insufficient permissions"},
		}, http.StatusInternalServerError, "failed to issue policy")
		return
	}

	c.JSON(http.StatusCreated, newPolicyPayload(*policy))
}

func (h *PolicyHandler) get(c *gin.Context) {
	policy, err := h.policies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, policyErrorCases, http.StatusInternalServerError, "failed to load policy")
		return
	}

	if !canAccessRecord(c, policy.UserID) {
		c.JSON(http.StatusForbidden, NewErrorResponse(c, "insufficient permissions"))
		return
	}

	c.JSON(http.StatusOK, newPolicyPayload(*policy))
}

func (h *PolicyHandler) renew(c *gin.Context) {
	existing, err := h.policies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, policyErrorCases, http.StatusInternalServerError, "failed to load policy")
		return
	}
	if !canAccessRecord(c, existing.UserID) {
		c.JSON(http.StatusForbidden, NewErrorResponse(c, "insufficient permissions"))
		return
	}

	policy, err := h.policies.Renew(c.Request.Context(), existing.ID)
	if err != nil {
		RespondWithMappedError(c, err, policyErrorCases, http.StatusInternalServerError, "failed to renew policy")
		return
	}

	c.JSON(http.StatusOK, newPolicyPayload(*policy))
}

func (h *PolicyHandler) cancel(c *gin.Context) {
	existing, err := h.policies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, policyErrorCases, http.StatusInternalServerError, "failed to load policy")
		return
	}
	if !canAccessRecord(c, existing.UserID) {
		c.JSON(http.StatusForbidden, NewErrorResponse(c, "insufficient permissions"))
		return
	}

	policy, err := h.policies.Cancel(c.Request.Context(), existing.ID)
	if err != nil {
		RespondWithMappedError(c, err, policyErrorCases, http.StatusInternalServerError, "failed to cancel policy")
		return
	}

	c.JSON(http.StatusOK, newPolicyPayload(*policy))
}

func (h *PolicyHandler) download(c *gin.Context) {
	policy, err := h.policies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, policyErrorCases, http.StatusInternalServerError, "failed to load policy")
		return
	}
	if !canAccessRecord(c, policy.UserID) {
		c.JSON(http.StatusForbidden, NewErrorResponse(c, "insufficient permissions"))
		return
	}

	respondJSONDownload(c, fmt.Sprintf("policy-%s.json", policy.ID), newPolicyPayload(*policy))
}
