package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/repository"
	"github.com/brightshield/insurance-portal/internal/transport/http/middleware"
	"github.com/brightshield/insurance-portal/internal/usecase"
)

// ClaimHandler exposes claim filing and tracking endpoints.
type ClaimHandler struct {
	claims *usecase.ClaimService
}

// NewClaimHandler constructs ClaimHandler.
func NewClaimHandler(claims *usecase.ClaimService) *ClaimHandler {
	return &ClaimHandler{claims: claims}
}

// RegisterRoutes binds claim routes. Status transitions are restricted to staff.
func (h *ClaimHandler) RegisterRoutes(authed *gin.RouterGroup, staffOnly gin.HandlerFunc) {
	authed.GET("/claims", h.list)
	authed.POST("/claims", h.file)
	authed.GET("/claims/:id", h.get)
	authed.POST("/claims/:id/messages", h.addMessage)
	authed.PATCH("/claims/:id/status", staffOnly, h.updateStatus)
}

var claimErrorCases = []ErrorCase{
	{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "claim not found"},
	{Err: usecase.ErrInvalidStatus, Status: http.StatusBadRequest, Message: "invalid claim status"},
	{Err: usecase.ErrInvalidInput, Status: http.StatusBadRequest, Message: "claim failed validation"},
}

func (h *ClaimHandler) list(c *gin.Context) {
	userID, _ := middleware.GetAuthenticatedUserID(c)

	var (
		claims []domain.Claim
		err    error
	)
	if isStaff(c) {
		claims, err = h.claims.List(c.Request.Context())
	} else {
		claims, err = h.claims.ListByUser(c.Request.Context(), userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list claims"))
		return
	}

	claims = usecase.FilterClaims(claims, c.Query("status"), c.Query("search"))
	payloads := newClaimPayloads(claims)

	c.JSON(http.StatusOK, ClaimListResponse{Claims: payloads, Total: len(payloads)})
}

func (h *ClaimHandler) file(c *gin.Context) {
	userID, _ := middleware.GetAuthenticatedUserID(c)
	role, _ := middleware.GetAuthenticatedRole(c)

	var req ClaimFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid claim payload"))
		return
	}

	attachments := make([]domain.Attachment, 0, len(req.Attachments))
	for _, att := range req.Attachments {
		attachments = append(attachments, domain.Attachment{
			ID:         att.ID,
			Name:       att.Name,
			URL:        att.URL,
			Size:       att.Size,
			UploadedAt: att.UploadedAt,
		})
	}

	claim, err := h.claims.File(c.Request.Context(), usecase.FileClaimInput{
		UserID:       userID,
		Role:         role,
		PolicyID:     req.PolicyID,
		Type:         req.Type,
		Description:  req.Description,
		Amount:       req.Amount,
		IncidentDate: req.IncidentDate,
		Attachments:  attachments,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "policy not found"},
			{Err: usecase.ErrForbidden, Status: http.StatusForbidden, Message: "insufficient permissions"},
			{Err: usecase.ErrInvalidInput, Status: http.StatusBadRequest, Message: "claim failed validation"},
		}, http.StatusInternalServerError, "failed to file claim")
		return
	}

	c.JSON(http.StatusCreated, newClaimPayload(*claim))
}

func (h *ClaimHandler) get(c *gin.Context) {
	claim, err := h.claims.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, claimErrorCases, http.StatusInternalServerError, "failed to load claim")
		return
	}

	if !canAccessRecord(c, claim.UserID) {
		c.JSON(http.StatusForbidden, NewErrorResponse(c, "insufficient permissions"))
		return
	}

	c.JSON(http.StatusOK, newClaimPayload(*claim))
}

func (h *ClaimHandler) addMessage(c *gin.Context) {
	claim, err := h.claims.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, claimErrorCases, http.StatusInternalServerError, "failed to load claim")
		return
	}
	if !canAccessRecord(c, claim.UserID) {
		c.JSON(http.StatusForbidden, NewErrorResponse(c, "insufficient permissions"))
		return
	}

	var req ClaimMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "message text is required"))
		return
	}

	userID, _ := middleware.GetAuthenticatedUserID(c)
	senderName := ""
	if claims := middleware.GetSessionClaims(c); claims != nil {
		senderName = claims.Email
	}

	message, err := h.claims.AddMessage(c.Request.Context(), claim.ID, userID, senderName, req.Text)
	if err != nil {
		RespondWithMappedError(c, err, claimErrorCases, http.StatusInternalServerError, "failed to add message")
		return
	}

	c.JSON(http.StatusCreated, ClaimMessagePayload{
		ID:         message.ID,
		SenderID:   message.SenderID,
		SenderName: message.SenderName,
		Text:       message.Text,
		Timestamp:  message.Timestamp,
	})
}

func (h *ClaimHandler) updateStatus(c *gin.Context) {
	var req ClaimStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "status is required"))
		return
	}

	claim, err := h.claims.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		RespondWithMappedError(c, err, claimErrorCases, http.StatusInternalServerError, "failed to update claim status")
		return
	}

	c.JSON(http.StatusOK, newClaimPayload(*claim))
}
