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

// PaymentHandler exposes payment submission and history endpoints.
type PaymentHandler struct {
	payments *usecase.PaymentService
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(payments *usecase.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// RegisterRoutes binds payment routes onto an authenticated group.
func (h *PaymentHandler) RegisterRoutes(authed *gin.RouterGroup) {
	authed.GET("/payments", h.list)
	authed.POST("/payments", h.makePayment)
	authed.POST("/payments/schedule", h.schedule)
	authed.GET("/payments/upcoming", h.upcoming)
	authed.GET("/payments/:id/receipt", h.receipt)
}

var paymentErrorCases = []ErrorCase{
	{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "payment not found"},
	{Err: usecase.ErrInvalidInput, Status: http.StatusBadRequest, Message: "payment failed validation"},
}

func (h *PaymentHandler) list(c *gin.Context) {
	userID, _ := middleware.GetAuthenticatedUserID(c)

	var (
		payments []domain.Payment
		err      error
	)
	if isStaff(c) {
		payments, err = h.payments.List(c.Request.Context())
	} else {
		payments, err = h.payments.ListByUser(c.Request.Context(), userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list payments"))
		return
	}

	payments = usecase.FilterPayments(payments, c.Query("status"))
	payloads := newPaymentPayloads(payments)

	c.JSON(http.StatusOK, PaymentListResponse{Payments: payloads, Total: len(payloads)})
}

func (h *PaymentHandler) makePayment(c *gin.Context) {
	userID, _ := middleware.GetAuthenticatedUserID(c)
	role, _ := middleware.GetAuthenticatedRole(c)

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid payment payload"))
		return
	}

	payment, err := h.payments.MakePayment(c.Request.Context(), usecase.PaymentInput{
		UserID:   userID,
		Role:     role,
		PolicyID: req.PolicyID,
		Amount:   req.Amount,
		Method:   req.Method,
		DueDate:  req.DueDate,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "policy not found"},
			{Err: usecase.ErrForbidden, Status: http.StatusForbidden, Message: "insufficient permissions"},
			{Err: usecase.ErrInvalidInput, Status: http.StatusBadRequest, Message: "payment failed validation"},
		}, http.StatusInternalServerError, "failed to record payment")
		return
	}

	c.JSON(http.StatusCreated, newPaymentPayload(*payment))
}

func (h *PaymentHandler) schedule(c *gin.Context) {
	userID, _ := middleware.GetAuthenticatedUserID(c)
	role, _ := middleware.GetAuthenticatedRole(c)

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid payment payload"))
		return
	}

	payment, err := h.payments.Schedule(c.Request.Context(), usecase.PaymentInput{
		UserID:   userID,
		Role:     role,
		PolicyID: req.PolicyID,
		Amount:   req.Amount,
		Method:   req.Method,
		DueDate:  req.DueDate,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "policy not found"},
			{Err: usecase.ErrForbidden, Status: http.StatusForbidden, Message: "insufficient permissions"},
			{Err: usecase.ErrInvalidInput, Status: http.StatusBadRequest, Message: "payment failed validation"},
		}, http.StatusInternalServerError, "failed to schedule payment")
		return
	}

	c.JSON(http.StatusCreated, newPaymentPayload(*payment))
}

func (h *PaymentHandler) upcoming(c *gin.Context) {
	userID, _ := middleware.GetAuthenticatedUserID(c)

	payments, err := h.payments.Upcoming(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list upcoming payments"))
		return
	}

	payloads := newPaymentPayloads(payments)
	c.JSON(http.StatusOK, PaymentListResponse{Payments: payloads, Total: len(payloads)})
}

func (h *PaymentHandler) receipt(c *gin.Context) {
	payment, err := h.payments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, paymentErrorCases, http.StatusInternalServerError, "failed to load payment")
		return
	}
	if !canAccessRecord(c, payment.UserID) {
		c.JSON(http.StatusForbidden, NewErrorResponse(c, "insufficient permissions"))
		return
	}

	respondJSONDownload(c, fmt.Sprintf("payment-receipt-%s.json", payment.ID), newPaymentPayload(*payment))
}
