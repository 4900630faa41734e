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

// QuoteHandler exposes quote CRUD and premium rating endpoints.
type QuoteHandler struct {
	quotes *usecase.QuoteService
}

// NewQuoteHandler constructs QuoteHandler.
func NewQuoteHandler(quotes *usecase.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// RegisterRoutes binds quote routes. The rate endpoint is public; everything
// else requires authentication.
func (h *QuoteHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.POST("/quotes/rate", h.rate)

	authed.GET("/quotes", h.list)
	authed.POST("/quotes", h.create)
	authed.GET("/quotes/:id", h.get)
	authed.PUT("/quotes/:id", h.update)
	authed.DELETE("/quotes/:id", h.remove)
	authed.GET("/quotes/:id/download", h.download)
}

var quoteErrorCases = []ErrorCase{
	{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "quote not found"},
	{Err: usecase.ErrUnknownInsuranceType, Status: http.StatusBadRequest, Message: "unknown insurance type"},
	{Err: usecase.ErrInvalidInput, Status: http.StatusBadRequest, Message: "quote failed validation"},
}

func (h *QuoteHandler) rate(c *gin.Context) {
	var req QuoteRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid quote payload"))
		return
	}

	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "unknown insurance type"))
		return
	}

	c.JSON(http.StatusOK, RateResponse{Premium: h.quotes.Rate(toQuoteRequest(req))})
}

func (h *QuoteHandler) list(c *gin.Context) {
	userID, _ := middleware.GetAuthenticatedUserID(c)

	var (
		quotes []domain.Quote
		err    error
	)
	if isStaff(c) {
		quotes, err = h.quotes.List(c.Request.Context())
	} else {
		quotes, err = h.quotes.ListByUser(c.Request.Context(), userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list quotes"))
		return
	}

	quotes = usecase.FilterQuotes(quotes, c.Query("status"), c.Query("type"))
	payloads := newQuotePayloads(quotes)

	c.JSON(http.StatusOK, QuoteListResponse{Quotes: payloads, Total: len(payloads)})
}

func (h *QuoteHandler) create(c *gin.Context) {
	userID, _ := middleware.GetAuthenticatedUserID(c)

	var req QuoteRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid quote payload"))
		return
	}

	quote, err := h.quotes.Create(c.Request.Context(), userID, toQuoteRequest(req))
	if err != nil {
		RespondWithMappedError(c, err, quoteErrorCases, http.StatusInternalServerError, "failed to create quote")
		return
	}

	c.JSON(http.StatusCreated, newQuotePayload(*quote))
}

func (h *QuoteHandler) get(c *gin.Context) {
	quote, err := h.quotes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, quoteErrorCases, http.StatusInternalServerError, "failed to load quote")
		return
	}

	if !canAccessRecord(c, quote.UserID) {
		c.JSON(http.StatusForbidden, NewErrorResponse(c, "insufficient permissions"))
		return
	}

	c.JSON(http.StatusOK, newQuotePayload(*quote))
}

func (h *QuoteHandler) update(c *gin.Context) {
	existing, err := h.quotes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, quoteErrorCases, http.StatusInternalServerError, "failed to load quote")
		return
	}
	if !canAccessRecord(c, existing.UserID) {
		c.JSON(http.StatusForbidden, NewErrorResponse(c, "insufficient permissions"))
		return
	}

	var req QuoteRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid quote payload"))
		return
	}

	quote, err := h.quotes.Update(c.Request.Context(), existing.ID, toQuoteRequest(req))
	if err != nil {
		RespondWithMappedError(c, err, quoteErrorCases, http.StatusInternalServerError, "failed to update quote")
		return
	}

	c.JSON(http.StatusOK, newQuotePayload(*quote))
}

func (h *QuoteHandler) remove(c *gin.Context) {
	existing, err := h.quotes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, quoteErrorCases, http.StatusInternalServerError, "failed to load quote")
		return
	}
	if !canAccessRecord(c, existing.UserID) {
		c.JSON(http.StatusForbidden, NewErrorResponse(c, "insufficient permissions"))
		return
	}

	if err := h.quotes.Delete(c.Request.Context(), existing.ID); err != nil {
		RespondWithMappedError(c, err, quoteErrorCases, http.StatusInternalServerError, "failed to delete quote")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *QuoteHandler) download(c *gin.Context) {
	quote, err := h.quotes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, quoteErrorCases, http.StatusInternalServerError, "failed to load quote")
		return
	}
	if !canAccessRecord(c, quote.UserID) {
		c.JSON(http.StatusForbidden, NewErrorResponse(c, "insufficient permissions"))
		return
	}

	respondJSONDownload(c, fmt.Sprintf("quote-%s.json", quote.ID), newQuotePayload(*quote))
}
