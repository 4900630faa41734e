package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightshield/insurance-portal/internal/repository"
	"github.com/brightshield/insurance-portal/internal/usecase"
)

// ContentHandler exposes public marketing and help-center endpoints.
type ContentHandler struct {
	content *usecase.ContentService
}

// NewContentHandler constructs ContentHandler.
func NewContentHandler(content *usecase.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// RegisterRoutes binds the public content routes.
func (h *ContentHandler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/blog", h.listPosts)
	public.GET("/blog/:id", h.getPost)
	public.GET("/faqs", h.listFAQs)
	public.POST("/contact", h.submitContact)
}

func (h *ContentHandler) listPosts(c *gin.Context) {
	posts, err := h.content.Posts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list posts"))
		return
	}

	posts = usecase.FilterPosts(posts, c.Query("category"), c.Query("search"))

	payloads := make([]BlogPostPayload, 0, len(posts))
	for _, post := range posts {
		payloads = append(payloads, newBlogPostPayload(post, false))
	}

	c.JSON(http.StatusOK, BlogPostListResponse{Posts: payloads, Total: len(payloads)})
}

func (h *ContentHandler) getPost(c *gin.Context) {
	post, err := h.content.Post(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "post not found"},
		}, http.StatusInternalServerError, "failed to load post")
		return
	}

	c.JSON(http.StatusOK, newBlogPostPayload(*post, true))
}

func (h *ContentHandler) listFAQs(c *gin.Context) {
	faqs, err := h.content.FAQs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list FAQs"))
		return
	}

	faqs = usecase.FilterFAQs(faqs, c.Query("category"), c.Query("search"))

	payloads := make([]FAQPayload, 0, len(faqs))
	for _, faq := range faqs {
		payloads = append(payloads, newFAQPayload(faq))
	}

	c.JSON(http.StatusOK, FAQListResponse{FAQs: payloads, Total: len(payloads)})
}

func (h *ContentHandler) submitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid contact payload"))
		return
	}

	msg, err := h.content.SubmitContact(c.Request.Context(), usecase.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Message,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidInput, Status: http.StatusBadRequest, Message: "contact form failed validation"},
		}, http.StatusInternalServerError, "failed to submit contact message")
		return
	}

	c.JSON(http.StatusCreated, ContactResponse{
		ID:      msg.ID,
		Message: "thanks for reaching out, we'll get back to you shortly",
	})
}
