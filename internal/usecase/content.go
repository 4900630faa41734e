package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/core/port"
)

// ContentService serves marketing articles and help-center content, and
// accepts contact-form submissions.
type ContentService struct {
	content port.ContentRepository
	logger  *zap.Logger
	now     func() time.Time
}

// NewContentService constructs a ContentService instance.
func NewContentService(content port.ContentRepository, logger *zap.Logger) *ContentService {
	return &ContentService{
		content: content,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock overrides the time source; used by tests.
func (s *ContentService) WithClock(now func() time.Time) *ContentService {
	s.now = now
	return s
}

// Posts returns all published blog posts.
func (s *ContentService) Posts(ctx context.Context) ([]domain.BlogPost, error) {
	return s.content.ListPosts(ctx)
}

// Post returns a single blog post by id.
func (s *ContentService) Post(ctx context.Context, id string) (*domain.BlogPost, error) {
	return s.content.GetPost(ctx, id)
}

// FAQs returns the help-center entries.
func (s *ContentService) FAQs(ctx context.Context) ([]domain.FAQ, error) {
	return s.content.ListFAQs(ctx)
}

// ContactInput carries the public contact form fields.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// SubmitContact validates and records a contact-form submission.
func (s *ContentService) SubmitContact(ctx context.Context, input ContactInput) (*domain.ContactMessage, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, fmt.Errorf("%w: message body is required", ErrInvalidInput)
	}

	msg := domain.ContactMessage{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Email:       email,
		Subject:     strings.TrimSpace(input.Subject),
		Body:        input.Body,
		SubmittedAt: s.now().UTC(),
	}

	if err := s.content.CreateContactMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}

	s.logger.Info("contact message received",
		zap.String("message_id", msg.ID),
		zap.String("subject", msg.Subject),
	)

	return &msg, nil
}
