package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	memoryrepo "github.com/brightshield/insurance-portal/internal/repository/memory"
)

func newContentServiceForTest(t *testing.T) *ContentService {
	t.Helper()

	store := memoryrepo.NewStore()
	if err := store.Seed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), func(string) (string, error) {
		return "hashed", nil
	}); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return NewContentService(store.Content(), zaptest.NewLogger(t))
}

func TestContentServiceServesSeededContent(t *testing.T) {
	content := newContentServiceForTest(t)
	ctx := context.Background()

	posts, err := content.Posts(ctx)
	if err != nil {
		t.Fatalf("posts: %v", err)
	}
	if len(posts) == 0 {
		t.Fatal("expected seeded blog posts")
	}

	post, err := content.Post(ctx, posts[0].ID)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if post.Body == "" {
		t.Fatal("single post lookup must include the body")
	}

	faqs, err := content.FAQs(ctx)
	if err != nil {
		t.Fatalf("faqs: %v", err)
	}
	if len(faqs) == 0 {
		t.Fatal("expected seeded faqs")
	}
}

func TestSubmitContactValidatesForm(t *testing.T) {
	content := newContentServiceForTest(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input ContactInput
	}{
		{name: "missing name", input: ContactInput{Email: "a@example.com", Body: "hello"}},
		{name: "missing email", input: ContactInput{Name: "Jamie", Body: "hello"}},
		{name: "malformed email", input: ContactInput{Name: "Jamie", Email: "nope", Body: "hello"}},
		{name: "missing body", input: ContactInput{Name: "Jamie", Email: "a@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := content.SubmitContact(ctx, tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	message, err := content.SubmitContact(ctx, ContactInput{
		Name:    "Jamie Rivera",
		Email:   "jamie@example.com",
		Subject: "Billing question",
		Body:    "When is my next payment due?",
	})
	if err != nil {
		t.Fatalf("submit contact: %v", err)
	}
	if message.ID == "" {
		t.Fatal("expected an assigned message id")
	}
	if message.SubmittedAt.IsZero() {
		t.Fatal("expected a submission timestamp")
	}
}
