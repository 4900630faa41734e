package usecase

import (
	"strings"

	"github.com/brightshield/insurance-portal/internal/core/domain"
)

// List views accept a free-text search and a status/category filter. The
// filter values "" and "all" are sentinels that bypass filtering; the search
// is a case-insensitive substring match over the entity's visible fields.

func matchAll(filter string) bool {
	return filter == "" || strings.EqualFold(filter, "all")
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// FilterPolicies narrows a policy list by status and free-text search over
// policy number and product line.
func FilterPolicies(policies []domain.Policy, status, search string) []domain.Policy {
	out := make([]domain.Policy, 0, len(policies))
	for _, p := range policies {
		if !matchAll(status) && !strings.EqualFold(string(p.Status), status) {
			continue
		}
		if search != "" && !contains(p.PolicyNumber, search) && !contains(string(p.Type), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterClaims narrows a claim list by status and free-text search over claim
// number, type, and description.
func FilterClaims(claims []domain.Claim, status, search string) []domain.Claim {
	out := make([]domain.Claim, 0, len(claims))
	for _, c := range claims {
		if !matchAll(status) && !strings.EqualFold(string(c.Status), status) {
			continue
		}
		if search != "" && !contains(c.ClaimNumber, search) && !contains(c.Type, search) && !contains(c.Description, search) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// FilterPayments narrows a payment list by status.
func FilterPayments(payments []domain.Payment, status string) []domain.Payment {
	out := make([]domain.Payment, 0, len(payments))
	for _, p := range payments {
		if !matchAll(status) && !strings.EqualFold(string(p.Status), status) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterQuotes narrows a quote list by status and product line.
func FilterQuotes(quotes []domain.Quote, status, insType string) []domain.Quote {
	out := make([]domain.Quote, 0, len(quotes))
	for _, q := range quotes {
		if !matchAll(status) && !strings.EqualFold(string(q.Status), status) {
			continue
		}
		if !matchAll(insType) && !strings.EqualFold(string(q.Type), insType) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// FilterPosts narrows blog posts by category and free-text search over title
// and excerpt.
func FilterPosts(posts []domain.BlogPost, category, search string) []domain.BlogPost {
	out := make([]domain.BlogPost, 0, len(posts))
	for _, p := range posts {
		if !matchAll(category) && !strings.EqualFold(p.Category, category) {
			continue
		}
		if search != "" && !contains(p.Title, search) && !contains(p.Excerpt, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterFAQs narrows help-center entries by category and free-text search
// over question and answer.
func FilterFAQs(faqs []domain.FAQ, category, search string) []domain.FAQ {
	out := make([]domain.FAQ, 0, len(faqs))
	for _, f := range faqs {
		if !matchAll(category) && !strings.EqualFold(f.Category, category) {
			continue
		}
		if search != "" && !contains(f.Question, search) && !contains(f.Answer, search) {
			continue
		}
		out = append(out, f)
	}
	return out
}
