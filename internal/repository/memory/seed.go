package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/brightshield/insurance-portal/internal/core/domain"
)

// SeedHasher hashes the demo passwords so seeded accounts can log in.
type SeedHasher func(password string) (string, error)

// Seed loads demo accounts and records into the store. The demo passwords
// match the legacy fixtures; only their hashes are stored.
func (s *Store) Seed(now time.Time, hash SeedHasher) error {
	customerHash, err := hash("password123")
	if err != nil {
		return err
	}
	agentHash, err := hash("agent123")
	if err != nil {
		return err
	}
	adminHash, err := hash("admin123")
	if err != nil {
		return err
	}

	customerID := uuid.NewString()
	agentID := uuid.NewString()
	adminID := uuid.NewString()

	customerDOB := time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC)
	agentDOB := time.Date(1980, 3, 22, 0, 0, 0, 0, time.UTC)
	adminDOB := time.Date(1975, 11, 8, 0, 0, 0, 0, time.UTC)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = []domain.User{
		{
			ID: customerID, Email: "john.doe@email.com", PasswordHash: customerHash,
			FirstName: "John", LastName: "Doe", Phone: "(555) 123-4567",
			Role: domain.RoleCustomer, DateOfBirth: &customerDOB,
			Address:   domain.Address{Street: "123 Main St", City: "Anytown", State: "CA", ZipCode: "12345", Country: "USA"},
			CreatedAt: now.AddDate(0, -7, 0),
		},
		{
			ID: agentID, Email: "agent@insurance.com", PasswordHash: agentHash,
			FirstName: "Sarah", LastName: "Wilson", Phone: "(555) 987-6543",
			Role: domain.RoleAgent, DateOfBirth: &agentDOB,
			Address:   domain.Address{Street: "456 Business Ave", City: "Corporate City", State: "NY", ZipCode: "54321", Country: "USA"},
			CreatedAt: now.AddDate(-1, 0, 0),
		},
		{
			ID: adminID, Email: "admin@insurance.com", PasswordHash: adminHash,
			FirstName: "Mike", LastName: "Johnson", Phone: "(555) 456-7890",
			Role: domain.RoleAdmin, DateOfBirth: &adminDOB,
			Address:   domain.Address{Street: "789 Executive Blvd", City: "Admin City", State: "TX", ZipCode: "67890", Country: "USA"},
			CreatedAt: now.AddDate(-1, -6, 0),
		},
	}

	personal := domain.PersonalInfo{
		FirstName: "John", LastName: "Doe", Email: "john.doe@email.com",
		Phone: "(555) 123-4567", DateOfBirth: "1985-06-15", ZipCode: "12345",
	}

	quoteAutoID := uuid.NewString()
	quoteHomeID := uuid.NewString()
	s.quotes = []domain.Quote{
		{
			ID: quoteAutoID, UserID: customerID, Type: domain.InsuranceAuto,
			PersonalInfo: personal,
			VehicleInfo:  &domain.VehicleInfo{Make: "Toyota", Model: "Camry", Year: 2020, Mileage: 25000, VIN: "1HGBH41JXMN109186"},
			CoverageDetails: domain.CoverageDetails{
				CoverageType: "Full Coverage", CoverageAmount: 100000, Deductible: 1000,
			},
			Premium: 800, Status: domain.QuoteStatusActive,
			CreatedAt: now.AddDate(0, -1, 0), ExpiresAt: now.AddDate(0, 0, 30), ValidUntil: now.AddDate(0, 0, 30),
		},
		{
			ID: quoteHomeID, UserID: customerID, Type: domain.InsuranceHome,
			PersonalInfo: personal,
			HomeInfo:     &domain.HomeInfo{Address: "123 Main St, Anytown CA", YearBuilt: 2005, SquareFootage: 1800, ConstructionType: "frame"},
			CoverageDetails: domain.CoverageDetails{
				CoverageType: "Standard", CoverageAmount: 250000, Deductible: 2500,
			},
			Premium: 1200, Status: domain.QuoteStatusActive,
			CreatedAt: now.AddDate(0, 0, -14), ExpiresAt: now.AddDate(0, 0, 16), ValidUntil: now.AddDate(0, 0, 16),
		},
	}

	policyID := uuid.NewString()
	s.policies = []domain.Policy{
		{
			ID: policyID, UserID: customerID, QuoteID: quoteAutoID,
			PolicyNumber: domain.NewPolicyNumber(now.AddDate(0, -6, 0)),
			Type:         domain.InsuranceAuto, Status: domain.PolicyStatusActive, Premium: 800,
			CoverageDetails: domain.CoverageDetails{CoverageType: "Full Coverage", CoverageAmount: 100000, Deductible: 1000},
			StartDate:       now.AddDate(0, -6, 0), EndDate: now.AddDate(0, 6, 0),
			NextPaymentDate: now.AddDate(0, 0, 12),
			Documents:       []domain.Document{},
		},
	}

	claimID := uuid.NewString()
	s.claims = []domain.Claim{
		{
			ID: claimID, UserID: customerID, PolicyID: policyID,
			ClaimNumber: domain.NewClaimNumber(now.AddDate(0, -1, 0)),
			Type:        "collision", Description: "Rear-end collision at low speed, bumper damage.",
			Amount: 2400, Status: domain.ClaimStatusProcessing,
			IncidentDate: now.AddDate(0, -1, -3), ReportedAt: now.AddDate(0, -1, 0),
			Attachments:  []domain.Attachment{},
			Messages: []domain.ClaimMessage{
				{ID: uuid.NewString(), SenderID: agentID, SenderName: "Sarah Wilson", Text: "We received your photos and are reviewing the estimate.", Timestamp: now.AddDate(0, 0, -20)},
			},
		},
	}

	paidAt := now.AddDate(0, -1, 0)
	s.payments = []domain.Payment{
		{
			ID: uuid.NewString(), UserID: customerID, PolicyID: policyID,
			Amount: 800, Status: domain.PaymentStatusCompleted,
			Method: domain.PaymentMethodCreditCard, PaidAt: &paidAt, DueDate: paidAt,
		},
		{
			ID: uuid.NewString(), UserID: customerID, PolicyID: policyID,
			Amount: 800, Status: domain.PaymentStatusPending,
			Method: domain.PaymentMethodCreditCard, DueDate: now.AddDate(0, 0, 12),
		},
	}

	s.posts = []domain.BlogPost{
		{
			ID: uuid.NewString(), Title: "Five Ways to Lower Your Auto Premium",
			Excerpt:  "Small changes that add up to real savings on your auto policy.",
			Body:     "Raising your deductible, bundling lines, and keeping mileage low all reduce what you pay...",
			Category: "auto", Author: "Sarah Wilson", PublishedAt: now.AddDate(0, -2, 0),
		},
		{
			ID: uuid.NewString(), Title: "What Homeowners Coverage Actually Covers",
			Excerpt:  "Dwelling, liability, and loss-of-use explained in plain language.",
			Body:     "A standard homeowners policy is split into coverage sections, each with its own limit...",
			Category: "home", Author: "Mike Johnson", PublishedAt: now.AddDate(0, -1, -10),
		},
		{
			ID: uuid.NewString(), Title: "Filing a Claim Without the Headache",
			Excerpt:  "Document early, report promptly, and keep every receipt.",
			Body:     "The first hours after an incident matter most. Photograph the damage before any cleanup...",
			Category: "claims", Author: "Sarah Wilson", PublishedAt: now.AddDate(0, 0, -7),
		},
	}

	s.faqs = []domain.FAQ{
		{ID: uuid.NewString(), Category: "billing", Question: "When is my premium due?", Answer: "Premiums are due monthly on the date shown on your policy's next payment date."},
		{ID: uuid.NewString(), Category: "billing", Question: "What payment methods do you accept?", Answer: "Credit card, bank transfer, and check."},
		{ID: uuid.NewString(), Category: "claims", Question: "How long does a claim take?", Answer: "Most claims move from pending to a decision within 10 business days."},
		{ID: uuid.NewString(), Category: "policies", Question: "Can I cancel my policy at any time?", Answer: "Yes. Cancellation takes effect immediately and does not change past payments."},
		{ID: uuid.NewString(), Category: "quotes", Question: "How long is a quote valid?", Answer: "Quotes are valid for 30 days from the day they are issued."},
	}

	return nil
}
