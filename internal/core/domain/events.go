package domain

import "time"

// UserRegisteredEvent is published when a new account completes registration.
type UserRegisteredEvent struct {
	EventID      string
	UserID       string
	Email        string
	Role         Role
	RegisteredAt time.Time
}

// QuoteSavedEvent is published when a wizard quote is persisted.
type QuoteSavedEvent struct {
	EventID   string
	QuoteID   string
	UserID    string
	Type      InsuranceType
	Premium   int64
	CreatedAt time.Time
}

// PolicyIssuedEvent is published when a policy is bound from a quote.
type PolicyIssuedEvent struct {
	EventID      string
	PolicyID     string
	UserID       string
	QuoteID      string
	PolicyNumber string
	Type         InsuranceType
	Premium      int64
	IssuedAt     time.Time
}

// PolicyRenewedEvent is published on policy renewal.
type PolicyRenewedEvent struct {
	EventID      string
	PolicyID     string
	UserID       string
	PolicyNumber string
	NewEndDate   time.Time
	RenewedAt    time.Time
}

// PolicyCancelledEvent is published on policy cancellation.
type PolicyCancelledEvent struct {
	EventID      string
	PolicyID     string
	UserID       string
	PolicyNumber string
	CancelledAt  time.Time
}

// ClaimFiledEvent is published when a customer files a claim.
type ClaimFiledEvent struct {
	EventID     string
	ClaimID     string
	UserID      string
	PolicyID    string
	ClaimNumber string
	Amount      int64
	FiledAt     time.Time
}

// ClaimStatusChangedEvent is published when staff move a claim between states.
type ClaimStatusChangedEvent struct {
	EventID   string
	ClaimID   string
	UserID    string
	OldStatus ClaimStatus
	NewStatus ClaimStatus
	ChangedAt time.Time
}

// PaymentCompletedEvent is published when a payment settles.
type PaymentCompletedEvent struct {
	EventID   string
	PaymentID string
	UserID    string
	PolicyID  string
	Amount    int64
	Method    PaymentMethod
	PaidAt    time.Time
}
