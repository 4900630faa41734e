package domain

import "time"

// PaymentStatus enumerates payment lifecycle states.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Valid reports whether the status is one of the enumerated values.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

// PaymentMethod enumerates the accepted payment instruments.
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheck        PaymentMethod = "check"
)

// Valid reports whether the method is one of the enumerated values.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodBankTransfer, PaymentMethodCheck:
		return true
	}
	return false
}

// Payment is either a scheduled obligation (pending, PaidAt nil) or a
// completed transaction (completed, PaidAt set).
type Payment struct {
	ID       string
	UserID   string
	PolicyID string
	Amount   int64
	Status   PaymentStatus
	Method   PaymentMethod
	PaidAt   *time.Time
	DueDate  time.Time
}

// PaymentStats aggregates a payment list for dashboard display.
type PaymentStats struct {
	TotalPaid int64
	Pending   int64
	Overdue   int64
}
