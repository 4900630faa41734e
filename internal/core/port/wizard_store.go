package port

import (
	"context"
	"time"

	"github.com/brightshield/insurance-portal/internal/core/domain"
)

// WizardState enumerates the steps of the quote wizard.
type WizardState string

const (
	WizardStateTypeSelection WizardState = "type_selection"
	WizardStateDetails       WizardState = "details"
	WizardStateReview        WizardState = "review"
)

// WizardSession is the transient state of one quote-wizard run. Quote is nil
// until the details step has been submitted and a premium computed.
type WizardSession struct {
	ID              string
	UserID          string
	State           WizardState
	Type            domain.InsuranceType
	PersonalInfo    domain.PersonalInfo
	VehicleInfo     *domain.VehicleInfo
	HomeInfo        *domain.HomeInfo
	CoverageDetails domain.CoverageDetails
	Quote           *domain.Quote
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// WizardStore persists wizard sessions for the duration of a quoting flow.
type WizardStore interface {
	Put(ctx context.Context, session WizardSession, ttl time.Duration) error
	Get(ctx context.Context, id string) (*WizardSession, error)
	Delete(ctx context.Context, id string) error
}
