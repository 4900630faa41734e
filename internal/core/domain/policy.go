package domain

import "time"

// PolicyStatus enumerates policy lifecycle states.
type PolicyStatus string

const (
	PolicyStatusActive    PolicyStatus = "active"
	PolicyStatusPending   PolicyStatus = "pending"
	PolicyStatusExpired   PolicyStatus = "expired"
	PolicyStatusCancelled PolicyStatus = "cancelled"
)

// Valid reports whether the status is one of the enumerated values.
func (s PolicyStatus) Valid() bool {
	switch s {
	case PolicyStatusActive, PolicyStatusPending, PolicyStatusExpired, PolicyStatusCancelled:
		return true
	}
	return false
}

// Document is a file attached to a policy (metadata only; blob storage is
// outside this service).
type Document struct {
	ID         string
	Name       string
	URL        string
	UploadedAt time.Time
}

// Policy is a bound insurance contract derived from an accepted quote.
type Policy struct {
	ID              string
	UserID          string
	QuoteID         string
	PolicyNumber    string
	Type            InsuranceType
	Status          PolicyStatus
	Premium         int64
	CoverageDetails CoverageDetails
	StartDate       time.Time
	EndDate         time.Time
	NextPaymentDate time.Time
	Documents       []Document
}
