package domain

import "time"

// InsuranceType enumerates the product lines the portal quotes.
type InsuranceType string

const (
	InsuranceAuto   InsuranceType = "auto"
	InsuranceHome   InsuranceType = "home"
	InsuranceLife   InsuranceType = "life"
	InsuranceHealth InsuranceType = "health"
)

// Valid reports whether the type is one of the enumerated product lines.
func (t InsuranceType) Valid() bool {
	switch t {
	case InsuranceAuto, InsuranceHome, InsuranceLife, InsuranceHealth:
		return true
	}
	return false
}

// QuoteStatus enumerates quote lifecycle states.
type QuoteStatus string

const (
	QuoteStatusDraft   QuoteStatus = "draft"
	QuoteStatusActive  QuoteStatus = "active"
	QuoteStatusExpired QuoteStatus = "expired"
)

// PersonalInfo is the applicant snapshot captured with a quote.
type PersonalInfo struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DateOfBirth string
	ZipCode     string
}

// VehicleInfo carries the auto-line attributes that drive surcharges.
type VehicleInfo struct {
	Make    string
	Model   string
	Year    int
	Mileage int
	VIN     string
}

// HomeInfo carries the home-line attributes that drive surcharges.
type HomeInfo struct {
	Address          string
	YearBuilt        int
	SquareFootage    int
	ConstructionType string
}

// CoverageDetails is the coverage/deductible selection common to all lines.
type CoverageDetails struct {
	CoverageType   string
	CoverageAmount int64
	Deductible     int64
}

// QuoteRequest is the input to the premium calculator and to quote creation.
// VehicleInfo and HomeInfo are consulted only for their respective lines.
type QuoteRequest struct {
	Type            InsuranceType
	PersonalInfo    PersonalInfo
	VehicleInfo     *VehicleInfo
	HomeInfo        *HomeInfo
	CoverageDetails CoverageDetails
}

// Quote is a non-binding premium estimate. UserID is empty until an
// authenticated user saves the quote.
type Quote struct {
	ID              string
	UserID          string
	Type            InsuranceType
	PersonalInfo    PersonalInfo
	VehicleInfo     *VehicleInfo
	HomeInfo        *HomeInfo
	CoverageDetails CoverageDetails
	Premium         int64
	Status          QuoteStatus
	CreatedAt       time.Time
	ExpiresAt       time.Time
	ValidUntil      time.Time
}
