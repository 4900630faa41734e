package usecase

import "github.com/brightshield/insurance-portal/internal/core/domain"

// Premium calculation constants. These mirror the legacy rating table and
// must not change without an actuarial review: issued quotes are compared
// against recomputed premiums on update.
const (
	basePremiumAuto    int64 = 800
	basePremiumHome    int64 = 1200
	basePremiumLife    int64 = 600
	basePremiumHealth  int64 = 400
	basePremiumDefault int64 = 500

	oldVehicleSurcharge   int64 = 200
	highMileageSurcharge  int64 = 150
	oldHomeSurcharge      int64 = 300
	largeHomeSurcharge    int64 = 400
	deductibleDiscount    int64 = 100
	coverageSurchargeUnit int64 = 50

	oldVehicleYearCutoff   = 2010
	highMileageCutoff      = 100000
	oldHomeYearCutoff      = 1990
	largeHomeSqftCutoff    = 3000
	coverageSurchargeFloor = 100000
	deductibleCutoff       = 1000

	minimumPremium int64 = 200
)

// CalculatePremium rates a quote request. Pure and deterministic: identical
// input always yields an identical premium, and the result is never below
// the minimum premium.
func CalculatePremium(req domain.QuoteRequest) int64 {
	var premium int64

	switch req.Type {
	case domain.InsuranceAuto:
		premium = basePremiumAuto
		if req.VehicleInfo != nil {
			if req.VehicleInfo.Year < oldVehicleYearCutoff {
				premium += oldVehicleSurcharge
			}
			if req.VehicleInfo.Mileage > highMileageCutoff {
				premium += highMileageSurcharge
			}
		}
	case domain.InsuranceHome:
		premium = basePremiumHome
		if req.HomeInfo != nil {
			if req.HomeInfo.YearBuilt < oldHomeYearCutoff {
				premium += oldHomeSurcharge
			}
			if req.HomeInfo.SquareFootage > largeHomeSqftCutoff {
				premium += largeHomeSurcharge
			}
		}
	case domain.InsuranceLife:
		premium = basePremiumLife
	case domain.InsuranceHealth:
		premium = basePremiumHealth
	default:
		premium = basePremiumDefault
	}

	if req.CoverageDetails.CoverageAmount > coverageSurchargeFloor {
		premium += (req.CoverageDetails.CoverageAmount / coverageSurchargeFloor) * coverageSurchargeUnit
	}

	if req.CoverageDetails.Deductible > deductibleCutoff {
		premium -= deductibleDiscount
	}

	if premium < minimumPremium {
		premium = minimumPremium
	}
	return premium
}
