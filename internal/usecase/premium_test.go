package usecase

import (
	"testing"

	"github.com/brightshield/insurance-portal/internal/core/domain"
)

func TestCalculatePremium(t *testing.T) {
	tests := []struct {
		name string
		req  domain.QuoteRequest
		want int64
	}{
		{
			name: "auto base rate",
			req: domain.QuoteRequest{
				Type:            domain.InsuranceAuto,
				VehicleInfo:     &domain.VehicleInfo{Make: "Toyota", Model: "Camry", Year: 2020, Mileage: 30000},
				CoverageDetails: domain.CoverageDetails{CoverageAmount: 50000, Deductible: 500},
			},
			want: 800,
		},
		{
			name: "auto old high mileage vehicle",
			req: domain.QuoteRequest{
				Type:            domain.InsuranceAuto,
				VehicleInfo:     &domain.VehicleInfo{Year: 2005, Mileage: 150000},
				CoverageDetails: domain.CoverageDetails{CoverageAmount: 50000},
			},
			want: 800 + 200 + 150,
		},
		{
			name: "auto without vehicle details skips surcharges",
			req: domain.QuoteRequest{
				Type:            domain.InsuranceAuto,
				CoverageDetails: domain.CoverageDetails{CoverageAmount: 50000},
			},
			want: 800,
		},
		{
			name: "home old large house",
			req: domain.QuoteRequest{
				Type:            domain.InsuranceHome,
				HomeInfo:        &domain.HomeInfo{YearBuilt: 1975, SquareFootage: 3500},
				CoverageDetails: domain.CoverageDetails{CoverageAmount: 100000},
			},
			want: 1200 + 300 + 400,
		},
		{
			name: "home with every adjustment combined",
			req: domain.QuoteRequest{
				Type:            domain.InsuranceHome,
				HomeInfo:        &domain.HomeInfo{YearBuilt: 1985, SquareFootage: 3500},
				CoverageDetails: domain.CoverageDetails{CoverageAmount: 250000, Deductible: 2500},
			},
			want: 1900,
		},
		{
			name: "life base rate",
			req: domain.QuoteRequest{
				Type:            domain.InsuranceLife,
				CoverageDetails: domain.CoverageDetails{CoverageAmount: 50000},
			},
			want: 600,
		},
		{
			name: "health base rate",
			req: domain.QuoteRequest{
				Type:            domain.InsuranceHealth,
				CoverageDetails: domain.CoverageDetails{CoverageAmount: 50000},
			},
			want: 400,
		},
		{
			name: "unknown type falls back to default base",
			req: domain.QuoteRequest{
				Type:            domain.InsuranceType("pet"),
				CoverageDetails: domain.CoverageDetails{CoverageAmount: 50000},
			},
			want: 500,
		},
		{
			name: "coverage surcharge scales per full 100k",
			req: domain.QuoteRequest{
				Type:            domain.InsuranceLife,
				CoverageDetails: domain.CoverageDetails{CoverageAmount: 250000},
			},
			want: 600 + 2*50,
		},
		{
			name: "coverage at exactly 100k adds no surcharge",
			req: domain.QuoteRequest{
				Type:            domain.InsuranceLife,
				CoverageDetails: domain.CoverageDetails{CoverageAmount: 100000},
			},
			want: 600,
		},
		{
			name: "high deductible discount",
			req: domain.QuoteRequest{
				Type:            domain.InsuranceHealth,
				CoverageDetails: domain.CoverageDetails{CoverageAmount: 50000, Deductible: 2000},
			},
			want: 400 - 100,
		},
		{
			name: "default base with discount stays above floor",
			req: domain.QuoteRequest{
				Type:            domain.InsuranceType("pet"),
				CoverageDetails: domain.CoverageDetails{CoverageAmount: 1000, Deductible: 5000},
			},
			want: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculatePremium(tt.req); got != tt.want {
				t.Fatalf("CalculatePremium() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculatePremiumIsDeterministic(t *testing.T) {
	req := domain.QuoteRequest{
		Type:            domain.InsuranceAuto,
		VehicleInfo:     &domain.VehicleInfo{Year: 2008, Mileage: 120000},
		CoverageDetails: domain.CoverageDetails{CoverageAmount: 300000, Deductible: 1500},
	}

	first := CalculatePremium(req)
	for i := 0; i < 10; i++ {
		if got := CalculatePremium(req); got != first {
			t.Fatalf("premium changed between calls: %d then %d", first, got)
		}
	}
	if first < 200 {
		t.Fatalf("premium %d below the 200 floor", first)
	}
}
