package rules

import (
	"fmt"
	"math"

	"clarifi/internal/domain"
	"clarifi/internal/util"
)

type LifeInsuranceResult struct {
	AnnualIncome     float64
	ReplacementYears int
	CalculatedNeed   float64
	RecommendedCover float64
	OutstandingLoans float64
	ExistingSavings  float64
	Dependents       int
}

func (r LifeInsuranceResult) Kind() domain.CalculationKind { return domain.CalculationLifeInsurance }

func (r LifeInsuranceResult) Fields() []domain.CalculationField {
	return []domain.CalculationField{
		{Label: "Recommended Cover", Value: util.FormatINR(r.RecommendedCover)},
		{Label: "Calculated Need", Value: util.FormatINR(r.CalculatedNeed)},
		{Label: "Income Replacement", Value: fmt.Sprintf("%d years", r.ReplacementYears)},
		{Label: "Outstanding Loans", Value: util.FormatINR(r.OutstandingLoans)},
	}
}

// CalculateLifeInsuranceNeed uses a human-life-value approach: 70% of
// income replaced until the youngest dependent is independent, plus
// liabilities, less existing savings, floored at 10x annual income.
func CalculateLifeInsuranceNeed(annualIncome, outstandingLoans, existingSavings float64, dependents, yearsUntilIndependent int) LifeInsuranceResult {
	incomeReplacement := annualIncome * float64(yearsUntilIndependent) * 0.7
	netNeed := incomeReplacement + outstandingLoans - existingSavings
	minimumCover := math.Max(netNeed, annualIncome*10)

	return LifeInsuranceResult{
		AnnualIncome:     annualIncome,
		ReplacementYears: yearsUntilIndependent,
		CalculatedNeed:   round2(netNeed),
		RecommendedCover: round2(minimumCover),
		OutstandingLoans: outstandingLoans,
		ExistingSavings:  existingSavings,
		Dependents:       dependents,
	}
}

type HealthInsuranceResult struct {
	RecommendedCoverage float64
	BaseCoverage        float64
	FamilyMembers       int
	CityTier            int
	AgeGroup            string
}

func (r HealthInsuranceResult) Kind() domain.CalculationKind {
	return domain.CalculationHealthInsurance
}

func (r HealthInsuranceResult) Fields() []domain.CalculationField {
	return []domain.CalculationField{
		{Label: "Recommended Coverage", Value: util.FormatINR(r.RecommendedCoverage)},
		{Label: "Base Coverage", Value: util.FormatINR(r.BaseCoverage)},
		{Label: "Family Members", Value: fmt.Sprintf("%d", r.FamilyMembers)},
		{Label: "Age Group", Value: r.AgeGroup},
	}
}

var baseCoverageByTier = map[int]float64{
	1: 1000000, // metro
	2: 750000,
	3: 500000,
}

// CalculateHealthInsuranceNeed scales a tier-based floor by family size
// and age, rounded to the nearest ten thousand.
func CalculateHealthInsuranceNeed(age, familyMembers, cityTier int) HealthInsuranceResult {
	base, ok := baseCoverageByTier[cityTier]
	if !ok {
		base = 750000
	}

	familyMultiplier := 1 + float64(familyMembers-1)*0.2

	ageMultiplier := 1.0
	ageGroup := "young adult"
	if age > 50 {
		ageMultiplier = 1.5
		ageGroup = "senior"
	} else if age > 40 {
		ageMultiplier = 1.2
		ageGroup = "adult"
	}

	recommended := base * familyMultiplier * ageMultiplier
	recommended = math.Round(recommended/10000) * 10000

	return HealthInsuranceResult{
		RecommendedCoverage: recommended,
		BaseCoverage:        base,
		FamilyMembers:       familyMembers,
		CityTier:            cityTier,
		AgeGroup:            ageGroup,
	}
}
