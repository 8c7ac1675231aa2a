package rules

import (
	"fmt"
	"math"

	"clarifi/internal/domain"
	"clarifi/internal/util"
)

type AffordabilityStatus string

const (
	AffordabilityAffordable AffordabilityStatus = "affordable"
	AffordabilityManageable AffordabilityStatus = "manageable"
	AffordabilityRisky      AffordabilityStatus = "risky"
)

type LoanAffordabilityResult struct {
	MonthlyIncome     float64
	ExistingEMIs      float64
	ProposedEMI       float64
	TotalEMI          float64
	EMIToIncomeRatio  float64
	Status            AffordabilityStatus
	Message           string
	MaxRecommendedEMI float64
}

func (r LoanAffordabilityResult) Kind() domain.CalculationKind {
	return domain.CalculationAffordability
}

func (r LoanAffordabilityResult) Fields() []domain.CalculationField {
	return []domain.CalculationField{
		{Label: "Total EMI", Value: util.FormatINR(r.TotalEMI)},
		{Label: "EMI to Income Ratio", Value: fmt.Sprintf("%.1f%%", r.EMIToIncomeRatio)},
		{Label: "Status", Value: string(r.Status)},
		{Label: "Max Recommended EMI", Value: util.FormatINR(r.MaxRecommendedEMI)},
		{Label: "Assessment", Value: r.Message},
	}
}

// AnalyzeLoanAffordability applies the 40/50 percent EMI-to-income
// thresholds. Non-positive income pins the ratio at 100 (risky).
func AnalyzeLoanAffordability(monthlyIncome, existingEMIs, proposedEMI float64) LoanAffordabilityResult {
	totalEMI := existingEMIs + proposedEMI
	ratio := 100.0
	if monthlyIncome > 0 {
		ratio = (totalEMI / monthlyIncome) * 100
	}

	result := LoanAffordabilityResult{
		MonthlyIncome:     monthlyIncome,
		ExistingEMIs:      existingEMIs,
		ProposedEMI:       proposedEMI,
		TotalEMI:          totalEMI,
		EMIToIncomeRatio:  round1(ratio),
		MaxRecommendedEMI: round2(monthlyIncome*0.5 - existingEMIs),
	}

	switch {
	case ratio <= 40:
		result.Status = AffordabilityAffordable
		result.Message = "This loan is affordable and within safe limits"
	case ratio <= 50:
		result.Status = AffordabilityManageable
		result.Message = "This loan is manageable but leaves little room for savings"
	default:
		result.Status = AffordabilityRisky
		result.Message = "This loan may strain your finances. Consider reducing the loan amount or tenure"
	}
	return result
}

type PrepaymentResult struct {
	PrepaymentAmount        float64
	InterestSaved           float64
	NewOutstanding          float64
	OriginalRemainingMonths int
	NewRemainingMonths      int
	MonthsReduced           int
	Recommendation          string
}

func (r PrepaymentResult) Kind() domain.CalculationKind { return domain.CalculationPrepayment }

func (r PrepaymentResult) Fields() []domain.CalculationField {
	return []domain.CalculationField{
		{Label: "Prepayment Amount", Value: util.FormatINR(r.PrepaymentAmount)},
		{Label: "Interest Saved", Value: util.FormatINR(r.InterestSaved)},
		{Label: "New Outstanding", Value: util.FormatINR(r.NewOutstanding)},
		{Label: "Months Reduced", Value: fmt.Sprintf("%d", r.MonthsReduced)},
		{Label: "Recommendation", Value: r.Recommendation},
	}
}

// CalculatePrepaymentBenefit approximates interest saved by a lump-sum
// prepayment and re-solves the tenure at the unchanged EMI. The solve is
// the inverse amortization formula n = ln(EMI/(EMI - B*r))/ln(1+r); when
// the EMI can no longer amortize the balance in finite time the tenure
// clamps to the original remaining months.
func CalculatePrepaymentBenefit(outstanding, emi, annualRate, prepaymentAmount float64, remainingMonths int) PrepaymentResult {
	monthlyRate := annualRate / (12 * 100)

	interestSaved := prepaymentAmount * monthlyRate * float64(remainingMonths) / 2
	newOutstanding := outstanding - prepaymentAmount

	newTenure := remainingMonths
	if monthlyRate > 0 && emi > newOutstanding*monthlyRate {
		solved := math.Log(emi/(emi-newOutstanding*monthlyRate)) / math.Log(1+monthlyRate)
		if solved < float64(remainingMonths) {
			newTenure = int(solved)
		}
	}

	recommendation := "Consider other investment options"
	if interestSaved > 0 {
		recommendation = "Prepayment is beneficial"
	}

	return PrepaymentResult{
		PrepaymentAmount:        prepaymentAmount,
		InterestSaved:           round2(interestSaved),
		NewOutstanding:          round2(newOutstanding),
		OriginalRemainingMonths: remainingMonths,
		NewRemainingMonths:      newTenure,
		MonthsReduced:           remainingMonths - newTenure,
		Recommendation:          recommendation,
	}
}
