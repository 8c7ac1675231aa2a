package rules

import (
	"fmt"
	"math"

	"clarifi/internal/domain"
	"clarifi/internal/util"
)

type EMIResult struct {
	EMI           float64
	Principal     float64
	AnnualRate    float64
	TenureMonths  int
	TotalInterest float64
	TotalPayment  float64
}

func (r EMIResult) Kind() domain.CalculationKind { return domain.CalculationEMI }

func (r EMIResult) Fields() []domain.CalculationField {
	return []domain.CalculationField{
		{Label: "Monthly EMI", Value: util.FormatINR(r.EMI)},
		{Label: "Principal", Value: util.FormatINR(r.Principal)},
		{Label: "Interest Rate", Value: fmt.Sprintf("%.2f%% p.a.", r.AnnualRate)},
		{Label: "Tenure", Value: fmt.Sprintf("%d months", r.TenureMonths)},
		{Label: "Total Interest", Value: util.FormatINR(r.TotalInterest)},
		{Label: "Total Payment", Value: util.FormatINR(r.TotalPayment)},
	}
}

// CalculateEMI computes the fixed installment that amortizes a loan:
// EMI = P*r*(1+r)^n / ((1+r)^n - 1), with r the monthly rate.
func CalculateEMI(principal, annualRate float64, tenureMonths int) EMIResult {
	result := EMIResult{
		Principal:    principal,
		AnnualRate:   annualRate,
		TenureMonths: tenureMonths,
	}
	if principal <= 0 || tenureMonths <= 0 {
		return result
	}

	if annualRate == 0 {
		result.EMI = round2(principal / float64(tenureMonths))
		result.TotalInterest = 0
		result.TotalPayment = round2(principal)
		return result
	}

	monthlyRate := annualRate / (12 * 100)
	growth := math.Pow(1+monthlyRate, float64(tenureMonths))
	emi := principal * monthlyRate * growth / (growth - 1)

	result.EMI = round2(emi)
	result.TotalPayment = round2(emi * float64(tenureMonths))
	result.TotalInterest = round2(emi*float64(tenureMonths) - principal)
	return result
}
