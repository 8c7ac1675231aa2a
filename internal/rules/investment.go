package rules

import (
	"fmt"
	"math"

	"clarifi/internal/domain"
	"clarifi/internal/util"
)

type SIPResult struct {
	MonthlyInvestment float64
	TotalInvested     float64
	FutureValue       float64
	TotalReturns      float64
	AbsoluteReturnPct float64
	AssumedAnnualRate float64
	DurationYears     int
}

func (r SIPResult) Kind() domain.CalculationKind { return domain.CalculationSIP }

func (r SIPResult) Fields() []domain.CalculationField {
	return []domain.CalculationField{
		{Label: "Monthly Investment", Value: util.FormatINR(r.MonthlyInvestment)},
		{Label: "Total Invested", Value: util.FormatINR(r.TotalInvested)},
		{Label: "Projected Value", Value: util.FormatINR(r.FutureValue)},
		{Label: "Projected Returns", Value: util.FormatINR(r.TotalReturns)},
		{Label: "Assumed Return", Value: fmt.Sprintf("%.1f%% p.a.", r.AssumedAnnualRate)},
		{Label: "Duration", Value: fmt.Sprintf("%d years", r.DurationYears)},
	}
}

// CalculateSIPReturns projects a monthly contribution with the
// annuity-due formula FV = m*(((1+r)^n - 1)/r)*(1+r).
func CalculateSIPReturns(monthlyInvestment, annualRate float64, years int) SIPResult {
	months := years * 12
	monthlyRate := annualRate / (12 * 100)

	var futureValue float64
	if monthlyRate > 0 {
		futureValue = monthlyInvestment *
			((math.Pow(1+monthlyRate, float64(months)) - 1) / monthlyRate) *
			(1 + monthlyRate)
	} else {
		futureValue = monthlyInvestment * float64(months)
	}

	totalInvested := monthlyInvestment * float64(months)
	totalReturns := futureValue - totalInvested

	absolutePct := 0.0
	if totalInvested > 0 {
		absolutePct = round2((totalReturns / totalInvested) * 100)
	}

	return SIPResult{
		MonthlyInvestment: monthlyInvestment,
		TotalInvested:     round2(totalInvested),
		FutureValue:       round2(futureValue),
		TotalReturns:      round2(totalReturns),
		AbsoluteReturnPct: absolutePct,
		AssumedAnnualRate: annualRate,
		DurationYears:     years,
	}
}

type CompoundInterestResult struct {
	Principal       float64
	FinalAmount     float64
	TotalInterest   float64
	TotalGrowthRate float64
	CAGR            float64
}

func (r CompoundInterestResult) Kind() domain.CalculationKind {
	return domain.CalculationCompoundInterest
}

func (r CompoundInterestResult) Fields() []domain.CalculationField {
	return []domain.CalculationField{
		{Label: "Principal", Value: util.FormatINR(r.Principal)},
		{Label: "Final Amount", Value: util.FormatINR(r.FinalAmount)},
		{Label: "Total Interest", Value: util.FormatINR(r.TotalInterest)},
		{Label: "Total Growth", Value: fmt.Sprintf("%.2f%%", r.TotalGrowthRate)},
	}
}

// CalculateCompoundInterest computes FV = P*(1+r/k)^(k*t).
func CalculateCompoundInterest(principal, annualRate float64, years, compoundsPerYear int) CompoundInterestResult {
	if principal <= 0 || compoundsPerYear <= 0 {
		return CompoundInterestResult{Principal: principal, CAGR: annualRate}
	}

	rate := annualRate / 100
	n := float64(compoundsPerYear)
	t := float64(years)

	finalAmount := principal * math.Pow(1+rate/n, n*t)
	totalInterest := finalAmount - principal
	totalGrowthRate := ((finalAmount / principal) - 1) * 100

	return CompoundInterestResult{
		Principal:       principal,
		FinalAmount:     round2(finalAmount),
		TotalInterest:   round2(totalInterest),
		TotalGrowthRate: round2(totalGrowthRate),
		CAGR:            annualRate,
	}
}

type AllocationStatus string

const (
	AllocationBalanced     AllocationStatus = "balanced"
	AllocationAggressive   AllocationStatus = "aggressive"
	AllocationConservative AllocationStatus = "conservative"
)

type PortfolioAllocationResult struct {
	EquityPct         float64
	DebtPct           float64
	GoldPct           float64
	RecommendedEquity float64
	RecommendedDebt   float64
	RecommendedGold   float64
	EquityDeviation   float64
	Status            AllocationStatus
	Message           string
}

// EvaluatePortfolioAllocation scores an allocation against the
// 100-minus-age equity rule, with equity clamped to [20, 80].
func EvaluatePortfolioAllocation(equityPct, debtPct, goldPct float64, age int) PortfolioAllocationResult {
	recommendedEquity := math.Max(20, math.Min(80, float64(100-age)))
	recommendedGold := 10.0
	recommendedDebt := 100 - recommendedEquity - recommendedGold

	deviation := equityPct - recommendedEquity

	result := PortfolioAllocationResult{
		EquityPct:         equityPct,
		DebtPct:           debtPct,
		GoldPct:           goldPct,
		RecommendedEquity: recommendedEquity,
		RecommendedDebt:   recommendedDebt,
		RecommendedGold:   recommendedGold,
		EquityDeviation:   round1(deviation),
	}

	switch {
	case math.Abs(deviation) <= 10:
		result.Status = AllocationBalanced
		result.Message = "Portfolio allocation is appropriate for your age"
	case deviation > 10:
		result.Status = AllocationAggressive
		result.Message = fmt.Sprintf("Portfolio is more aggressive than typical for age %d", age)
	default:
		result.Status = AllocationConservative
		result.Message = fmt.Sprintf("Portfolio is more conservative than typical for age %d", age)
	}
	return result
}
