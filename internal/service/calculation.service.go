package service

import (
	"context"

	"clarifi/internal/domain"
	"clarifi/internal/logger"
	"clarifi/internal/params"
	"clarifi/internal/rules"
)

const (
	defaultSIPReturn  = 12.0
	defaultGoalReturn = 10.0
	defaultGoalYears  = 5
)

// CalculationService bridges free-text parameters to the rules engine.
// A calculation that cannot be parameterized is skipped, never guessed:
// the only defaults applied are assumption fields the result surfaces
// back to the user (expected return rates, goal horizon).
type CalculationService interface {
	RunCalculations(ctx context.Context, message string, intent domain.QueryIntent, snapshot *domain.FinancialSnapshot) []domain.Calculation
}

type calculationServiceHandler struct{}

func NewCalculationService() CalculationService {
	return calculationServiceHandler{}
}

func (h calculationServiceHandler) RunCalculations(ctx context.Context, message string, intent domain.QueryIntent, snapshot *domain.FinancialSnapshot) []domain.Calculation {
	if !intent.RequiresCalculation {
		return nil
	}
	log := logger.FromContext(ctx)

	switch intent.CalculationType {
	case domain.CalculationEMI:
		p := params.ExtractLoanParams(message)
		if p == nil || p.Principal == nil || p.AnnualRate == nil || p.TenureMonths == nil {
			log.Infow("calculation skipped: incomplete loan parameters",
				"calculation", domain.CalculationEMI)
			return nil
		}
		result := rules.CalculateEMI(*p.Principal, *p.AnnualRate, *p.TenureMonths)

		calcs := []domain.Calculation{result}
		if snapshot != nil && snapshot.MonthlyIncome.InexactFloat64() > 0 {
			calcs = append(calcs, rules.AnalyzeLoanAffordability(
				snapshot.MonthlyIncome.InexactFloat64(), 0, result.EMI))
		}
		return calcs

	case domain.CalculationSIP:
		p := params.ExtractSIPParams(message)
		if p == nil || p.Monthly == nil || p.Years == nil {
			log.Infow("calculation skipped: incomplete sip parameters",
				"calculation", domain.CalculationSIP)
			return nil
		}
		rate := defaultSIPReturn
		if p.AnnualRate != nil {
			rate = *p.AnnualRate
		}
		return []domain.Calculation{rules.CalculateSIPReturns(*p.Monthly, rate, *p.Years)}

	case domain.CalculationGoal:
		p := params.ExtractGoalParams(message)
		if p == nil || p.Target == nil {
			log.Infow("calculation skipped: no goal target found",
				"calculation", domain.CalculationGoal)
			return nil
		}
		years := defaultGoalYears
		if p.Years != nil {
			years = *p.Years
		}

		currentSavings := 0.0
		monthlyContribution := 0.0
		if snapshot != nil {
			currentSavings = snapshot.TotalInvestments.InexactFloat64()
			monthlyContribution = snapshot.MonthlySavings.InexactFloat64()
		}

		return []domain.Calculation{rules.CalculateGoalFeasibility(
			*p.Target, currentSavings, monthlyContribution, float64(years), defaultGoalReturn)}
	}

	return nil
}
