package domain

import (
	"github.com/shopspring/decimal"
)

type RiskProfile string

const (
	RiskProfileConservative RiskProfile = "conservative"
	RiskProfileModerate     RiskProfile = "moderate"
	RiskProfileAggressive   RiskProfile = "aggressive"
)

// DeriveRiskProfile maps a savings rate (percent of monthly income) onto
// the coarse profile used to bias recommendation selection.
func DeriveRiskProfile(savingsRate float64) RiskProfile {
	switch {
	case savingsRate >= 40:
		return RiskProfileAggressive
	case savingsRate >= 20:
		return RiskProfileModerate
	default:
		return RiskProfileConservative
	}
}

// FinancialSnapshot is an aggregated view of a user's records. It is
// built fresh per request - record data changes too often to cache.
type FinancialSnapshot struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	TotalInvestments decimal.Decimal
	TotalLoans       decimal.Decimal
	NetWorth         decimal.Decimal

	MonthlyIncome   decimal.Decimal
	MonthlyExpenses decimal.Decimal
	MonthlySavings  decimal.Decimal

	// derived by the context assembler, zero-valued as loaded
	SavingsRate float64
	RiskProfile RiskProfile
}
