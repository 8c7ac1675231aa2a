package service

import (
	"context"
	"testing"

	"clarifi/internal/domain"
	"clarifi/internal/rules"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_RunCalculations(t *testing.T) {
	svc := NewCalculationService()
	emiIntent := domain.QueryIntent{RequiresCalculation: true, CalculationType: domain.CalculationEMI}

	t.Run("complete loan parameters produce an emi plus affordability", func(t *testing.T) {
		snapshot := &domain.FinancialSnapshot{MonthlyIncome: decimal.NewFromInt(100000)}
		calcs := svc.RunCalculations(context.Background(),
			"calculate emi for a loan of 5 lakh at 10% for 5 years", emiIntent, snapshot)

		require.Len(t, calcs, 2)
		emi, ok := calcs[0].(rules.EMIResult)
		require.True(t, ok)
		require.InDelta(t, 10623.52, emi.EMI, 0.1)

		affordability, ok := calcs[1].(rules.LoanAffordabilityResult)
		require.True(t, ok)
		require.InDelta(t, 10.6, affordability.EMIToIncomeRatio, 0.1)
	})

	t.Run("missing tenure skips the calculation entirely", func(t *testing.T) {
		calcs := svc.RunCalculations(context.Background(),
			"calculate emi for a loan of 5 lakh at 10%", emiIntent, nil)
		require.Nil(t, calcs)
	})

	t.Run("sip defaults the rate and surfaces the assumption", func(t *testing.T) {
		intent := domain.QueryIntent{RequiresCalculation: true, CalculationType: domain.CalculationSIP}
		calcs := svc.RunCalculations(context.Background(),
			"calculate sip returns for 5000 monthly for 10 years", intent, nil)

		require.Len(t, calcs, 1)
		sip, ok := calcs[0].(rules.SIPResult)
		require.True(t, ok)
		require.Equal(t, defaultSIPReturn, sip.AssumedAnnualRate)
	})

	t.Run("goal pulls contribution and savings from the snapshot", func(t *testing.T) {
		intent := domain.QueryIntent{RequiresCalculation: true, CalculationType: domain.CalculationGoal}
		snapshot := &domain.FinancialSnapshot{
			TotalInvestments: decimal.NewFromInt(500000),
			MonthlySavings:   decimal.NewFromInt(30000),
		}
		calcs := svc.RunCalculations(context.Background(),
			"I want to save 50 lakh in 10 years for retirement", intent, snapshot)

		require.Len(t, calcs, 1)
		goal, ok := calcs[0].(rules.GoalFeasibilityResult)
		require.True(t, ok)
		require.Equal(t, 5000000.0, goal.TargetAmount)
		require.Equal(t, 30000.0, goal.CurrentMonthly)
		require.Equal(t, defaultGoalReturn, goal.AssumedReturn)
	})

	t.Run("no calculation requested returns nil", func(t *testing.T) {
		calcs := svc.RunCalculations(context.Background(), "hello", domain.QueryIntent{}, nil)
		require.Nil(t, calcs)
	})
}
