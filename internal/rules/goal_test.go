package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_CalculateGoalFeasibility(t *testing.T) {
	t.Run("achievable goal", func(t *testing.T) {
		result := CalculateGoalFeasibility(1000000, 200000, 10000, 5, 10)

		require.True(t, result.Feasible)
		require.Equal(t, 0.0, result.Shortfall)
		require.GreaterOrEqual(t, result.ProjectedAmount, result.TargetAmount)
	})

	t.Run("shortfall solves required contribution", func(t *testing.T) {
		result := CalculateGoalFeasibility(5000000, 100000, 5000, 5, 10)

		require.False(t, result.Feasible)
		require.Greater(t, result.RequiredMonthly, result.CurrentMonthly)
		require.Greater(t, result.AdditionalMonthlyNeeded, 0.0)

		// contributing the solved amount should close the gap
		check := CalculateGoalFeasibility(5000000, 100000, result.RequiredMonthly, 5, 10)
		require.InDelta(t, 5000000, check.ProjectedAmount, 5000)
	})

	t.Run("monotonic in monthly contribution", func(t *testing.T) {
		prev := -1.0
		for _, monthly := range []float64{0, 1000, 5000, 10000, 50000, 100000} {
			result := CalculateGoalFeasibility(10000000, 50000, monthly, 8, 10)
			require.GreaterOrEqual(t, result.ProjectedAmount, prev,
				"projection must not decrease when contribution rises")
			prev = result.ProjectedAmount
		}
	})

	t.Run("past target date", func(t *testing.T) {
		result := CalculateGoalFeasibility(1000000, 400000, 10000, 0, 10)

		require.False(t, result.Feasible)
		require.Equal(t, 600000.0, result.Shortfall)
	})

	t.Run("zero expected return", func(t *testing.T) {
		result := CalculateGoalFeasibility(120000, 0, 1000, 10, 0)

		require.Equal(t, 120000.0, result.ProjectedAmount)
		require.True(t, result.Feasible)
	})
}

func Test_PrioritizeGoals(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("nearer high priority goal ranks first", func(t *testing.T) {
		goals := []Goal{
			{Name: "vacation", TargetAmount: 200000, CurrentAmount: 150000, TargetDate: now.AddDate(5, 0, 0), Priority: GoalPriorityLow},
			{Name: "emergency fund", TargetAmount: 300000, CurrentAmount: 0, TargetDate: now.AddDate(0, 6, 0), Priority: GoalPriorityHigh},
		}

		scored := PrioritizeGoals(goals, now)
		require.Len(t, scored, 2)
		require.Equal(t, "emergency fund", scored[0].Name)
		require.Greater(t, scored[0].CompositeScore, scored[1].CompositeScore)
	})

	t.Run("overdue goal floors months at one", func(t *testing.T) {
		goals := []Goal{
			{Name: "overdue", TargetAmount: 100000, TargetDate: now.AddDate(0, -3, 0), Priority: GoalPriorityMedium},
		}

		scored := PrioritizeGoals(goals, now)
		require.Equal(t, 1.0, scored[0].MonthsRemaining)
		require.Equal(t, 100.0, scored[0].UrgencyScore)
	})

	t.Run("missing date defaults to ten year horizon", func(t *testing.T) {
		scored := PrioritizeGoals([]Goal{{Name: "someday", TargetAmount: 100000}}, now)
		require.Equal(t, 120.0, scored[0].MonthsRemaining)
	})

	t.Run("zero target amount is safe", func(t *testing.T) {
		scored := PrioritizeGoals([]Goal{{Name: "empty", TargetDate: now.AddDate(1, 0, 0)}}, now)
		require.Equal(t, 0.0, scored[0].CompletionPct)
	})
}
