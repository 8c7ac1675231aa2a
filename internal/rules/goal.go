package rules

import (
	"fmt"
	"math"
	"sort"
	"time"

	"clarifi/internal/domain"
	"clarifi/internal/util"
)

type GoalFeasibilityResult struct {
	Feasible                bool
	TargetAmount            float64
	ProjectedAmount         float64
	Shortfall               float64
	CurrentMonthly          float64
	RequiredMonthly         float64
	AdditionalMonthlyNeeded float64
	YearsRemaining          float64
	AssumedReturn           float64
	Message                 string
}

func (r GoalFeasibilityResult) Kind() domain.CalculationKind { return domain.CalculationGoal }

func (r GoalFeasibilityResult) Fields() []domain.CalculationField {
	return []domain.CalculationField{
		{Label: "Target Amount", Value: util.FormatINR(r.TargetAmount)},
		{Label: "Projected Amount", Value: util.FormatINR(r.ProjectedAmount)},
		{Label: "Shortfall", Value: util.FormatINR(r.Shortfall)},
		{Label: "Required Monthly", Value: util.FormatINR(r.RequiredMonthly)},
		{Label: "Assumed Return", Value: fmt.Sprintf("%.1f%% p.a.", r.AssumedReturn)},
		{Label: "Assessment", Value: r.Message},
	}
}

// CalculateGoalFeasibility projects current savings plus a monthly SIP
// to the target date. When the projection falls short it solves the
// annuity-due formula inversely for the required contribution. The
// projection is monotonic non-decreasing in monthlyContribution.
func CalculateGoalFeasibility(targetAmount, currentSavings, monthlyContribution, yearsRemaining, expectedReturn float64) GoalFeasibilityResult {
	months := int(yearsRemaining * 12)

	if months <= 0 {
		feasible := currentSavings >= targetAmount
		return GoalFeasibilityResult{
			Feasible:       feasible,
			TargetAmount:   targetAmount,
			Shortfall:      round2(math.Max(0, targetAmount-currentSavings)),
			CurrentMonthly: monthlyContribution,
			YearsRemaining: yearsRemaining,
			AssumedReturn:  expectedReturn,
			Message:        "Target date has passed or is imminent",
		}
	}

	monthlyRate := expectedReturn / (12 * 100)
	n := float64(months)

	fvCurrent := currentSavings * math.Pow(1+monthlyRate, n)

	var fvSIP float64
	if monthlyRate > 0 {
		fvSIP = monthlyContribution *
			((math.Pow(1+monthlyRate, n) - 1) / monthlyRate) *
			(1 + monthlyRate)
	} else {
		fvSIP = monthlyContribution * n
	}

	projected := fvCurrent + fvSIP
	feasible := projected >= targetAmount

	requiredMonthly := monthlyContribution
	if !feasible {
		requiredFV := targetAmount - fvCurrent
		if monthlyRate > 0 {
			requiredMonthly = requiredFV * monthlyRate /
				((math.Pow(1+monthlyRate, n) - 1) * (1 + monthlyRate))
		} else {
			requiredMonthly = requiredFV / n
		}
		requiredMonthly = math.Max(0, requiredMonthly)
	}

	additional := math.Max(0, requiredMonthly-monthlyContribution)

	message := "Goal is achievable with current plan"
	if !feasible {
		message = fmt.Sprintf("Need to increase monthly contribution by %s", util.FormatINR(additional))
	}

	return GoalFeasibilityResult{
		Feasible:                feasible,
		TargetAmount:            targetAmount,
		ProjectedAmount:         round2(projected),
		Shortfall:               round2(math.Max(0, targetAmount-projected)),
		CurrentMonthly:          monthlyContribution,
		RequiredMonthly:         round2(requiredMonthly),
		AdditionalMonthlyNeeded: round2(additional),
		YearsRemaining:          yearsRemaining,
		AssumedReturn:           expectedReturn,
		Message:                 message,
	}
}

type GoalPriority string

const (
	GoalPriorityHigh   GoalPriority = "high"
	GoalPriorityMedium GoalPriority = "medium"
	GoalPriorityLow    GoalPriority = "low"
)

type Goal struct {
	Name          string
	TargetAmount  float64
	CurrentAmount float64
	TargetDate    time.Time
	Priority      GoalPriority
}

type ScoredGoal struct {
	Goal
	UrgencyScore    float64
	PriorityWeight  float64
	CompletionPct   float64
	CompositeScore  float64
	MonthsRemaining float64
}

var priorityWeights = map[GoalPriority]float64{
	GoalPriorityHigh:   3,
	GoalPriorityMedium: 2,
	GoalPriorityLow:    1,
}

// PrioritizeGoals ranks goals by urgency(1/months)*weight*10 minus
// completion percentage, highest first. Months remaining floors at 1 so
// overdue goals don't divide by zero.
func PrioritizeGoals(goals []Goal, now time.Time) []ScoredGoal {
	scored := make([]ScoredGoal, 0, len(goals))

	for _, g := range goals {
		monthsRemaining := 120.0 // default horizon when no date is set
		if !g.TargetDate.IsZero() {
			days := g.TargetDate.Sub(now).Hours() / 24
			monthsRemaining = math.Max(1, days/30)
		}

		urgency := 100 / monthsRemaining

		weight, ok := priorityWeights[g.Priority]
		if !ok {
			weight = priorityWeights[GoalPriorityMedium]
		}

		completion := 0.0
		if g.TargetAmount > 0 {
			completion = (g.CurrentAmount / g.TargetAmount) * 100
		}

		scored = append(scored, ScoredGoal{
			Goal:            g,
			UrgencyScore:    round2(urgency),
			PriorityWeight:  weight,
			CompletionPct:   round1(completion),
			CompositeScore:  round2(urgency*weight*10 - completion),
			MonthsRemaining: math.Round(monthsRemaining),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].CompositeScore > scored[j].CompositeScore
	})
	return scored
}
