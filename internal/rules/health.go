package rules

import (
	"fmt"
	"math"
	"strings"

	"clarifi/internal/domain"
)

type HealthStatus string

const (
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthFair      HealthStatus = "fair"
	HealthPoor      HealthStatus = "poor"
)

// HealthScoreBreakdown holds the five dimension scores, each capped at 20.
type HealthScoreBreakdown struct {
	Savings       int
	EmergencyFund int
	Debt          int
	Investment    int
	Insurance     int
}

type HealthScoreResult struct {
	TotalScore          int
	Status              HealthStatus
	Message             string
	Breakdown           HealthScoreBreakdown
	AreasForImprovement []string
}

func (r HealthScoreResult) Kind() domain.CalculationKind { return domain.CalculationHealthScore }

func (r HealthScoreResult) Fields() []domain.CalculationField {
	return []domain.CalculationField{
		{Label: "Health Score", Value: fmt.Sprintf("%d / 100", r.TotalScore)},
		{Label: "Status", Value: string(r.Status)},
		{Label: "Savings Score", Value: fmt.Sprintf("%d / 20", r.Breakdown.Savings)},
		{Label: "Emergency Fund Score", Value: fmt.Sprintf("%d / 20", r.Breakdown.EmergencyFund)},
		{Label: "Debt Score", Value: fmt.Sprintf("%d / 20", r.Breakdown.Debt)},
		{Label: "Investment Score", Value: fmt.Sprintf("%d / 20", r.Breakdown.Investment)},
		{Label: "Insurance Score", Value: fmt.Sprintf("%d / 20", r.Breakdown.Insurance)},
		{Label: "Assessment", Value: r.Message},
	}
}

func tierScore(value float64, top, mid, low float64) int {
	switch {
	case value >= top:
		return 20
	case value >= mid:
		return 15
	case value >= low:
		return 10
	default:
		return 5
	}
}

// CalculateFinancialHealthScore sums five independently scored
// dimensions into a 0-100 score with status bands at 80/60/40.
func CalculateFinancialHealthScore(savingsRate, emergencyFundMonths, debtToIncomeRatio, investmentRate float64, insured bool) HealthScoreResult {
	breakdown := HealthScoreBreakdown{
		Savings:       tierScore(savingsRate, 30, 20, 10),
		EmergencyFund: tierScore(emergencyFundMonths, 6, 3, 1),
		Investment:    tierScore(investmentRate, 20, 10, 5),
	}

	// debt scores inversely: less debt, more points
	switch {
	case debtToIncomeRatio <= 20:
		breakdown.Debt = 20
	case debtToIncomeRatio <= 40:
		breakdown.Debt = 15
	case debtToIncomeRatio <= 60:
		breakdown.Debt = 10
	default:
		breakdown.Debt = 5
	}

	breakdown.Insurance = 5
	if insured {
		breakdown.Insurance = 20
	}

	total := breakdown.Savings + breakdown.EmergencyFund + breakdown.Debt +
		breakdown.Investment + breakdown.Insurance

	var status HealthStatus
	var message string
	switch {
	case total >= 80:
		status = HealthExcellent
		message = "Your financial health is excellent! Keep it up."
	case total >= 60:
		status = HealthGood
		message = "Your financial health is good. Some areas can be improved."
	case total >= 40:
		status = HealthFair
		message = "Your financial health needs attention. Focus on weak areas."
	default:
		status = HealthPoor
		message = "Your financial health needs significant improvement."
	}

	weak := []string{}
	for _, dim := range []struct {
		name  string
		score int
	}{
		{"savings", breakdown.Savings},
		{"emergency_fund", breakdown.EmergencyFund},
		{"debt", breakdown.Debt},
		{"investment", breakdown.Investment},
		{"insurance", breakdown.Insurance},
	} {
		if dim.score < 15 {
			weak = append(weak, dim.name)
		}
	}

	return HealthScoreResult{
		TotalScore:          total,
		Status:              status,
		Message:             message,
		Breakdown:           breakdown,
		AreasForImprovement: weak,
	}
}

type CashFlowResult struct {
	MonthlyIncome    float64
	MonthlyExpenses  float64
	EMIObligations   float64
	TotalOutflow     float64
	NetCashFlow      float64
	DisposableIncome float64
}

func CalculateMonthlyCashFlow(monthlyIncome, monthlyExpenses, emiTotal float64) CashFlowResult {
	totalOutflow := monthlyExpenses + emiTotal
	net := monthlyIncome - totalOutflow
	return CashFlowResult{
		MonthlyIncome:    monthlyIncome,
		MonthlyExpenses:  monthlyExpenses,
		EMIObligations:   emiTotal,
		TotalOutflow:     totalOutflow,
		NetCashFlow:      net,
		DisposableIncome: math.Max(0, net),
	}
}

type NetWorthResult struct {
	TotalAssets      float64
	TotalLiabilities float64
	NetWorth         float64
	DebtToAssetRatio float64
}

func CalculateNetWorth(assets, liabilities map[string]float64) NetWorthResult {
	totalAssets := 0.0
	for _, v := range assets {
		totalAssets += v
	}
	totalLiabilities := 0.0
	for _, v := range liabilities {
		totalLiabilities += v
	}

	ratio := 0.0
	if totalAssets > 0 {
		ratio = round1((totalLiabilities / totalAssets) * 100)
	}

	return NetWorthResult{
		TotalAssets:      round2(totalAssets),
		TotalLiabilities: round2(totalLiabilities),
		NetWorth:         round2(totalAssets - totalLiabilities),
		DebtToAssetRatio: ratio,
	}
}

type ExpenseHealthStatus string

const (
	ExpenseHealthy      ExpenseHealthStatus = "healthy"
	ExpenseModerate     ExpenseHealthStatus = "moderate"
	ExpenseOverspending ExpenseHealthStatus = "overspending"
)

type ExpenseCategoryHealth struct {
	Amount           float64
	PctOfIncome      float64
	RecommendedLimit float64
	Status           ExpenseHealthStatus
	Message          string
}

var recommendedExpenseLimits = map[string]float64{
	"rent":          30,
	"food":          15,
	"transport":     10,
	"utilities":     10,
	"entertainment": 10,
	"shopping":      10,
	"healthcare":    5,
	"education":     10,
	"emi":           40,
	"other":         10,
}

// CategorizeExpenseHealth checks each category against its recommended
// share of income: under 80% of the limit is healthy, within the limit
// moderate, beyond it overspending.
func CategorizeExpenseHealth(expensesByCategory map[string]float64, totalIncome float64) map[string]ExpenseCategoryHealth {
	results := make(map[string]ExpenseCategoryHealth, len(expensesByCategory))

	for category, amount := range expensesByCategory {
		limit, ok := recommendedExpenseLimits[strings.ToLower(category)]
		if !ok {
			limit = 10
		}

		pct := 0.0
		if totalIncome > 0 {
			pct = (amount / totalIncome) * 100
		}

		var status ExpenseHealthStatus
		var message string
		switch {
		case pct <= limit*0.8:
			status = ExpenseHealthy
			message = fmt.Sprintf("%s spending is well within limits", category)
		case pct <= limit:
			status = ExpenseModerate
			message = fmt.Sprintf("%s spending is approaching the recommended limit", category)
		default:
			status = ExpenseOverspending
			message = fmt.Sprintf("%s spending exceeds the recommended %.0f%% of income", category, limit)
		}

		results[category] = ExpenseCategoryHealth{
			Amount:           amount,
			PctOfIncome:      round1(pct),
			RecommendedLimit: limit,
			Status:           status,
			Message:          message,
		}
	}
	return results
}

// compile-time checks that every variant satisfies the narration surface
var (
	_ domain.Calculation = EMIResult{}
	_ domain.Calculation = SIPResult{}
	_ domain.Calculation = CompoundInterestResult{}
	_ domain.Calculation = GoalFeasibilityResult{}
	_ domain.Calculation = LoanAffordabilityResult{}
	_ domain.Calculation = PrepaymentResult{}
	_ domain.Calculation = LifeInsuranceResult{}
	_ domain.Calculation = HealthInsuranceResult{}
	_ domain.Calculation = HealthScoreResult{}
)
