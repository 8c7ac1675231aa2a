package service

import (
	"context"
	"fmt"

	"clarifi/internal/domain"
	"clarifi/internal/repository"
	"clarifi/internal/rules"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
)

type ExpenseStatistics struct {
	CategoryCount int
	Mean          float64
	Median        float64
	StdDev        float64
	Largest       string
}

type HealthReport struct {
	Snapshot      *domain.FinancialSnapshot
	SavingsRate   float64
	CashFlow      rules.CashFlowResult
	HealthScore   rules.HealthScoreResult
	ExpenseHealth map[string]rules.ExpenseCategoryHealth
	ExpenseStats  ExpenseStatistics
}

// AnalyticsService builds the health report shown on the dashboard: the
// rules engine's scores over the live snapshot plus distribution
// statistics over the month's expense categories.
type AnalyticsService interface {
	BuildHealthReport(ctx context.Context, userID uuid.UUID) (*HealthReport, error)
}

type analyticsServiceHandler struct {
	FinancialDataRepository repository.FinancialDataRepository
}

func NewAnalyticsService(financialDataRepository repository.FinancialDataRepository) AnalyticsService {
	return analyticsServiceHandler{FinancialDataRepository: financialDataRepository}
}

func (h analyticsServiceHandler) BuildHealthReport(ctx context.Context, userID uuid.UUID) (*HealthReport, error) {
	snapshot, err := h.FinancialDataRepository.GetSnapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	expenses, err := h.FinancialDataRepository.GetExpensesByCategory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	monthlyIncome := snapshot.MonthlyIncome.InexactFloat64()
	monthlyExpenses := snapshot.MonthlyExpenses.InexactFloat64()
	totalIncome := snapshot.TotalIncome.InexactFloat64()
	totalInvestments := snapshot.TotalInvestments.InexactFloat64()
	totalLoans := snapshot.TotalLoans.InexactFloat64()

	snapshot.SavingsRate = rules.CalculateSavingsRate(monthlyIncome, monthlyExpenses)
	snapshot.RiskProfile = domain.DeriveRiskProfile(snapshot.SavingsRate)

	expensesFloat := make(map[string]float64, len(expenses))
	emiTotal := 0.0
	insured := false
	for category, amount := range expenses {
		v := amount.InexactFloat64()
		expensesFloat[category] = v
		switch category {
		case "emi":
			emiTotal = v
		case "insurance":
			insured = v > 0
		}
	}

	emergencyMonths := 0.0
	if monthlyExpenses > 0 {
		emergencyMonths = totalInvestments / monthlyExpenses
	}
	debtToIncome := 0.0
	investmentRate := 0.0
	if totalIncome > 0 {
		debtToIncome = (totalLoans / totalIncome) * 100
		investmentRate = (totalInvestments / totalIncome) * 100
	}

	report := &HealthReport{
		Snapshot:    snapshot,
		SavingsRate: snapshot.SavingsRate,
		CashFlow:    rules.CalculateMonthlyCashFlow(monthlyIncome, monthlyExpenses, emiTotal),
		HealthScore: rules.CalculateFinancialHealthScore(
			snapshot.SavingsRate, emergencyMonths, debtToIncome, investmentRate, insured),
		ExpenseHealth: rules.CategorizeExpenseHealth(expensesFloat, monthlyIncome),
		ExpenseStats:  expenseStatistics(expensesFloat),
	}
	return report, nil
}

func expenseStatistics(expenses map[string]float64) ExpenseStatistics {
	if len(expenses) == 0 {
		return ExpenseStatistics{}
	}

	values := make([]float64, 0, len(expenses))
	largest := ""
	largestAmount := -1.0
	for category, amount := range expenses {
		values = append(values, amount)
		if amount > largestAmount {
			largestAmount = amount
			largest = category
		}
	}

	// stats errors only on empty input, which is handled above
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	stdDev, _ := stats.StandardDeviation(values)

	return ExpenseStatistics{
		CategoryCount: len(expenses),
		Mean:          mean,
		Median:        median,
		StdDev:        stdDev,
		Largest:       largest,
	}
}
