package repository

import (
	"context"
	"database/sql"
	"fmt"

	"clarifi/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	recordTypeIncome     = "income"
	recordTypeExpense    = "expense"
	recordTypeInvestment = "investment"
	recordTypeLoan       = "loan"
)

// FinancialDataRepository aggregates a user's raw records into the
// snapshot the context assembler consumes. Snapshots are computed fresh
// on every call - record data changes too often to cache.
type FinancialDataRepository interface {
	GetSnapshot(ctx context.Context, userID uuid.UUID) (*domain.FinancialSnapshot, error)
	GetExpensesByCategory(ctx context.Context, userID uuid.UUID) (map[string]decimal.Decimal, error)
}

type financialDataRepositoryHandler struct {
	Db *sql.DB
}

func NewFinancialDataRepository(db *sql.DB) FinancialDataRepository {
	return financialDataRepositoryHandler{Db: db}
}

func (h financialDataRepositoryHandler) GetSnapshot(ctx context.Context, userID uuid.UUID) (*domain.FinancialSnapshot, error) {
	totals, err := h.sumByRecordType(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate totals: %w", err)
	}
	monthly, err := h.sumByRecordType(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate current month: %w", err)
	}

	snapshot := &domain.FinancialSnapshot{
		TotalIncome:      totals[recordTypeIncome],
		TotalExpenses:    totals[recordTypeExpense],
		TotalInvestments: totals[recordTypeInvestment],
		TotalLoans:       totals[recordTypeLoan],
		MonthlyIncome:    monthly[recordTypeIncome],
		MonthlyExpenses:  monthly[recordTypeExpense],
	}
	snapshot.NetWorth = snapshot.TotalInvestments.Sub(snapshot.TotalLoans)
	snapshot.MonthlySavings = snapshot.MonthlyIncome.Sub(snapshot.MonthlyExpenses)

	return snapshot, nil
}

func (h financialDataRepositoryHandler) sumByRecordType(ctx context.Context, userID uuid.UUID, currentMonthOnly bool) (map[string]decimal.Decimal, error) {
	query := `
		SELECT record_type, COALESCE(SUM(amount), 0)
		FROM financial_records
		WHERE user_id = $1
	`
	if currentMonthOnly {
		query += ` AND recorded_at >= date_trunc('month', now())`
	}
	query += ` GROUP BY record_type`

	rows, err := h.Db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := map[string]decimal.Decimal{}
	for rows.Next() {
		var (
			recordType string
			amountStr  string
		)
		if err := rows.Scan(&recordType, &amountStr); err != nil {
			return nil, err
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("unparseable amount for %s: %w", recordType, err)
		}
		sums[recordType] = amount
	}
	return sums, rows.Err()
}

func (h financialDataRepositoryHandler) GetExpensesByCategory(ctx context.Context, userID uuid.UUID) (map[string]decimal.Decimal, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM financial_records
		WHERE user_id = $1
		AND record_type = $2
		AND recorded_at >= date_trunc('month', now())
		GROUP BY category
	`
	rows, err := h.Db.QueryContext(ctx, query, userID, recordTypeExpense)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses by category: %w", err)
	}
	defer rows.Close()

	sums := map[string]decimal.Decimal{}
	for rows.Next() {
		var (
			category  string
			amountStr string
		)
		if err := rows.Scan(&category, &amountStr); err != nil {
			return nil, err
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("unparseable amount for category %s: %w", category, err)
		}
		sums[category] = amount
	}
	return sums, rows.Err()
}
