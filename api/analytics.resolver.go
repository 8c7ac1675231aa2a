package api

import (
	"github.com/gin-gonic/gin"
)

func (m ApiHandler) getHealthReport(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		returnErrorJsonCode(err, c, 401)
		return
	}

	report, err := m.AnalyticsService.BuildHealthReport(c.Request.Context(), userID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{
		"savingsRate":   report.SavingsRate,
		"riskProfile":   report.Snapshot.RiskProfile,
		"cashFlow":      report.CashFlow,
		"healthScore":   report.HealthScore,
		"expenseHealth": report.ExpenseHealth,
		"expenseStats":  report.ExpenseStats,
	})
}
