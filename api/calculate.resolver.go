package api

import (
	"fmt"

	"clarifi/internal/rules"

	"github.com/gin-gonic/gin"
)

type emiRequest struct {
	Principal    float64 `json:"principal"`
	AnnualRate   float64 `json:"annualRate"`
	TenureMonths int     `json:"tenureMonths"`
}

func (m ApiHandler) calculateEmi(c *gin.Context) {
	var requestBody emiRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if requestBody.Principal <= 0 {
		returnErrorJsonCode(fmt.Errorf("principal must be positive"), c, 400)
		return
	}
	if requestBody.TenureMonths <= 0 {
		returnErrorJsonCode(fmt.Errorf("tenure must be positive"), c, 400)
		return
	}

	result := rules.CalculateEMI(requestBody.Principal, requestBody.AnnualRate, requestBody.TenureMonths)
	c.JSON(200, result)
}

type sipRequest struct {
	MonthlyInvestment float64 `json:"monthlyInvestment"`
	AnnualRate        float64 `json:"annualRate"`
	Years             int     `json:"years"`
}

func (m ApiHandler) calculateSip(c *gin.Context) {
	var requestBody sipRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if requestBody.MonthlyInvestment <= 0 {
		returnErrorJsonCode(fmt.Errorf("monthly investment must be positive"), c, 400)
		return
	}
	if requestBody.Years <= 0 {
		returnErrorJsonCode(fmt.Errorf("years must be positive"), c, 400)
		return
	}

	result := rules.CalculateSIPReturns(requestBody.MonthlyInvestment, requestBody.AnnualRate, requestBody.Years)
	c.JSON(200, result)
}

type goalRequest struct {
	TargetAmount        float64 `json:"targetAmount"`
	CurrentSavings      float64 `json:"currentSavings"`
	MonthlyContribution float64 `json:"monthlyContribution"`
	YearsRemaining      float64 `json:"yearsRemaining"`
	ExpectedReturn      float64 `json:"expectedReturn"`
}

func (m ApiHandler) calculateGoal(c *gin.Context) {
	var requestBody goalRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if requestBody.TargetAmount <= 0 {
		returnErrorJsonCode(fmt.Errorf("target amount must be positive"), c, 400)
		return
	}

	result := rules.CalculateGoalFeasibility(
		requestBody.TargetAmount,
		requestBody.CurrentSavings,
		requestBody.MonthlyContribution,
		requestBody.YearsRemaining,
		requestBody.ExpectedReturn,
	)
	c.JSON(200, result)
}
