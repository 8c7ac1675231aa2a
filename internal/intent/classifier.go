// Package intent maps raw question text onto the structured QueryIntent
// the rest of the pipeline consumes. Matching is deterministic keyword
// lookup - no statistical model - and deliberately non-exclusive: a
// message about borrowing against a stock portfolio matches both the
// loan and stock categories, and downstream context assembly depends on
// getting the full set.
package intent

import (
	"strings"

	"clarifi/internal/domain"
)

var investmentKeywords = []string{
	"invest", "mutual fund", "sip", "portfolio",
	"equity", "debt fund", "returns", "cagr",
}

var stockKeywords = []string{
	"stock", "share", "nifty", "sensex", "equity", "trading",
	"buy stock", "which stock", "best stock", "recommend stock",
	"stock recommendation", "invest in stock",
}

var loanKeywords = []string{
	"loan", "emi", "mortgage", "debt", "borrow", "interest rate",
	"repayment", "prepayment", "principal",
}

var taxKeywords = []string{
	"tax", "80c", "80d", "deduction", "elss", "ppf",
	"nps", "tax saving", "income tax",
}

var insuranceKeywords = []string{
	"insurance", "policy", "premium", "coverage", "term plan",
	"health insurance", "life insurance",
}

var savingsKeywords = []string{
	"save", "saving", "emergency fund", "budget", "expense",
}

var retirementKeywords = []string{
	"retire", "retirement", "pension", "nps", "epf",
}

var goalKeywords = []string{
	"goal", "target", "plan for", "achieve", "save for",
}

func containsAny(message string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}

// Classify builds the QueryIntent for a message. The stock flag gates an
// expensive live market fetch, so it is decided here, before any context
// is sourced.
func Classify(message string) domain.QueryIntent {
	lower := strings.ToLower(message)

	qi := domain.QueryIntent{}
	add := func(c domain.Category) {
		if !qi.HasCategory(c) {
			qi.Categories = append(qi.Categories, c)
		}
	}

	if containsAny(lower, investmentKeywords) {
		add(domain.CategoryInvestment)
	}

	if containsAny(lower, stockKeywords) {
		add(domain.CategoryStock)
		qi.RequiresMarketRecommendations = true
	}

	if containsAny(lower, loanKeywords) {
		add(domain.CategoryLoan)
		if strings.Contains(lower, "calculate") || strings.Contains(lower, "how much") {
			qi.RequiresCalculation = true
			qi.CalculationType = domain.CalculationEMI
		}
	}

	if containsAny(lower, taxKeywords) {
		add(domain.CategoryTax)
	}

	if containsAny(lower, insuranceKeywords) {
		add(domain.CategoryInsurance)
	}

	if containsAny(lower, savingsKeywords) {
		add(domain.CategorySavings)
		add(domain.CategoryBudgeting)
	}

	if containsAny(lower, retirementKeywords) {
		add(domain.CategoryRetirement)
	}

	// goal keywords always trigger a calculation, whatever else matched
	if containsAny(lower, goalKeywords) {
		add(domain.CategoryGoal)
		qi.RequiresCalculation = true
		qi.CalculationType = domain.CalculationGoal
	}

	if strings.Contains(lower, "sip") &&
		(strings.Contains(lower, "calculate") || strings.Contains(lower, "return")) {
		qi.RequiresCalculation = true
		qi.CalculationType = domain.CalculationSIP
	}

	return qi
}

var detailedKeywords = []string{
	"explain", "why", "how", "analyze", "compare", "strategy",
	"plan", "detail", "comprehensive", "breakdown", "advice",
	"tax planning", "retirement", "portfolio", "diversify",
}

// ClassifyComplexity picks the model tier for a query: analytical
// phrasing gets the detailed tier's larger context and timeout budget,
// everything else defaults to the fast tier.
func ClassifyComplexity(message string) domain.ModelTier {
	lower := strings.ToLower(message)
	if containsAny(lower, detailedKeywords) {
		return domain.TierDetailed
	}
	return domain.TierFast
}
