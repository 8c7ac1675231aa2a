package domain

type Category string

const (
	CategoryInvestment Category = "investment"
	CategoryStock      Category = "stock"
	CategoryLoan       Category = "loan"
	CategoryTax        Category = "tax"
	CategoryInsurance  Category = "insurance"
	CategorySavings    Category = "savings"
	CategoryBudgeting  Category = "budgeting"
	CategoryRetirement Category = "retirement"
	CategoryGoal       Category = "goal"
)

// QueryIntent is built once per incoming message and read-only afterward.
// Categories is non-exclusive - a message about a loan against a stock
// portfolio legitimately matches both.
type QueryIntent struct {
	Categories                    []Category
	RequiresCalculation           bool
	CalculationType               CalculationKind // empty when no calculation is needed
	RequiresMarketRecommendations bool
}

func (q QueryIntent) HasCategory(c Category) bool {
	for _, existing := range q.Categories {
		if existing == c {
			return true
		}
	}
	return false
}
