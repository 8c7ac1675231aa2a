package domain

// Quote is a point-in-time market quote. Optional fundamentals are nil
// when the upstream feed doesn't carry them.
type Quote struct {
	Symbol        string
	Name          string
	Price         float64
	ChangePercent float64
	PERatio       *float64
	DividendYield *float64
	Sector        string
}

type StockRecommendation struct {
	Symbol        string
	Name          string
	Price         float64
	ChangePercent float64
	PERatio       *float64
	DividendYield *float64
	Sector        string
	Reason        string
}

// RecommendationSet is what the market-data collaborator returns for a
// recommendation request. Stocks may be a partial list when some symbol
// lookups failed; an empty set is valid. SIP is nil when the portfolio
// has no spare monthly savings to size a suggestion from.
type RecommendationSet struct {
	Stocks     []StockRecommendation
	Allocation map[string]float64
	SIP        *SIPSuggestion
}

// SIPSuggestion sizes a monthly SIP from the portfolio's spare savings
// and splits it across the recommended asset allocation, in rupees.
type SIPSuggestion struct {
	MonthlyAmount float64
	Split         map[string]float64
}

// PortfolioSummary is the slice of the snapshot the market-data
// collaborator needs to size its suggestions.
type PortfolioSummary struct {
	TotalInvestments float64
	MonthlySavings   float64
}
