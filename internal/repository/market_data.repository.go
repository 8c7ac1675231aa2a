package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"clarifi/internal/domain"
	"clarifi/internal/logger"

	"github.com/gocarina/gocsv"
	"github.com/hashicorp/golang-lru/v2/expirable"
	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/equity"
)

//go:embed seed/stock_universe.csv
var stockUniverseCsv []byte

const (
	bucketLargeCap = "large_cap"
	bucketMidCap   = "mid_cap"
	bucketGrowth   = "growth"
	bucketDividend = "dividend"
)

// MarketDataRepository wraps the upstream quote feed. Quotes are cached
// with a TTL and batch fetches are paced to stay polite to the feed;
// per-symbol failures in a batch are dropped, not propagated.
type MarketDataRepository interface {
	GetQuote(ctx context.Context, symbol string) (*domain.Quote, error)
	GetQuotes(ctx context.Context, symbols []string) ([]domain.Quote, error)
	GetRecommendations(ctx context.Context, portfolio domain.PortfolioSummary, profile domain.RiskProfile, query string) (*domain.RecommendationSet, error)
}

type universeEntry struct {
	Symbol string `csv:"symbol"`
	Name   string `csv:"name"`
	Sector string `csv:"sector"`
	Bucket string `csv:"bucket"`
}

type quoteFetchFunc func(symbol string) (*domain.Quote, error)

type marketDataRepositoryHandler struct {
	cache    *expirable.LRU[string, domain.Quote]
	fetch    quoteFetchFunc
	pace     time.Duration
	universe []universeEntry
}

type MarketDataOption func(*marketDataRepositoryHandler)

// WithQuoteFetch swaps the upstream feed, for tests.
func WithQuoteFetch(fetch quoteFetchFunc) MarketDataOption {
	return func(h *marketDataRepositoryHandler) { h.fetch = fetch }
}

// WithPace overrides the delay between symbols in a batch fetch.
func WithPace(pace time.Duration) MarketDataOption {
	return func(h *marketDataRepositoryHandler) { h.pace = pace }
}

func NewMarketDataRepository(cacheTTL time.Duration, opts ...MarketDataOption) (MarketDataRepository, error) {
	universe := []universeEntry{}
	if err := gocsv.UnmarshalBytes(stockUniverseCsv, &universe); err != nil {
		return nil, fmt.Errorf("failed to load stock universe: %w", err)
	}

	h := &marketDataRepositoryHandler{
		cache:    expirable.NewLRU[string, domain.Quote](512, nil, cacheTTL),
		fetch:    fetchUpstreamQuote,
		pace:     350 * time.Millisecond,
		universe: universe,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// fetchUpstreamQuote goes through the equity endpoint rather than the
// plain quote one: the fundamentals (trailing PE, dividend yield) only
// exist on equity quotes.
func fetchUpstreamQuote(symbol string) (*domain.Quote, error) {
	q, err := equity.Get(symbol)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("no quote returned for %s", symbol)
	}
	return quoteFromEquity(symbol, q), nil
}

// quoteFromEquity maps the upstream equity quote onto the domain type.
// Zero-valued fundamentals mean the feed didn't carry them.
func quoteFromEquity(symbol string, q *finance.Equity) *domain.Quote {
	out := &domain.Quote{
		Symbol:        symbol,
		Name:          q.ShortName,
		Price:         q.RegularMarketPrice,
		ChangePercent: q.RegularMarketChangePercent,
	}
	if q.TrailingPE > 0 {
		pe := q.TrailingPE
		out.PERatio = &pe
	}
	if q.TrailingAnnualDividendYield > 0 {
		dy := q.TrailingAnnualDividendYield * 100
		out.DividendYield = &dy
	}
	return out
}

func (h *marketDataRepositoryHandler) GetQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, errors.New("symbol is required")
	}

	if cached, ok := h.cache.Get(symbol); ok {
		return &cached, nil
	}

	q, err := h.fetch(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}
	if entry, ok := h.lookupUniverse(symbol); ok {
		q.Sector = entry.Sector
		if q.Name == "" {
			q.Name = entry.Name
		}
	}

	h.cache.Add(symbol, *q)
	return q, nil
}

// GetQuotes fetches a batch with pacing between upstream calls. Symbols
// that fail are logged and skipped; the batch errors only when nothing
// could be fetched at all.
func (h *marketDataRepositoryHandler) GetQuotes(ctx context.Context, symbols []string) ([]domain.Quote, error) {
	log := logger.FromContext(ctx)

	quotes := []domain.Quote{}
	var lastErr error
	for i, symbol := range symbols {
		if i > 0 && h.pace > 0 {
			select {
			case <-ctx.Done():
				return quotes, ctx.Err()
			case <-time.After(h.pace):
			}
		}

		q, err := h.GetQuote(ctx, symbol)
		if err != nil {
			log.Warnf("skipping symbol in batch: %v", err)
			lastErr = err
			continue
		}
		quotes = append(quotes, *q)
	}

	if len(quotes) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all %d symbols failed, last error: %w", len(symbols), lastErr)
	}
	return quotes, nil
}

func (h *marketDataRepositoryHandler) lookupUniverse(symbol string) (universeEntry, bool) {
	for _, entry := range h.universe {
		if entry.Symbol == symbol {
			return entry, true
		}
	}
	return universeEntry{}, false
}

func bucketsFor(query string, profile domain.RiskProfile) []string {
	lowered := strings.ToLower(query)
	switch {
	case strings.Contains(lowered, "dividend"):
		return []string{bucketDividend, bucketLargeCap}
	case strings.Contains(lowered, "growth"):
		return []string{bucketGrowth, bucketMidCap}
	case strings.Contains(lowered, "mid cap") || strings.Contains(lowered, "midcap"):
		return []string{bucketMidCap, bucketGrowth}
	}

	switch profile {
	case domain.RiskProfileAggressive:
		return []string{bucketGrowth, bucketMidCap}
	case domain.RiskProfileModerate:
		return []string{bucketLargeCap, bucketGrowth}
	default:
		return []string{bucketLargeCap, bucketDividend}
	}
}

var bucketReasons = map[string]string{
	bucketLargeCap: "established large-cap with a stable earnings record",
	bucketMidCap:   "mid-cap with room to grow into its sector",
	bucketGrowth:   "consistent revenue growth ahead of sector peers",
	bucketDividend: "reliable dividend payer suited to income portfolios",
}

var allocationByProfile = map[domain.RiskProfile]map[string]float64{
	domain.RiskProfileConservative: {"equity": 40, "debt": 50, "gold": 10},
	domain.RiskProfileModerate:     {"equity": 60, "debt": 30, "gold": 10},
	domain.RiskProfileAggressive:   {"equity": 75, "debt": 15, "gold": 10},
}

const (
	maxRecommendations = 5

	// fraction of spare monthly savings to commit to a suggested SIP,
	// leaving headroom for irregular expenses
	sipSavingsFraction = 0.6
)

// GetRecommendations picks symbols from the curated universe by query
// keywords first, then by risk profile, and prices them through the
// paced batch path. A partial set is returned when some quotes fail.
// When the portfolio carries spare monthly savings, the set includes a
// SIP suggestion sized from them and split across the allocation.
func (h *marketDataRepositoryHandler) GetRecommendations(ctx context.Context, portfolio domain.PortfolioSummary, profile domain.RiskProfile, query string) (*domain.RecommendationSet, error) {
	buckets := bucketsFor(query, profile)

	picked := []universeEntry{}
	for _, bucket := range buckets {
		for _, entry := range h.universe {
			if entry.Bucket == bucket && len(picked) < maxRecommendations {
				picked = append(picked, entry)
			}
		}
	}

	symbols := make([]string, 0, len(picked))
	for _, entry := range picked {
		symbols = append(symbols, entry.Symbol)
	}

	quotes, err := h.GetQuotes(ctx, symbols)
	if err != nil {
		return nil, fmt.Errorf("failed to price recommendations: %w", err)
	}

	quotesBySymbol := map[string]domain.Quote{}
	for _, q := range quotes {
		quotesBySymbol[q.Symbol] = q
	}

	set := &domain.RecommendationSet{
		Stocks:     []domain.StockRecommendation{},
		Allocation: allocationByProfile[profile],
	}
	for _, entry := range picked {
		q, ok := quotesBySymbol[entry.Symbol]
		if !ok {
			continue
		}
		set.Stocks = append(set.Stocks, domain.StockRecommendation{
			Symbol:        q.Symbol,
			Name:          q.Name,
			Price:         q.Price,
			ChangePercent: q.ChangePercent,
			PERatio:       q.PERatio,
			DividendYield: q.DividendYield,
			Sector:        entry.Sector,
			Reason:        bucketReasons[entry.Bucket],
		})
	}
	set.SIP = suggestSIP(portfolio, set.Allocation)
	return set, nil
}

func suggestSIP(portfolio domain.PortfolioSummary, allocation map[string]float64) *domain.SIPSuggestion {
	if portfolio.MonthlySavings <= 0 {
		return nil
	}

	monthly := math.Round(portfolio.MonthlySavings * sipSavingsFraction)
	split := map[string]float64{}
	for class, pct := range allocation {
		split[class] = math.Round(monthly * pct / 100)
	}
	return &domain.SIPSuggestion{
		MonthlyAmount: monthly,
		Split:         split,
	}
}
