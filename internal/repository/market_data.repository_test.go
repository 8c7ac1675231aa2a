package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"clarifi/internal/domain"

	finance "github.com/piquette/finance-go"
	"github.com/stretchr/testify/require"
)

func newStubFetch(calls *int, failSymbols map[string]bool) quoteFetchFunc {
	return func(symbol string) (*domain.Quote, error) {
		*calls++
		if failSymbols[symbol] {
			return nil, errors.New("upstream unavailable")
		}
		return &domain.Quote{
			Symbol:        symbol,
			Name:          strings.TrimSuffix(symbol, ".NS"),
			Price:         100,
			ChangePercent: 1.5,
		}, nil
	}
}

func Test_MarketDataRepository_GetQuote(t *testing.T) {
	t.Run("second read within ttl hits the cache", func(t *testing.T) {
		calls := 0
		repo, err := NewMarketDataRepository(time.Minute,
			WithQuoteFetch(newStubFetch(&calls, nil)),
			WithPace(0),
		)
		require.NoError(t, err)

		first, err := repo.GetQuote(context.Background(), "TCS.NS")
		require.NoError(t, err)
		second, err := repo.GetQuote(context.Background(), "tcs.ns")
		require.NoError(t, err)

		require.Equal(t, 1, calls)
		require.Equal(t, first.Symbol, second.Symbol)
	})

	t.Run("universe enriches sector", func(t *testing.T) {
		calls := 0
		repo, err := NewMarketDataRepository(time.Minute,
			WithQuoteFetch(newStubFetch(&calls, nil)),
			WithPace(0),
		)
		require.NoError(t, err)

		q, err := repo.GetQuote(context.Background(), "INFY.NS")
		require.NoError(t, err)
		require.Equal(t, "Information Technology", q.Sector)
	})

	t.Run("blank symbol is rejected", func(t *testing.T) {
		repo, err := NewMarketDataRepository(time.Minute, WithPace(0))
		require.NoError(t, err)

		_, err = repo.GetQuote(context.Background(), "  ")
		require.Error(t, err)
	})
}

func Test_MarketDataRepository_GetQuotes(t *testing.T) {
	t.Run("partial failures are dropped", func(t *testing.T) {
		calls := 0
		repo, err := NewMarketDataRepository(time.Minute,
			WithQuoteFetch(newStubFetch(&calls, map[string]bool{"BROKEN.NS": true})),
			WithPace(0),
		)
		require.NoError(t, err)

		quotes, err := repo.GetQuotes(context.Background(), []string{"TCS.NS", "BROKEN.NS", "INFY.NS"})
		require.NoError(t, err)
		require.Len(t, quotes, 2)
	})

	t.Run("total failure errors", func(t *testing.T) {
		calls := 0
		repo, err := NewMarketDataRepository(time.Minute,
			WithQuoteFetch(newStubFetch(&calls, map[string]bool{"A.NS": true, "B.NS": true})),
			WithPace(0),
		)
		require.NoError(t, err)

		_, err = repo.GetQuotes(context.Background(), []string{"A.NS", "B.NS"})
		require.Error(t, err)
	})
}

func Test_MarketDataRepository_GetRecommendations(t *testing.T) {
	newRepo := func(t *testing.T) MarketDataRepository {
		calls := 0
		repo, err := NewMarketDataRepository(time.Minute,
			WithQuoteFetch(newStubFetch(&calls, nil)),
			WithPace(0),
		)
		require.NoError(t, err)
		return repo
	}

	t.Run("dividend keyword overrides profile", func(t *testing.T) {
		set, err := newRepo(t).GetRecommendations(context.Background(), domain.PortfolioSummary{}, domain.RiskProfileAggressive, "best dividend stocks")
		require.NoError(t, err)
		require.NotEmpty(t, set.Stocks)
		require.Equal(t, "reliable dividend payer suited to income portfolios", set.Stocks[0].Reason)
	})

	t.Run("aggressive profile leads with growth picks", func(t *testing.T) {
		set, err := newRepo(t).GetRecommendations(context.Background(), domain.PortfolioSummary{}, domain.RiskProfileAggressive, "which stocks should I buy")
		require.NoError(t, err)
		require.NotEmpty(t, set.Stocks)
		require.Equal(t, "consistent revenue growth ahead of sector peers", set.Stocks[0].Reason)
		require.Equal(t, 75.0, set.Allocation["equity"])
	})

	t.Run("conservative allocation favors debt", func(t *testing.T) {
		set, err := newRepo(t).GetRecommendations(context.Background(), domain.PortfolioSummary{}, domain.RiskProfileConservative, "suggest stocks")
		require.NoError(t, err)
		require.Equal(t, 50.0, set.Allocation["debt"])
		require.LessOrEqual(t, len(set.Stocks), 5)
	})

	t.Run("sip suggestion sized from spare savings", func(t *testing.T) {
		portfolio := domain.PortfolioSummary{TotalInvestments: 800000, MonthlySavings: 50000}
		set, err := newRepo(t).GetRecommendations(context.Background(), portfolio, domain.RiskProfileAggressive, "which stocks should I buy")
		require.NoError(t, err)
		require.NotNil(t, set.SIP)
		require.Equal(t, 30000.0, set.SIP.MonthlyAmount)
		require.Equal(t, 22500.0, set.SIP.Split["equity"])
		require.Equal(t, 4500.0, set.SIP.Split["debt"])
		require.Equal(t, 3000.0, set.SIP.Split["gold"])
	})

	t.Run("no spare savings means no sip suggestion", func(t *testing.T) {
		set, err := newRepo(t).GetRecommendations(context.Background(), domain.PortfolioSummary{}, domain.RiskProfileModerate, "suggest stocks")
		require.NoError(t, err)
		require.Nil(t, set.SIP)
	})
}

func Test_quoteFromEquity(t *testing.T) {
	t.Run("maps fundamentals when present", func(t *testing.T) {
		q := quoteFromEquity("TCS.NS", &finance.Equity{
			Quote: finance.Quote{
				ShortName:                  "Tata Consultancy Services",
				RegularMarketPrice:         4125.5,
				RegularMarketChangePercent: 0.8,
			},
			TrailingPE:                  29.4,
			TrailingAnnualDividendYield: 0.0125,
		})

		require.Equal(t, "TCS.NS", q.Symbol)
		require.Equal(t, 4125.5, q.Price)
		require.NotNil(t, q.PERatio)
		require.Equal(t, 29.4, *q.PERatio)
		require.NotNil(t, q.DividendYield)
		require.InDelta(t, 1.25, *q.DividendYield, 0.001)
	})

	t.Run("missing fundamentals stay nil", func(t *testing.T) {
		q := quoteFromEquity("NEWLIST.NS", &finance.Equity{
			Quote: finance.Quote{RegularMarketPrice: 210},
		})

		require.Nil(t, q.PERatio)
		require.Nil(t, q.DividendYield)
	})
}
