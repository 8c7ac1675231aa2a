package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"clarifi/internal/domain"
	mock_repository "clarifi/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_GatherContext(t *testing.T) {
	userID := uuid.New()

	snapshot := func() *domain.FinancialSnapshot {
		return &domain.FinancialSnapshot{
			MonthlyIncome:    decimal.NewFromInt(100000),
			MonthlyExpenses:  decimal.NewFromInt(55000),
			MonthlySavings:   decimal.NewFromInt(45000),
			TotalInvestments: decimal.NewFromInt(800000),
		}
	}

	t.Run("derives savings rate and risk profile on the snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		financialData := mock_repository.NewMockFinancialDataRepository(ctrl)
		knowledge := mock_repository.NewMockKnowledgeRepository(ctrl)
		marketData := mock_repository.NewMockMarketDataRepository(ctrl)
		history := mock_repository.NewMockChatHistoryRepository(ctrl)

		financialData.EXPECT().GetSnapshot(gomock.Any(), userID).Return(snapshot(), nil)
		knowledge.EXPECT().Search(gomock.Any(), "query", domain.CategoryInvestment, knowledgeTopK).Return(nil, nil)
		history.EXPECT().List(gomock.Any(), userID, historyTurnLimit).Return(nil, nil)

		svc := NewContextService(financialData, knowledge, marketData, history)
		advisory := svc.GatherContext(context.Background(), userID, "query", domain.QueryIntent{
			Categories: []domain.Category{domain.CategoryInvestment},
		})

		require.NotNil(t, advisory.Snapshot)
		require.InDelta(t, 45.0, advisory.Snapshot.SavingsRate, 0.01)
		require.Equal(t, domain.RiskProfileAggressive, advisory.Snapshot.RiskProfile)
		require.Nil(t, advisory.Recommendations)
	})

	t.Run("market recommendations are gated on the intent flag", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		financialData := mock_repository.NewMockFinancialDataRepository(ctrl)
		knowledge := mock_repository.NewMockKnowledgeRepository(ctrl)
		marketData := mock_repository.NewMockMarketDataRepository(ctrl)
		history := mock_repository.NewMockChatHistoryRepository(ctrl)

		financialData.EXPECT().GetSnapshot(gomock.Any(), userID).Return(snapshot(), nil)
		portfolio := domain.PortfolioSummary{TotalInvestments: 800000, MonthlySavings: 45000}
		marketData.EXPECT().GetRecommendations(gomock.Any(), portfolio, domain.RiskProfileAggressive, "which stocks").
			Return(&domain.RecommendationSet{Stocks: []domain.StockRecommendation{{Symbol: "TCS.NS"}}}, nil)
		knowledge.EXPECT().Search(gomock.Any(), "which stocks", domain.CategoryStock, knowledgeTopK).Return(nil, nil)
		history.EXPECT().List(gomock.Any(), userID, historyTurnLimit).Return(nil, nil)

		svc := NewContextService(financialData, knowledge, marketData, history)
		advisory := svc.GatherContext(context.Background(), userID, "which stocks", domain.QueryIntent{
			Categories:                    []domain.Category{domain.CategoryStock},
			RequiresMarketRecommendations: true,
		})

		require.NotNil(t, advisory.Recommendations)
		require.Len(t, advisory.Recommendations.Stocks, 1)
	})

	t.Run("every read failing still yields an empty context, not an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		financialData := mock_repository.NewMockFinancialDataRepository(ctrl)
		knowledge := mock_repository.NewMockKnowledgeRepository(ctrl)
		marketData := mock_repository.NewMockMarketDataRepository(ctrl)
		history := mock_repository.NewMockChatHistoryRepository(ctrl)

		boom := errors.New("unavailable")
		financialData.EXPECT().GetSnapshot(gomock.Any(), userID).Return(nil, boom)
		knowledge.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, boom)
		history.EXPECT().List(gomock.Any(), userID, historyTurnLimit).Return(nil, boom)

		svc := NewContextService(financialData, knowledge, marketData, history)
		advisory := svc.GatherContext(context.Background(), userID, "anything", domain.QueryIntent{})

		require.NotNil(t, advisory)
		require.Nil(t, advisory.Snapshot)
		require.Empty(t, advisory.Knowledge)
		require.Empty(t, advisory.History)
	})
}

func Test_trimKnowledge(t *testing.T) {
	t.Run("keeps chunks until the budget runs out", func(t *testing.T) {
		chunks := []domain.KnowledgeChunk{
			{Content: strings.Repeat("a", 500)},
			{Content: strings.Repeat("b", 500)},
			{Content: strings.Repeat("c", 500)},
		}
		kept := trimKnowledge(chunks, 1200)
		require.Len(t, kept, 2)
	})

	t.Run("oversized first chunk is truncated, not dropped", func(t *testing.T) {
		chunks := []domain.KnowledgeChunk{{Content: strings.Repeat("a", 2000)}}
		kept := trimKnowledge(chunks, 1200)
		require.Len(t, kept, 1)
		require.Len(t, kept[0].Content, 1200)
	})

	t.Run("truncation never splits a multibyte rune", func(t *testing.T) {
		// ₹ is three bytes; a 1000-byte budget lands mid-rune
		chunks := []domain.KnowledgeChunk{{Content: strings.Repeat("₹", 500)}}
		kept := trimKnowledge(chunks, 1000)
		require.Len(t, kept, 1)
		require.True(t, utf8.ValidString(kept[0].Content))
		require.Len(t, kept[0].Content, 999)
	})
}
