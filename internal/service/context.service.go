package service

import (
	"context"

	"clarifi/internal/domain"
	"clarifi/internal/logger"
	"clarifi/internal/repository"
	"clarifi/internal/rules"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	knowledgeTopK      = 3
	knowledgeCharLimit = 1200
	historyTurnLimit   = 6
)

// ContextService assembles the advisory context for one message. The
// three external reads are independent and issued concurrently; each
// failure degrades to an empty slot and a warn log, never an error.
type ContextService interface {
	GatherContext(ctx context.Context, userID uuid.UUID, query string, intent domain.QueryIntent) *domain.AdvisoryContext
}

type contextServiceHandler struct {
	FinancialDataRepository repository.FinancialDataRepository
	KnowledgeRepository     repository.KnowledgeRepository
	MarketDataRepository    repository.MarketDataRepository
	ChatHistoryRepository   repository.ChatHistoryRepository
}

func NewContextService(
	financialDataRepository repository.FinancialDataRepository,
	knowledgeRepository repository.KnowledgeRepository,
	marketDataRepository repository.MarketDataRepository,
	chatHistoryRepository repository.ChatHistoryRepository,
) ContextService {
	return contextServiceHandler{
		FinancialDataRepository: financialDataRepository,
		KnowledgeRepository:     knowledgeRepository,
		MarketDataRepository:    marketDataRepository,
		ChatHistoryRepository:   chatHistoryRepository,
	}
}

func (h contextServiceHandler) GatherContext(ctx context.Context, userID uuid.UUID, query string, intent domain.QueryIntent) *domain.AdvisoryContext {
	log := logger.FromContext(ctx)
	advisory := &domain.AdvisoryContext{}

	g, gctx := errgroup.WithContext(ctx)

	// recommendations need the risk profile, so they chain behind the
	// snapshot rather than running as a third independent read
	g.Go(func() error {
		snapshot, err := h.FinancialDataRepository.GetSnapshot(gctx, userID)
		if err != nil {
			log.Warnf("snapshot unavailable, degrading context: %v", err)
			return nil
		}
		snapshot.SavingsRate = rules.CalculateSavingsRate(
			snapshot.MonthlyIncome.InexactFloat64(),
			snapshot.MonthlyExpenses.InexactFloat64(),
		)
		snapshot.RiskProfile = domain.DeriveRiskProfile(snapshot.SavingsRate)
		advisory.Snapshot = snapshot

		if intent.RequiresMarketRecommendations {
			portfolio := domain.PortfolioSummary{
				TotalInvestments: snapshot.TotalInvestments.InexactFloat64(),
				MonthlySavings:   snapshot.MonthlySavings.InexactFloat64(),
			}
			recs, err := h.MarketDataRepository.GetRecommendations(gctx, portfolio, snapshot.RiskProfile, query)
			if err != nil {
				log.Warnf("market recommendations unavailable, degrading context: %v", err)
				return nil
			}
			advisory.Recommendations = recs
		}
		return nil
	})

	g.Go(func() error {
		category := domain.Category("")
		if len(intent.Categories) > 0 {
			category = intent.Categories[0]
		}
		chunks, err := h.KnowledgeRepository.Search(gctx, query, category, knowledgeTopK)
		if err != nil {
			log.Warnf("knowledge search unavailable, degrading context: %v", err)
			return nil
		}
		advisory.Knowledge = trimKnowledge(chunks, knowledgeCharLimit)
		return nil
	})

	g.Go(func() error {
		turns, err := h.ChatHistoryRepository.List(gctx, userID, historyTurnLimit)
		if err != nil {
			log.Warnf("chat history unavailable, degrading context: %v", err)
			return nil
		}
		advisory.History = turns
		return nil
	})

	// goroutines swallow their own failures; Wait is for completion only
	_ = g.Wait()

	return advisory
}

// trimKnowledge keeps chunks in relevance order until the character
// budget runs out. The first chunk is always kept, truncated if it
// alone exceeds the budget.
func trimKnowledge(chunks []domain.KnowledgeChunk, charLimit int) []domain.KnowledgeChunk {
	kept := []domain.KnowledgeChunk{}
	used := 0
	for i, chunk := range chunks {
		if used+len(chunk.Content) > charLimit {
			if i == 0 {
				chunk.Content = clip(chunk.Content, charLimit)
				kept = append(kept, chunk)
			}
			break
		}
		used += len(chunk.Content)
		kept = append(kept, chunk)
	}
	return kept
}
