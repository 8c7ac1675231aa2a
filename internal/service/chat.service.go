package service

import (
	"context"
	"errors"
	"time"

	"clarifi/internal/domain"
	"clarifi/internal/intent"
	"clarifi/internal/logger"
	"clarifi/internal/repository"

	"github.com/google/uuid"
)

// source labels surfaced to the user alongside each answer
const (
	sourceKnowledgeBase = "knowledge base"
	sourceFinancialData = "financial data"
	sourceCalculations  = "calculations"
	sourceMarketData    = "market data"
)

// ChatService is the request-scoped advisory pipeline: classify, gather
// context, calculate, generate, persist. Persistence failures are logged
// and never block the conversation.
type ChatService interface {
	AnswerQuestion(ctx context.Context, userID uuid.UUID, message string) (*domain.ChatResponse, error)
	GetHistory(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ChatTurn, error)
	ClearHistory(ctx context.Context, userID uuid.UUID) error
}

type chatServiceHandler struct {
	ContextService        ContextService
	CalculationService    CalculationService
	GenerationService     GenerationService
	ChatHistoryRepository repository.ChatHistoryRepository
}

func NewChatService(
	contextService ContextService,
	calculationService CalculationService,
	generationService GenerationService,
	chatHistoryRepository repository.ChatHistoryRepository,
) ChatService {
	return chatServiceHandler{
		ContextService:        contextService,
		CalculationService:    calculationService,
		GenerationService:     generationService,
		ChatHistoryRepository: chatHistoryRepository,
	}
}

func (h chatServiceHandler) AnswerQuestion(ctx context.Context, userID uuid.UUID, message string) (*domain.ChatResponse, error) {
	if message == "" {
		return nil, errors.New("message is required")
	}
	log := logger.FromContext(ctx)

	if err := h.ChatHistoryRepository.Add(ctx, userID, domain.ChatTurn{
		Role:      domain.ChatRoleUser,
		Content:   message,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		log.Warnf("failed to persist user turn: %v", err)
	}

	queryIntent := intent.Classify(message)
	tier := intent.ClassifyComplexity(message)

	advisory := h.ContextService.GatherContext(ctx, userID, message, queryIntent)

	calcs := h.CalculationService.RunCalculations(ctx, message, queryIntent, advisory.Snapshot)

	result := h.GenerationService.GenerateResponse(ctx, message, tier, advisory, calcs)
	log.Infow("generated response",
		"provider", result.ProviderID,
		"complete", result.Complete,
		"tier", tier,
	)

	if err := h.ChatHistoryRepository.Add(ctx, userID, domain.ChatTurn{
		Role:      domain.ChatRoleAssistant,
		Content:   result.Text,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		log.Warnf("failed to persist assistant turn: %v", err)
	}

	return &domain.ChatResponse{
		Response:    result.Text,
		Timestamp:   time.Now().UTC(),
		SourcesUsed: sourcesUsed(advisory, calcs),
	}, nil
}

func sourcesUsed(advisory *domain.AdvisoryContext, calcs []domain.Calculation) []string {
	sources := []string{}
	if advisory != nil && len(advisory.Knowledge) > 0 {
		sources = append(sources, sourceKnowledgeBase)
	}
	if advisory != nil && advisory.Snapshot != nil {
		sources = append(sources, sourceFinancialData)
	}
	if len(calcs) > 0 {
		sources = append(sources, sourceCalculations)
	}
	if advisory != nil && advisory.Recommendations != nil && len(advisory.Recommendations.Stocks) > 0 {
		sources = append(sources, sourceMarketData)
	}
	return sources
}

func (h chatServiceHandler) GetHistory(ctx context.Context, userID uuid.UUID, limit int) ([]domain.ChatTurn, error) {
	return h.ChatHistoryRepository.List(ctx, userID, limit)
}

func (h chatServiceHandler) ClearHistory(ctx context.Context, userID uuid.UUID) error {
	return h.ChatHistoryRepository.Clear(ctx, userID)
}
