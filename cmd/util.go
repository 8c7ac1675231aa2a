package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"clarifi/api"
	"clarifi/internal/llm"
	"clarifi/internal/repository"
	"clarifi/internal/service"
	"clarifi/internal/util"

	_ "github.com/lib/pq"
)

func CloseDependencies(handler *api.ApiHandler) {
	err := handler.Db.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	financialDataRepository := repository.NewFinancialDataRepository(dbConn)
	chatHistoryRepository := repository.NewChatHistoryRepository(dbConn)

	knowledgeRepository, err := repository.NewKnowledgeRepository()
	if err != nil {
		return nil, err
	}

	marketDataRepository, err := repository.NewMarketDataRepository(
		time.Duration(secrets.CacheTTLSecs) * time.Second,
	)
	if err != nil {
		return nil, err
	}

	providers := []llm.Provider{
		llm.NewOllamaProvider(
			secrets.Ollama.BaseUrl,
			secrets.Ollama.FastModel,
			secrets.Ollama.DetailedModel,
		),
	}
	if secrets.OpenAIApiKey != "" {
		openaiProvider, err := llm.NewOpenAIProvider(secrets.OpenAIApiKey)
		if err != nil {
			return nil, err
		}
		providers = append(providers, openaiProvider)
	}

	contextService := service.NewContextService(
		financialDataRepository,
		knowledgeRepository,
		marketDataRepository,
		chatHistoryRepository,
	)
	calculationService := service.NewCalculationService()
	generationService := service.NewGenerationService(providers...)
	chatService := service.NewChatService(
		contextService,
		calculationService,
		generationService,
		chatHistoryRepository,
	)
	analyticsService := service.NewAnalyticsService(financialDataRepository)

	apiHandler := &api.ApiHandler{
		Db:                   dbConn,
		ChatService:          chatService,
		AnalyticsService:     analyticsService,
		MarketDataRepository: marketDataRepository,
		JwtSecret:            secrets.JwtSecret,
	}

	return apiHandler, nil
}
