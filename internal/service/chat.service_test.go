package service

import (
	"context"
	"errors"
	"testing"

	"clarifi/internal/domain"
	mock_repository "clarifi/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeContextService struct {
	advisory *domain.AdvisoryContext
}

func (f fakeContextService) GatherContext(ctx context.Context, userID uuid.UUID, query string, intent domain.QueryIntent) *domain.AdvisoryContext {
	return f.advisory
}

type fakeCalculationService struct {
	calcs []domain.Calculation
}

func (f fakeCalculationService) RunCalculations(ctx context.Context, message string, intent domain.QueryIntent, snapshot *domain.FinancialSnapshot) []domain.Calculation {
	return f.calcs
}

type fakeGenerationService struct {
	result domain.ProviderResult
}

func (f fakeGenerationService) GenerateResponse(ctx context.Context, query string, tier domain.ModelTier, advisory *domain.AdvisoryContext, calcs []domain.Calculation) domain.ProviderResult {
	return f.result
}

func Test_AnswerQuestion(t *testing.T) {
	userID := uuid.New()

	newService := func(history *mock_repository.MockChatHistoryRepository, advisory *domain.AdvisoryContext, calcs []domain.Calculation) ChatService {
		return NewChatService(
			fakeContextService{advisory: advisory},
			fakeCalculationService{calcs: calcs},
			fakeGenerationService{result: domain.ProviderResult{
				Text:       "A SIP invests a fixed amount monthly.",
				ProviderID: "ollama",
				Complete:   true,
			}},
			history,
		)
	}

	t.Run("persists both turns and reports sources", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		history := mock_repository.NewMockChatHistoryRepository(ctrl)

		history.EXPECT().Add(gomock.Any(), userID, gomock.Any()).Return(nil).Times(2)

		advisory := &domain.AdvisoryContext{
			Snapshot:  &domain.FinancialSnapshot{MonthlyIncome: decimal.NewFromInt(80000)},
			Knowledge: []domain.KnowledgeChunk{{Content: "SIPs average your cost."}},
		}
		calc := fakeCalculation{kind: domain.CalculationSIP}

		svc := newService(history, advisory, []domain.Calculation{calc})
		resp, err := svc.AnswerQuestion(context.Background(), userID, "calculate sip of 5000 for 10 years")

		require.NoError(t, err)
		require.Equal(t, "A SIP invests a fixed amount monthly.", resp.Response)
		require.ElementsMatch(t, []string{sourceKnowledgeBase, sourceFinancialData, sourceCalculations}, resp.SourcesUsed)
	})

	t.Run("persistence failure never blocks the answer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		history := mock_repository.NewMockChatHistoryRepository(ctrl)

		history.EXPECT().Add(gomock.Any(), userID, gomock.Any()).
			Return(errors.New("db unavailable")).Times(2)

		svc := newService(history, &domain.AdvisoryContext{}, nil)
		resp, err := svc.AnswerQuestion(context.Background(), userID, "what is a sip")

		require.NoError(t, err)
		require.NotEmpty(t, resp.Response)
		require.Empty(t, resp.SourcesUsed)
	})

	t.Run("empty message is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		history := mock_repository.NewMockChatHistoryRepository(ctrl)

		svc := newService(history, &domain.AdvisoryContext{}, nil)
		_, err := svc.AnswerQuestion(context.Background(), userID, "")

		require.Error(t, err)
	})
}
