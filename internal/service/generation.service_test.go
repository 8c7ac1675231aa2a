package service

import (
	"context"
	"errors"
	"testing"

	"clarifi/internal/domain"
	"clarifi/internal/llm"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	id       string
	probeErr error
	text     string
	genErr   error
	genCalls int
}

func (f *fakeProvider) ID() string { return f.id }

func (f *fakeProvider) Probe(ctx context.Context) error { return f.probeErr }

func (f *fakeProvider) Generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	f.genCalls++
	if f.genErr != nil {
		return "", f.genErr
	}
	return f.text, nil
}

func connectionErr(provider string) error {
	return &llm.ProviderError{Provider: provider, Kind: llm.ErrKindConnection, Err: errors.New("refused")}
}

func timeoutErr(provider string) error {
	return &llm.ProviderError{Provider: provider, Kind: llm.ErrKindTimeout, Err: errors.New("deadline")}
}

func Test_GenerateResponse_Chain(t *testing.T) {
	t.Run("uses first healthy provider", func(t *testing.T) {
		primary := &fakeProvider{id: "ollama", text: "An EMI is a fixed monthly loan payment."}
		secondary := &fakeProvider{id: "openai", text: "should not be reached."}
		svc := NewGenerationService(primary, secondary)

		result := svc.GenerateResponse(context.Background(), "what is an emi", domain.TierFast, &domain.AdvisoryContext{}, nil)

		require.Equal(t, "ollama", result.ProviderID)
		require.True(t, result.Complete)
		require.Zero(t, secondary.genCalls)
	})

	t.Run("failed probe skips straight to next provider", func(t *testing.T) {
		primary := &fakeProvider{id: "ollama", probeErr: connectionErr("ollama")}
		secondary := &fakeProvider{id: "openai", text: "A SIP invests a fixed amount every month."}
		svc := NewGenerationService(primary, secondary)

		result := svc.GenerateResponse(context.Background(), "what is a sip", domain.TierFast, &domain.AdvisoryContext{}, nil)

		require.Equal(t, "openai", result.ProviderID)
		require.Zero(t, primary.genCalls)
	})

	t.Run("timeout advances the chain", func(t *testing.T) {
		primary := &fakeProvider{id: "ollama", genErr: timeoutErr("ollama")}
		secondary := &fakeProvider{id: "openai", text: "Diversification spreads risk across assets."}
		svc := NewGenerationService(primary, secondary)

		result := svc.GenerateResponse(context.Background(), "explain diversification", domain.TierFast, &domain.AdvisoryContext{}, nil)

		require.Equal(t, "openai", result.ProviderID)
		require.Equal(t, 1, primary.genCalls)
	})

	t.Run("connection failure triggers reprobe on next request", func(t *testing.T) {
		primary := &fakeProvider{id: "ollama", genErr: connectionErr("ollama")}
		secondary := &fakeProvider{id: "openai", text: "Index funds track a market index at low cost."}
		svc := NewGenerationService(primary, secondary)

		first := svc.GenerateResponse(context.Background(), "what are index funds", domain.TierFast, &domain.AdvisoryContext{}, nil)
		require.Equal(t, "openai", first.ProviderID)

		// recovery: the primary comes back up before the next request
		primary.genErr = nil
		primary.text = "Index funds mirror an index like the Nifty 50."

		second := svc.GenerateResponse(context.Background(), "what are index funds", domain.TierFast, &domain.AdvisoryContext{}, nil)
		require.Equal(t, "ollama", second.ProviderID)
	})

	t.Run("success is cached so the probe runs once", func(t *testing.T) {
		primary := &fakeProvider{id: "ollama", text: "Compounding grows returns on prior returns."}
		svc := NewGenerationService(primary)

		svc.GenerateResponse(context.Background(), "q", domain.TierFast, &domain.AdvisoryContext{}, nil)
		svc.GenerateResponse(context.Background(), "q", domain.TierFast, &domain.AdvisoryContext{}, nil)

		require.Equal(t, 2, primary.genCalls)
	})

	t.Run("incomplete response is discarded, not surfaced", func(t *testing.T) {
		truncated := "You should consider investing in mutual funds and"
		primary := &fakeProvider{id: "ollama", text: truncated}
		secondary := &fakeProvider{id: "openai", genErr: timeoutErr("openai")}
		svc := NewGenerationService(primary, secondary)

		result := svc.GenerateResponse(context.Background(), "where to invest", domain.TierFast, &domain.AdvisoryContext{}, nil)

		require.Equal(t, 1, secondary.genCalls)
		require.Equal(t, fallbackProvider, result.ProviderID)
		require.True(t, result.Complete)
		require.NotContains(t, result.Text, truncated)
	})
}

func Test_GenerateResponse_FallbackGuarantee(t *testing.T) {
	snapshot := &domain.FinancialSnapshot{
		MonthlyIncome:    decimal.NewFromInt(100000),
		MonthlyExpenses:  decimal.NewFromInt(60000),
		TotalInvestments: decimal.NewFromInt(500000),
		TotalLoans:       decimal.NewFromInt(200000),
		SavingsRate:      40,
	}

	t.Run("all providers down yields template from snapshot", func(t *testing.T) {
		primary := &fakeProvider{id: "ollama", probeErr: connectionErr("ollama"), genErr: connectionErr("ollama")}
		secondary := &fakeProvider{id: "openai", probeErr: connectionErr("openai"), genErr: connectionErr("openai")}
		svc := NewGenerationService(primary, secondary)

		result := svc.GenerateResponse(context.Background(), "how are my finances", domain.TierFast,
			&domain.AdvisoryContext{Snapshot: snapshot}, nil)

		require.Equal(t, fallbackProvider, result.ProviderID)
		require.True(t, result.Complete)
		require.NotEmpty(t, result.Text)
		require.Contains(t, result.Text, "₹1,00,000")
	})

	t.Run("calculations outrank snapshot in the template", func(t *testing.T) {
		svc := NewGenerationService()

		calc := fakeCalculation{kind: domain.CalculationEMI, fields: []domain.CalculationField{
			{Label: "Monthly EMI", Value: "₹10,624"},
		}}
		result := svc.GenerateResponse(context.Background(), "emi for my loan", domain.TierFast,
			&domain.AdvisoryContext{Snapshot: snapshot}, []domain.Calculation{calc})

		require.Contains(t, result.Text, "₹10,624")
	})

	t.Run("no context at all still answers with a clarification", func(t *testing.T) {
		svc := NewGenerationService()

		result := svc.GenerateResponse(context.Background(), "hmm", domain.TierFast, &domain.AdvisoryContext{}, nil)

		require.True(t, result.Complete)
		require.NotEmpty(t, result.Text)
	})
}

type fakeCalculation struct {
	kind   domain.CalculationKind
	fields []domain.CalculationField
}

func (f fakeCalculation) Kind() domain.CalculationKind      { return f.kind }
func (f fakeCalculation) Fields() []domain.CalculationField { return f.fields }

func Test_looksComplete(t *testing.T) {
	complete := []string{
		"An EMI is a fixed monthly payment covering principal and interest.",
		"Yes - a SIP of ₹5,000 over 10 years is a solid start!",
		"Increase your equity allocation gradually (about 5% a year).",
	}
	incomplete := []string{
		"",
		"Yes.",
		"You should consider investing in mutual funds and",
		"The first thing to check is your savings rate, which is the",
		"Start by building an emergency fund, then look at",
		"Your portfolio could use more diversification, for example:",
	}

	for _, text := range complete {
		require.True(t, looksComplete(text), "expected complete: %q", text)
	}
	for _, text := range incomplete {
		require.False(t, looksComplete(text), "expected incomplete: %q", text)
	}
}
