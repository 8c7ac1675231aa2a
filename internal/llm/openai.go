package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clarifi/internal/domain"

	"github.com/ayush6624/go-chatgpt"
)

// OpenAIProvider is the cloud fallback when the local endpoint is down.
type OpenAIProvider struct {
	client *chatgpt.Client
}

func NewOpenAIProvider(apiKey string) (*OpenAIProvider, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct openai client: %w", err)
	}
	return &OpenAIProvider{client: client}, nil
}

func (p *OpenAIProvider) ID() string { return "openai" }

// Probe only validates construction - the API exposes no cheap health
// endpoint, and a failed generation surfaces as a typed error anyway.
func (p *OpenAIProvider) Probe(ctx context.Context) error {
	if p.client == nil {
		return &ProviderError{Provider: p.ID(), Kind: ErrKindOther, Err: errors.New("client not configured")}
	}
	return nil
}

func (p *OpenAIProvider) modelFor(tier domain.ModelTier) chatgpt.ChatGPTModel {
	if tier == domain.TierDetailed {
		return chatgpt.GPT4
	}
	return chatgpt.GPT35Turbo
}

func (p *OpenAIProvider) Generate(ctx context.Context, genReq GenerateRequest) (string, error) {
	res, err := p.client.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: p.modelFor(genReq.Tier),
		Messages: []chatgpt.ChatMessage{
			{
				Role:    chatgpt.ChatGPTModelRoleUser,
				Content: genReq.Prompt,
			},
		},
		MaxTokens: genReq.MaxTokens,
	})
	if err != nil {
		return "", &ProviderError{Provider: p.ID(), Kind: classifyTransportError(err), Err: err}
	}

	if len(res.Choices) == 0 {
		return "", &ProviderError{
			Provider: p.ID(),
			Kind:     ErrKindOther,
			Err:      errors.New("response carried no choices"),
		}
	}

	text := strings.TrimSpace(res.Choices[0].Message.Content)
	if text == "" {
		return "", &ProviderError{
			Provider: p.ID(),
			Kind:     ErrKindOther,
			Err:      errors.New("empty completion"),
		}
	}
	return text, nil
}
