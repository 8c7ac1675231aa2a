package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"clarifi/internal/domain"
)

// OllamaProvider talks to a local Ollama server over its HTTP API. It is
// the primary back-end: free, local, and private, but the most likely to
// be down, hence the probe-before-use contract.
type OllamaProvider struct {
	BaseUrl       string
	FastModel     string
	DetailedModel string
	Client        *http.Client
}

func NewOllamaProvider(baseUrl, fastModel, detailedModel string) *OllamaProvider {
	return &OllamaProvider{
		BaseUrl:       strings.TrimRight(baseUrl, "/"),
		FastModel:     fastModel,
		DetailedModel: detailedModel,
		Client:        &http.Client{},
	}
}

func (p *OllamaProvider) ID() string { return "ollama" }

func (p *OllamaProvider) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseUrl+"/api/tags", nil)
	if err != nil {
		return &ProviderError{Provider: p.ID(), Kind: ErrKindOther, Err: err}
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return &ProviderError{Provider: p.ID(), Kind: classifyTransportError(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ProviderError{
			Provider: p.ID(),
			Kind:     ErrKindConnection,
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
	return nil
}

type ollamaGenerateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (p *OllamaProvider) modelFor(tier domain.ModelTier) string {
	if tier == domain.TierDetailed {
		return p.DetailedModel
	}
	return p.FastModel
}

func (p *OllamaProvider) Generate(ctx context.Context, genReq GenerateRequest) (string, error) {
	body := ollamaGenerateRequest{
		Model:  p.modelFor(genReq.Tier),
		Prompt: genReq.Prompt,
		Stream: false,
		Options: map[string]interface{}{
			"temperature": 0.7,
			"top_p":       0.9,
			"num_predict": genReq.MaxTokens,
			"num_ctx":     2048,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", &ProviderError{Provider: p.ID(), Kind: ErrKindOther, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseUrl+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", &ProviderError{Provider: p.ID(), Kind: ErrKindOther, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: p.ID(), Kind: classifyTransportError(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &ProviderError{
			Provider: p.ID(),
			Kind:     ErrKindOther,
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, string(raw)),
		}
	}

	var parsed ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &ProviderError{Provider: p.ID(), Kind: ErrKindOther, Err: err}
	}

	text := strings.TrimSpace(parsed.Response)
	if text == "" {
		return "", &ProviderError{
			Provider: p.ID(),
			Kind:     ErrKindOther,
			Err:      errors.New("empty response body"),
		}
	}
	return text, nil
}

func classifyTransportError(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrKindTimeout
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return ErrKindTimeout
		}
		return ErrKindConnection
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrKindTimeout
	}
	return ErrKindOther
}
