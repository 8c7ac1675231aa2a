// Package llm holds the generative back-end clients. Every provider sits
// behind the same narrow interface so the orchestrator can walk an
// ordered chain and short-circuit on the first usable response, keyed on
// typed errors rather than broad exception matching.
package llm

import (
	"context"
	"errors"
	"fmt"

	"clarifi/internal/domain"
)

type ErrorKind int

const (
	ErrKindOther ErrorKind = iota
	ErrKindTimeout
	ErrKindConnection
)

// ProviderError wraps a generation failure with enough type information
// for the orchestrator to decide between advancing the chain and
// re-probing the provider.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	switch e.Kind {
	case ErrKindTimeout:
		return fmt.Sprintf("%s: generation timed out: %v", e.Provider, e.Err)
	case ErrKindConnection:
		return fmt.Sprintf("%s: connection failed: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s: generation failed: %v", e.Provider, e.Err)
	}
}

func (e *ProviderError) Unwrap() error { return e.Err }

// KindOf extracts the error kind, defaulting to ErrKindOther for
// anything that isn't a ProviderError.
func KindOf(err error) ErrorKind {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ErrKindOther
}

type GenerateRequest struct {
	Prompt    string
	Tier      domain.ModelTier
	MaxTokens int
}

// Provider is one generative back-end. Generate must honor ctx
// cancellation - the orchestrator enforces per-tier deadlines through it.
type Provider interface {
	ID() string
	// Probe is a cheap availability check used during chain
	// initialization and after soft invalidation.
	Probe(ctx context.Context) error
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
