// Package llm wraps the hosted text-generation backends. Failures are typed
// here and rendered to user-visible strings only at the orchestrator
// boundary, so a provider fault becomes reply text instead of a crash.
package llm

import (
	"context"
	"fmt"

	"github.com/tikona/stockchat/internal/config"
)

// Provider generates one reply for one fully assembled prompt.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// CredentialError reports a missing API key, detected before any network
// call is attempted.
type CredentialError struct {
	Provider string
	EnvVar   string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s API key not set. Please set %s in your environment.", e.Provider, e.EnvVar)
}

// HTTPError reports a non-success status from the provider.
type HTTPError struct {
	Provider string
	Status   int
	Body     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s API Error %d: %s", e.Provider, e.Status, e.Body)
}

// TransportError reports a network-level failure.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedError reports a response body that did not match the expected
// shape. Raw holds the body so rendering can fall back to it.
type MalformedError struct {
	Provider string
	Raw      string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s returned an unexpected response", e.Provider)
}

// RenderFailure converts a generation failure into the text shown to the
// user as the assistant reply. A malformed response renders its raw body
// rather than failing the turn.
func RenderFailure(err error) string {
	if malformed, ok := err.(*MalformedError); ok && malformed.Raw != "" {
		return malformed.Raw
	}
	return err.Error()
}

// NewProvider selects the text-generation backend from configuration.
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.LLMProvider {
	case "", "gemini":
		return NewGeminiClient(cfg), nil
	case "openai":
		return NewOpenAIClient(ctx, cfg)
	case "deepseek":
		return NewDeepSeekClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
