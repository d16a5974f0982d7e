// Package llm provides the text-generation collaborator backends. The core
// pipeline depends only on the domain.Generator contract; each backend owns
// its own wire format.
package llm

import (
	"fmt"

	"github.com/user/build-triage/internal/domain"
)

// Supported backend names.
const (
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
)

// Options carries backend connection settings. Zero values fall back to
// sensible defaults inside each constructor.
type Options struct {
	Model         string
	OllamaURL     string
	OpenAIBaseURL string
	OpenAIAPIKey  string
}

// New resolves a backend name to a Generator. Selection happens exactly once
// at startup; there is no mid-run failover between backends.
func New(backend string, opts Options) (domain.Generator, error) {
	switch backend {
	case BackendOllama:
		return NewOllamaGenerator(opts.OllamaURL, opts.Model), nil
	case BackendOpenAI:
		if opts.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai backend requires an API key")
		}
		return NewOpenAIGenerator(opts.OpenAIBaseURL, opts.OpenAIAPIKey, opts.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm backend %q", backend)
	}
}
