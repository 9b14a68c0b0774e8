// Package llm implements the provider client adapters, the client
// cache, and the retry wrapper around every outbound call.
//
// One adapter exists per backend (OpenAI, Gemini, Ollama); each
// normalizes "list models", "generate", and "chat" onto the common
// ports.Provider shape. The factory caches constructed clients by
// (provider, model, credential fingerprint) for the lifetime of the
// owning session.
package llm

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/ports"
)

const httpClientTimeout = 60 * time.Second

// Factory constructs and caches provider clients. It maintains a single
// HTTP client shared across all of them.
type Factory struct {
	httpClient *http.Client
	policy     Policy
	logger     ports.Logger

	mu      sync.Mutex
	clients map[string]ports.Provider
}

// NewFactory creates a factory with the default retry policy.
func NewFactory(log ports.Logger) *Factory {
	return &Factory{
		httpClient: &http.Client{Timeout: httpClientTimeout},
		policy:     DefaultPolicy(),
		logger:     log,
		clients:    make(map[string]ports.Provider),
	}
}

// NewFactoryWithPolicy creates a factory with a custom retry policy.
func NewFactoryWithPolicy(log ports.Logger, policy Policy) *Factory {
	f := NewFactory(log)
	f.policy = policy
	return f
}

// GetOrCreate returns the cached client for the key, constructing one on
// first use. Credential validation happens before construction, so a
// failed construction never populates the cache. Handles are never
// evicted; discarding the factory with the session discards them all.
func (f *Factory) GetOrCreate(name domain.ProviderName, model string, creds domain.Credentials) (ports.Provider, error) {
	if err := validateCredentials(name, creds); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s|%s|%s", name, model, creds.Fingerprint())

	f.mu.Lock()
	defer f.mu.Unlock()
	if client, ok := f.clients[key]; ok {
		return client, nil
	}

	var inner ports.Provider
	switch name {
	case domain.ProviderOpenAI:
		inner = newOpenAIClient(model, creds, f.httpClient)
	case domain.ProviderGemini:
		inner = newGeminiClient(model, creds, f.httpClient)
	case domain.ProviderOllama:
		inner = newOllamaClient(model, creds, f.httpClient)
	default:
		return nil, &domain.ConfigError{
			Provider: string(name),
			Message:  "unsupported provider",
		}
	}

	client := newRetryingProvider(inner, f.policy, f.logger)
	f.clients[key] = client
	return client, nil
}

// Size reports the number of cached client handles.
func (f *Factory) Size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

func validateCredentials(name domain.ProviderName, creds domain.Credentials) error {
	switch name {
	case domain.ProviderOpenAI, domain.ProviderGemini:
		if creds.APIKey == "" {
			return &domain.ConfigError{
				Provider: string(name),
				Field:    "api_key",
				Message:  "API key is required",
			}
		}
	case domain.ProviderOllama:
		if creds.Host == "" {
			return &domain.ConfigError{
				Provider: string(name),
				Field:    "host",
				Message:  "host URL is required",
			}
		}
	}
	return nil
}

var _ ports.ProviderFactory = (*Factory)(nil)
