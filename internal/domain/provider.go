// Package domain defines the core entities and value objects for YoYakTube.
//
// The domain layer is independent of infrastructure concerns: provider
// adapters, HTTP clients, and caches all depend on these types, never the
// other way around.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// ProviderName identifies one LLM backend.
type ProviderName string

const (
	ProviderOpenAI ProviderName = "openai"
	ProviderGemini ProviderName = "gemini"
	ProviderOllama ProviderName = "ollama"
)

// DefaultProviderOrder is the hard-coded fallback when no configuration
// source yields a provider list.
var DefaultProviderOrder = []ProviderName{ProviderOpenAI, ProviderGemini, ProviderOllama}

// KnownProvider reports whether name is one of the supported backends.
func KnownProvider(name ProviderName) bool {
	switch name {
	case ProviderOpenAI, ProviderGemini, ProviderOllama:
		return true
	}
	return false
}

// ProviderConfig identifies one enabled backend for the session. Created
// at configuration-resolution time and immutable afterwards.
type ProviderConfig struct {
	Name ProviderName `json:"name"`
	// DefaultModel is used when the caller does not pick a model.
	DefaultModel string `json:"default_model,omitempty"`
}

// Credentials carries whatever one backend needs to authenticate: hosted
// providers use APIKey, the local provider uses Host.
type Credentials struct {
	APIKey string
	// Host is the base URL of a locally hosted provider.
	Host string
}

// Fingerprint derives a stable, non-reversible key component from the
// credentials so the client cache can detect credential changes without
// holding raw secrets in its keys.
func (c Credentials) Fingerprint() string {
	sum := sha256.Sum256([]byte(c.APIKey + "\x00" + c.Host))
	return hex.EncodeToString(sum[:8])
}

// ChatMessage follows the role/content pair required by every chat API.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request is the provider-agnostic description of one generation or chat
// call. Constructed per call; never persisted.
type Request struct {
	Model       string
	Prompt      string
	Messages    []ChatMessage
	Temperature float64
	MaxTokens   int
}

// Usage reports token consumption when the provider exposes it.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the normalized result of a generation or chat call.
type Response struct {
	Content string
	Model   string
	Usage   Usage
	// Raw keeps the undecoded provider payload for diagnostics.
	Raw []byte
}
