package domain

// Settings mirrors ~/.yyt/config.yaml. These are user preferences; the
// enabled-provider list is resolved separately (see the config resolver)
// and is never merged into this file.
type Settings struct {
	ConfigFormatVersion string      `yaml:"config_format_version"`
	Preferences         Preferences `yaml:"preferences"`
	Providers           Backends    `yaml:"providers"`
}

// Preferences captures user-level toggles.
type Preferences struct {
	// Languages is the caption language priority order.
	Languages []string `yaml:"languages"`
	// DefaultProvider is used when the caller does not pick one.
	DefaultProvider string  `yaml:"default_provider"`
	Temperature     float64 `yaml:"temperature"`
	MaxTokens       int     `yaml:"max_tokens"`
	TimeoutSeconds  int     `yaml:"timeout"`
}

// Backends holds per-provider defaults.
type Backends struct {
	OpenAI BackendSettings `yaml:"openai"`
	Gemini BackendSettings `yaml:"gemini"`
	Ollama BackendSettings `yaml:"ollama"`
}

// BackendSettings configures one backend's defaults. Credentials are
// never stored here; they come from the environment at request time.
type BackendSettings struct {
	Model string `yaml:"model"`
	// Host applies to the local provider only.
	Host string `yaml:"host,omitempty"`
}

// ModelFor returns the configured default model for a provider.
func (s Settings) ModelFor(name ProviderName) string {
	switch name {
	case ProviderOpenAI:
		return s.Providers.OpenAI.Model
	case ProviderGemini:
		return s.Providers.Gemini.Model
	case ProviderOllama:
		return s.Providers.Ollama.Model
	}
	return ""
}
