package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/pkg/filesystem"
	"github.com/yoyaktube/yyt/internal/ports"
)

// SettingsLoader loads YAML user preferences from ~/.yyt/config.yaml
// (overridable via YYT_SETTINGS).
type SettingsLoader struct {
	overridePath string
}

// NewSettingsLoader builds a new loader.
func NewSettingsLoader(path string) *SettingsLoader {
	return &SettingsLoader{overridePath: path}
}

// Load implements ports.SettingsProvider.
func (l *SettingsLoader) Load(context.Context) (domain.Settings, error) {
	path := l.resolvePath()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			settings := defaultSettings()
			if err := writeDefault(path, settings); err != nil {
				return domain.Settings{}, err
			}
			return settings, nil
		}
		return domain.Settings{}, err
	}

	var settings domain.Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, err
	}

	return hydrateDefaults(settings), nil
}

func (l *SettingsLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("YYT_SETTINGS"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".yyt", "config.yaml")
}

func writeDefault(path string, settings domain.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func defaultSettings() domain.Settings {
	return domain.Settings{
		ConfigFormatVersion: "1",
		Preferences: domain.Preferences{
			Languages:       []string{"ko", "en", "ja"},
			DefaultProvider: string(domain.ProviderOpenAI),
			Temperature:     0.2,
			MaxTokens:       2048,
			TimeoutSeconds:  60,
		},
		Providers: domain.Backends{
			OpenAI: domain.BackendSettings{Model: "gpt-5-mini"},
			Gemini: domain.BackendSettings{Model: "gemini-2.0-flash"},
			Ollama: domain.BackendSettings{Model: "llama3.1", Host: "http://localhost:11434"},
		},
	}
}

func hydrateDefaults(settings domain.Settings) domain.Settings {
	defaults := defaultSettings()
	if len(settings.Preferences.Languages) == 0 {
		settings.Preferences.Languages = defaults.Preferences.Languages
	}
	if settings.Preferences.DefaultProvider == "" {
		settings.Preferences.DefaultProvider = defaults.Preferences.DefaultProvider
	}
	if settings.Preferences.Temperature == 0 {
		settings.Preferences.Temperature = defaults.Preferences.Temperature
	}
	if settings.Preferences.MaxTokens == 0 {
		settings.Preferences.MaxTokens = defaults.Preferences.MaxTokens
	}
	if settings.Preferences.TimeoutSeconds == 0 {
		settings.Preferences.TimeoutSeconds = defaults.Preferences.TimeoutSeconds
	}
	if settings.Providers.OpenAI.Model == "" {
		settings.Providers.OpenAI.Model = defaults.Providers.OpenAI.Model
	}
	if settings.Providers.Gemini.Model == "" {
		settings.Providers.Gemini.Model = defaults.Providers.Gemini.Model
	}
	if settings.Providers.Ollama.Model == "" {
		settings.Providers.Ollama.Model = defaults.Providers.Ollama.Model
	}
	if settings.Providers.Ollama.Host == "" {
		settings.Providers.Ollama.Host = defaults.Providers.Ollama.Host
	}
	return settings
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.SettingsProvider = (*SettingsLoader)(nil)
