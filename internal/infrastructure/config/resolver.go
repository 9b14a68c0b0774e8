// Package config resolves the enabled-provider list and loads user
// settings.
//
// The provider list comes from exactly one source, first match wins:
//
//  1. a JSON file named by the YYT_CONFIG environment variable
//  2. yoyaktube.config.json in the working directory
//  3. the YYT_PROVIDERS environment variable (comma-separated)
//  4. the built-in default order
//
// Sources never merge. An absent source (unset variable, missing file)
// falls through silently; a present file that fails to parse or lacks
// the providers key is a ConfigError.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/ports"
)

const (
	// EnvConfigPath names the JSON config file.
	EnvConfigPath = "YYT_CONFIG"
	// EnvProviders holds a comma-separated provider list.
	EnvProviders = "YYT_PROVIDERS"
	// DefaultConfigFile is looked up in the working directory.
	DefaultConfigFile = "yoyaktube.config.json"
)

// Resolver determines the ordered set of enabled providers. It holds no
// state between calls; every resolution re-reads the environment.
type Resolver struct {
	Logger ports.Logger
}

// NewResolver builds a Resolver.
func NewResolver(log ports.Logger) *Resolver {
	return &Resolver{Logger: log}
}

type providerFile struct {
	Providers []providerEntry `json:"providers"`
}

// providerEntry accepts both the shorthand string form ("openai") and
// the object form ({"name": "openai", "default_model": "gpt-5-mini"}).
type providerEntry struct {
	Name         string
	DefaultModel string
}

func (e *providerEntry) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		e.Name = name
		return nil
	}
	var obj struct {
		Name         string `json:"name"`
		DefaultModel string `json:"default_model"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	e.Name = obj.Name
	e.DefaultModel = obj.DefaultModel
	return nil
}

// Resolve returns the ordered provider configs for this session.
func (r *Resolver) Resolve() ([]domain.ProviderConfig, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		configs, found, err := r.fromFile(path)
		if err != nil {
			return nil, err
		}
		if found {
			return configs, nil
		}
	}

	if wd, err := os.Getwd(); err == nil {
		configs, found, err := r.fromFile(filepath.Join(wd, DefaultConfigFile))
		if err != nil {
			return nil, err
		}
		if found {
			return configs, nil
		}
	}

	if raw := os.Getenv(EnvProviders); raw != "" {
		var configs []domain.ProviderConfig
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			configs = append(configs, domain.ProviderConfig{Name: domain.ProviderName(name)})
		}
		if len(configs) > 0 {
			return r.sanitize(configs), nil
		}
	}

	if r.Logger != nil {
		r.Logger.Info("no provider configuration source found, using built-in default order", map[string]interface{}{
			"providers": domain.DefaultProviderOrder,
		})
	}
	configs := make([]domain.ProviderConfig, 0, len(domain.DefaultProviderOrder))
	for _, name := range domain.DefaultProviderOrder {
		configs = append(configs, domain.ProviderConfig{Name: name})
	}
	return configs, nil
}

// fromFile parses one JSON config file. A missing file reports
// found=false so the caller falls through to the next source; a present
// but unparseable file is a ConfigError.
func (r *Resolver) fromFile(path string) ([]domain.ProviderConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, &domain.ConfigError{
			Field:   path,
			Message: fmt.Sprintf("cannot read config file: %v", err),
		}
	}

	var parsed providerFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, false, &domain.ConfigError{
			Field:   path,
			Message: fmt.Sprintf("invalid JSON: %v", err),
		}
	}
	if parsed.Providers == nil {
		return nil, false, &domain.ConfigError{
			Field:   path,
			Message: `missing "providers" key`,
		}
	}

	configs := make([]domain.ProviderConfig, 0, len(parsed.Providers))
	for _, entry := range parsed.Providers {
		configs = append(configs, domain.ProviderConfig{
			Name:         domain.ProviderName(strings.TrimSpace(entry.Name)),
			DefaultModel: entry.DefaultModel,
		})
	}
	return r.sanitize(configs), true, nil
}

// sanitize drops unknown provider names; an emptied list falls back to
// openai alone.
func (r *Resolver) sanitize(configs []domain.ProviderConfig) []domain.ProviderConfig {
	kept := configs[:0]
	for _, cfg := range configs {
		if domain.KnownProvider(cfg.Name) {
			kept = append(kept, cfg)
			continue
		}
		if r.Logger != nil {
			r.Logger.Warn("ignoring unknown provider", map[string]interface{}{"provider": cfg.Name})
		}
	}
	if len(kept) == 0 {
		return []domain.ProviderConfig{{Name: domain.ProviderOpenAI}}
	}
	return kept
}

// CredentialsFromEnv gathers the credential material a provider needs
// from the environment. Presence is validated later, by the factory.
func CredentialsFromEnv(name domain.ProviderName) domain.Credentials {
	switch name {
	case domain.ProviderOpenAI:
		return domain.Credentials{APIKey: os.Getenv("OPENAI_API_KEY")}
	case domain.ProviderGemini:
		return domain.Credentials{APIKey: os.Getenv("GEMINI_API_KEY")}
	case domain.ProviderOllama:
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = "http://localhost:11434"
		}
		return domain.Credentials{Host: host}
	}
	return domain.Credentials{}
}
