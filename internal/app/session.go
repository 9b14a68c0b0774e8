// Package app wires the application services to their infrastructure
// adapters.
package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yoyaktube/yyt/internal/application/channel"
	"github.com/yoyaktube/yyt/internal/application/summary"
	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/infrastructure/config"
	"github.com/yoyaktube/yyt/internal/infrastructure/llm"
	"github.com/yoyaktube/yyt/internal/infrastructure/youtube"
	"github.com/yoyaktube/yyt/internal/pkg/logger"
	"github.com/yoyaktube/yyt/internal/ports"
)

// Session is the dependency graph for one CLI invocation.
type Session struct {
	// ID tags log lines from this invocation.
	ID string

	Settings  domain.Settings
	Providers []domain.ProviderConfig

	Factory        *llm.Factory
	Transcripts    ports.TranscriptService
	Metadata       ports.MetadataService
	SummaryService *summary.Service
	ChannelService *channel.Service
	Logger         ports.Logger
}

// NewSession constructs the dependency graph.
func NewSession(ctx context.Context, verbose bool) (*Session, error) {
	id := uuid.New().String()
	log := logger.NewStd(verbose).WithTag(id[:8])

	settingsLoader := config.NewSettingsLoader("")
	settings, err := settingsLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	resolver := config.NewResolver(log)
	providers, err := resolver.Resolve()
	if err != nil {
		return nil, err
	}

	factory := llm.NewFactory(log)
	transcripts := youtube.NewCachingTranscriptService(youtube.NewTranscriptClient(), nil, log)
	metadata := youtube.NewCachingMetadataService(youtube.NewMetadataClient(), nil, log)

	summaryService := &summary.Service{
		Transcripts: transcripts,
		Metadata:    metadata,
		Factory:     factory,
		Logger:      log,
	}
	channelService := &channel.Service{
		Lister:     youtube.NewYtDlpLister(log),
		Metadata:   metadata,
		Summarizer: summaryService,
		Logger:     log,
	}

	return &Session{
		ID:             id,
		Settings:       settings,
		Providers:      providers,
		Factory:        factory,
		Transcripts:    transcripts,
		Metadata:       metadata,
		SummaryService: summaryService,
		ChannelService: channelService,
		Logger:         log,
	}, nil
}

// PickProvider chooses the provider for a run. An explicit override must
// name an enabled provider; otherwise the settings default wins when
// enabled, falling back to the first enabled provider.
func (s *Session) PickProvider(override string) (domain.ProviderConfig, error) {
	if len(s.Providers) == 0 {
		return domain.ProviderConfig{}, &domain.ConfigError{Field: "providers", Message: "no providers enabled"}
	}
	if override != "" {
		for _, cfg := range s.Providers {
			if string(cfg.Name) == override {
				return cfg, nil
			}
		}
		return domain.ProviderConfig{}, &domain.ConfigError{
			Provider: override,
			Field:    "providers",
			Message:  "provider is not enabled",
		}
	}
	if preferred := s.Settings.Preferences.DefaultProvider; preferred != "" {
		for _, cfg := range s.Providers {
			if string(cfg.Name) == preferred {
				return cfg, nil
			}
		}
	}
	return s.Providers[0], nil
}

// ModelFor resolves the model for a provider: explicit flag first, then
// the resolver's per-provider default, then the settings default.
func (s *Session) ModelFor(cfg domain.ProviderConfig, override string) string {
	if override != "" {
		return override
	}
	if cfg.DefaultModel != "" {
		return cfg.DefaultModel
	}
	return s.Settings.ModelFor(cfg.Name)
}

// SummaryRequest assembles a summary.Request from session defaults plus
// the caller's flags. Credentials come from the environment.
func (s *Session) SummaryRequest(cfg domain.ProviderConfig, modelOverride, videoRef string, languages []string) summary.Request {
	if len(languages) == 0 {
		languages = s.Settings.Preferences.Languages
	}
	return summary.Request{
		VideoRef:    videoRef,
		Provider:    cfg.Name,
		Model:       s.ModelFor(cfg, modelOverride),
		Credentials: config.CredentialsFromEnv(cfg.Name),
		Languages:   languages,
		Temperature: s.Settings.Preferences.Temperature,
		MaxTokens:   s.Settings.Preferences.MaxTokens,
	}
}
