// Package ports defines the interfaces between the application core and
// the infrastructure adapters.
//
// The application services depend only on these contracts; concrete
// implementations (HTTP provider clients, the YouTube adapters, the
// yt-dlp lister) live in the infrastructure layer and are wired together
// by the session container.
package ports

import (
	"context"
	"time"

	"github.com/yoyaktube/yyt/internal/domain"
)

// Provider is the common capability set every LLM backend adapter
// implements. Callers never branch on provider identity; differences in
// credential shape, endpoint, and payload format stay inside the
// adapters.
type Provider interface {
	// Name identifies the backend (openai, gemini, ollama).
	Name() domain.ProviderName

	// ListModels returns the model names the backend currently serves,
	// in the backend's own order.
	ListModels(ctx context.Context) ([]string, error)

	// Generate performs single-shot text generation from req.Prompt.
	Generate(ctx context.Context, req domain.Request) (domain.Response, error)

	// Chat sends the ordered history plus one new user message and
	// returns the assistant reply. It never mutates the caller's
	// history; persisting the returned turn is the caller's job.
	Chat(ctx context.Context, history []domain.ChatMessage, message string, req domain.Request) (domain.Response, error)
}

// ProviderFactory hands out cached provider clients keyed by
// (provider, model, credential fingerprint).
type ProviderFactory interface {
	GetOrCreate(name domain.ProviderName, model string, creds domain.Credentials) (Provider, error)
}

// TranscriptService fetches the caption track for a video, trying the
// caller's languages in priority order before falling back to any
// auto-generated track.
type TranscriptService interface {
	Fetch(ctx context.Context, videoID string, languages []string) (domain.Transcript, error)
}

// MetadataService fetches title, channel, duration, view count, and
// upload date for a video.
type MetadataService interface {
	Fetch(ctx context.Context, videoID string) (domain.VideoMetadata, error)
}

// ChannelLister returns a channel's uploads as an externally supplied
// listing; date filtering happens on top of it.
type ChannelLister interface {
	List(ctx context.Context, channelURL string, limit int) ([]domain.VideoListing, error)
}

// SettingsProvider loads user preferences from persistent storage.
type SettingsProvider interface {
	Load(context.Context) (domain.Settings, error)
}

// Logger is the structured logging abstraction used across layers.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}

// Clock abstracts time for the TTL caches so expiry is testable.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }
