package youtube

import (
	"context"
	"strings"

	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/infrastructure/cache"
	"github.com/yoyaktube/yyt/internal/infrastructure/metrics"
	"github.com/yoyaktube/yyt/internal/ports"
)

// CachingTranscriptService memoizes transcript fetches in a TTL store
// and retries one transient failure before giving up. The terminal
// no-captions result is surfaced immediately and never retried.
type CachingTranscriptService struct {
	inner  ports.TranscriptService
	store  *cache.Store[domain.Transcript]
	logger ports.Logger
}

// NewCachingTranscriptService wraps inner with a TTL cache. A nil clock
// means wall-clock time.
func NewCachingTranscriptService(inner ports.TranscriptService, clock ports.Clock, log ports.Logger) *CachingTranscriptService {
	return &CachingTranscriptService{
		inner:  inner,
		store:  cache.NewStore[domain.Transcript](cache.DefaultTTL, clock),
		logger: log,
	}
}

// Fetch implements ports.TranscriptService.
func (s *CachingTranscriptService) Fetch(ctx context.Context, videoID string, languages []string) (domain.Transcript, error) {
	key := videoID + "|" + strings.Join(languages, ",")
	metrics.CacheLookupsTotal.WithLabelValues("transcript").Inc()
	if cached, ok := s.store.Get(key); ok {
		metrics.CacheHitsTotal.WithLabelValues("transcript").Inc()
		return cached, nil
	}

	transcript, err := fetchOnceRetrying(ctx, s.logger, "transcript", func() (domain.Transcript, error) {
		return s.inner.Fetch(ctx, videoID, languages)
	})
	if err != nil {
		return domain.Transcript{}, err
	}
	s.store.Set(key, transcript)
	return transcript, nil
}

// CachingMetadataService memoizes metadata fetches the same way.
type CachingMetadataService struct {
	inner  ports.MetadataService
	store  *cache.Store[domain.VideoMetadata]
	logger ports.Logger
}

// NewCachingMetadataService wraps inner with a TTL cache.
func NewCachingMetadataService(inner ports.MetadataService, clock ports.Clock, log ports.Logger) *CachingMetadataService {
	return &CachingMetadataService{
		inner:  inner,
		store:  cache.NewStore[domain.VideoMetadata](cache.DefaultTTL, clock),
		logger: log,
	}
}

// Fetch implements ports.MetadataService.
func (s *CachingMetadataService) Fetch(ctx context.Context, videoID string) (domain.VideoMetadata, error) {
	metrics.CacheLookupsTotal.WithLabelValues("metadata").Inc()
	if cached, ok := s.store.Get(videoID); ok {
		metrics.CacheHitsTotal.WithLabelValues("metadata").Inc()
		return cached, nil
	}

	meta, err := fetchOnceRetrying(ctx, s.logger, "metadata", func() (domain.VideoMetadata, error) {
		return s.inner.Fetch(ctx, videoID)
	})
	if err != nil {
		return domain.VideoMetadata{}, err
	}
	s.store.Set(videoID, meta)
	return meta, nil
}

// fetchOnceRetrying calls fn and retries exactly once when the failure
// is transient. Transcript-unavailable and every other non-transient
// kind returns immediately.
func fetchOnceRetrying[T any](ctx context.Context, log ports.Logger, what string, fn func() (T, error)) (T, error) {
	value, err := fn()
	if err == nil || !domain.IsTransient(err) || ctx.Err() != nil {
		return value, err
	}
	if log != nil {
		log.Warn("transient "+what+" failure, retrying once", map[string]interface{}{"error": err.Error()})
	}
	return fn()
}

var (
	_ ports.TranscriptService = (*CachingTranscriptService)(nil)
	_ ports.MetadataService   = (*CachingMetadataService)(nil)
)
