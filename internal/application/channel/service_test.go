package channel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yoyaktube/yyt/internal/application/summary"
	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/pkg/logger"
	"github.com/yoyaktube/yyt/internal/ports"
)

type stubLister struct {
	listings []domain.VideoListing
	err      error
	limit    int
}

func (s *stubLister) List(ctx context.Context, channelURL string, limit int) ([]domain.VideoListing, error) {
	s.limit = limit
	return s.listings, s.err
}

type stubMetadata struct {
	dates map[string]string
}

func (s *stubMetadata) Fetch(ctx context.Context, videoID string) (domain.VideoMetadata, error) {
	date, ok := s.dates[videoID]
	if !ok {
		return domain.VideoMetadata{}, &domain.NetworkError{Provider: "youtube", Message: "not found"}
	}
	return domain.VideoMetadata{VideoID: videoID, UploadDate: date}, nil
}

type stubTranscripts struct {
	errFor map[string]error
}

func (s *stubTranscripts) Fetch(ctx context.Context, videoID string, languages []string) (domain.Transcript, error) {
	if err, ok := s.errFor[videoID]; ok {
		return domain.Transcript{}, err
	}
	return domain.Transcript{
		VideoID: videoID,
		Lines:   []domain.TranscriptLine{{Text: "content of " + videoID}},
	}, nil
}

type stubProvider struct{}

func (stubProvider) Name() domain.ProviderName                 { return domain.ProviderOpenAI }
func (stubProvider) ListModels(context.Context) ([]string, error) { return nil, nil }

func (stubProvider) Generate(ctx context.Context, req domain.Request) (domain.Response, error) {
	return domain.Response{Content: "summary", Model: req.Model}, nil
}

func (stubProvider) Chat(ctx context.Context, history []domain.ChatMessage, message string, req domain.Request) (domain.Response, error) {
	return domain.Response{Content: "answer"}, nil
}

type stubFactory struct{}

func (stubFactory) GetOrCreate(domain.ProviderName, string, domain.Credentials) (ports.Provider, error) {
	return stubProvider{}, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestService(lister *stubLister, metadata ports.MetadataService, transcripts ports.TranscriptService) *Service {
	log := logger.NewStd(false)
	return &Service{
		Lister:   lister,
		Metadata: metadata,
		Summarizer: &summary.Service{
			Transcripts: transcripts,
			Metadata:    metadata,
			Factory:     stubFactory{},
			Logger:      log,
		},
		Clock:  fixedClock{now: time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)},
		Logger: log,
	}
}

func baseRequest() Request {
	return Request{
		ChannelURL: "https://www.youtube.com/@channel",
		DateExpr:   "7",
		MaxVideos:  10,
		Base: summary.Request{
			Provider:    domain.ProviderOpenAI,
			Model:       "gpt-5-mini",
			Credentials: domain.Credentials{APIKey: "sk-test"},
			Languages:   []string{"en"},
		},
	}
}

func TestRunFiltersByDateRange(t *testing.T) {
	lister := &stubLister{listings: []domain.VideoListing{
		{VideoID: "vidInRange1", Title: "in range", UploadDate: "20250812"},
		{VideoID: "vidTooOld01", Title: "too old", UploadDate: "20250701"},
		{VideoID: "vidInRange2", Title: "also in", UploadDate: "20250815"},
	}}
	metadata := &stubMetadata{dates: map[string]string{}}
	svc := newTestService(lister, metadata, &stubTranscripts{})

	digest, err := svc.Run(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if lister.limit != 10 {
		t.Errorf("limit = %d, want 10", lister.limit)
	}
	if len(digest.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(digest.Items))
	}
	for _, item := range digest.Items {
		if item.Err != nil {
			t.Errorf("item %s failed: %v", item.Listing.VideoID, item.Err)
		}
		if item.Result.Summary != "summary" {
			t.Errorf("item %s summary = %q", item.Listing.VideoID, item.Result.Summary)
		}
	}
}

func TestRunLooksUpMissingUploadDates(t *testing.T) {
	lister := &stubLister{listings: []domain.VideoListing{
		{VideoID: "vidNoDate01", Title: "flat entry"},
	}}
	metadata := &stubMetadata{dates: map[string]string{"vidNoDate01": "20250814"}}
	svc := newTestService(lister, metadata, &stubTranscripts{})

	digest, err := svc.Run(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(digest.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(digest.Items))
	}
	if digest.Items[0].Listing.UploadDate != "20250814" {
		t.Errorf("UploadDate = %q", digest.Items[0].Listing.UploadDate)
	}
}

func TestRunSkipsVideosWithUnknownDate(t *testing.T) {
	lister := &stubLister{listings: []domain.VideoListing{
		{VideoID: "vidNoDate01", Title: "no date anywhere"},
	}}
	metadata := &stubMetadata{dates: map[string]string{}}
	svc := newTestService(lister, metadata, &stubTranscripts{})

	digest, err := svc.Run(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(digest.Items) != 0 {
		t.Fatalf("items = %d, want 0", len(digest.Items))
	}
}

func TestRunKeepsGoingPastFailedVideos(t *testing.T) {
	lister := &stubLister{listings: []domain.VideoListing{
		{VideoID: "vidBroken01", UploadDate: "20250814"},
		{VideoID: "vidHealthy1", UploadDate: "20250814"},
	}}
	transcripts := &stubTranscripts{errFor: map[string]error{
		"vidBroken01": &domain.TranscriptUnavailableError{VideoID: "vidBroken01"},
	}}
	svc := newTestService(lister, &stubMetadata{dates: map[string]string{}}, transcripts)

	digest, err := svc.Run(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(digest.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(digest.Items))
	}
	if digest.Items[0].Err == nil {
		t.Error("broken video should carry its error")
	}
	if digest.Items[1].Err != nil || digest.Items[1].Result.Summary != "summary" {
		t.Errorf("healthy video = %+v", digest.Items[1])
	}
}

func TestRunPropagatesListerFailure(t *testing.T) {
	lister := &stubLister{err: &domain.ConfigError{Provider: "yt-dlp", Message: "not installed"}}
	svc := newTestService(lister, &stubMetadata{dates: map[string]string{}}, &stubTranscripts{})

	_, err := svc.Run(context.Background(), baseRequest())
	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want ConfigError", err)
	}
}

func TestRunRejectsBadDateExpression(t *testing.T) {
	svc := newTestService(&stubLister{}, &stubMetadata{dates: map[string]string{}}, &stubTranscripts{})
	req := baseRequest()
	req.DateExpr = "lastweek"
	if _, err := svc.Run(context.Background(), req); err == nil {
		t.Fatal("expected error for bad date expression")
	}
}
