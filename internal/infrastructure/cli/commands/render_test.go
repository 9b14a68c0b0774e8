package commands

import (
	"strings"
	"testing"
	"time"

	"github.com/yoyaktube/yyt/internal/application/channel"
	"github.com/yoyaktube/yyt/internal/application/summary"
	"github.com/yoyaktube/yyt/internal/domain"
)

func TestSummaryMarkdown(t *testing.T) {
	result := summary.Result{
		VideoID:  "dQw4w9WgXcQ",
		Metadata: domain.VideoMetadata{Title: "Test Video"},
		Summary:  "the summary body",
		Provider: domain.ProviderOpenAI,
		Model:    "gpt-5-mini",
	}
	got := summaryMarkdown(result)
	for _, want := range []string{
		"Test Video",
		"the summary body",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"provider=openai",
		"model=gpt-5-mini",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("markdown missing %q:\n%s", want, got)
		}
	}
}

func TestDigestMarkdownShowsFailuresInline(t *testing.T) {
	digest := channel.Digest{
		ChannelURL: "https://www.youtube.com/@channel",
		Range: domain.DateRange{
			Start: time.Date(2025, 8, 8, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC),
		},
		Items: []channel.Item{
			{
				Listing: domain.VideoListing{VideoID: "vidHealthy1", Title: "Good", UploadDate: "20250812"},
				Result:  summary.Result{Summary: "fine summary"},
			},
			{
				Listing: domain.VideoListing{VideoID: "vidBroken01", Title: "Bad"},
				Err:     &domain.TranscriptUnavailableError{VideoID: "vidBroken01"},
			},
		},
	}
	got := digestMarkdown(digest, "openai", "gpt-5-mini")
	for _, want := range []string{
		"https://www.youtube.com/@channel",
		"20250808 - 20250815",
		"fine summary",
		"captions",
		"provider=openai",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("digest missing %q:\n%s", want, got)
		}
	}
}

func TestTranscriptText(t *testing.T) {
	transcript := domain.Transcript{Lines: []domain.TranscriptLine{
		{Start: 0, Text: "first"},
		{Start: 61 * time.Second, Text: "second"},
	}}
	got := transcriptText(transcript, false)
	if got != "[00:00:00] first\n[00:01:01] second" {
		t.Fatalf("timestamped = %q", got)
	}
	if plain := transcriptText(transcript, true); plain != "first second" {
		t.Fatalf("plain = %q", plain)
	}
}
