package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/yoyaktube/yyt/internal/domain"
)

func TestBuildContextSkipsAbsentMetadata(t *testing.T) {
	transcript := domain.Transcript{Lines: []domain.TranscriptLine{{Start: time.Second, Text: "only cue"}}}
	got := BuildContext(domain.VideoMetadata{}, transcript)

	if strings.Contains(got, "[SOURCE]") || strings.Contains(got, "[DURATION]") || strings.Contains(got, "[UPLOAD_DATE]") {
		t.Fatalf("absent metadata leaked into the context:\n%s", got)
	}
	if !strings.HasPrefix(got, "[TRANSCRIPT]\n") {
		t.Fatalf("context = %q", got)
	}
	if !strings.Contains(got, "[00:00:01] only cue") {
		t.Fatalf("context = %q", got)
	}
}

func TestBuildContextEmptyTranscript(t *testing.T) {
	got := BuildContext(domain.VideoMetadata{}, domain.Transcript{})
	if !strings.Contains(got, "(no captions)") {
		t.Fatalf("context = %q", got)
	}
}

func TestBuildQAContextWithoutSummary(t *testing.T) {
	transcript := domain.Transcript{Lines: []domain.TranscriptLine{{Text: "a"}, {Text: "b"}}}
	got := BuildQAContext("", transcript)
	if got != "[TRANSCRIPT]\na b" {
		t.Fatalf("context = %q", got)
	}
}

func TestBuildQAContextEmpty(t *testing.T) {
	if got := BuildQAContext("", domain.Transcript{}); got != "" {
		t.Fatalf("context = %q", got)
	}
}
