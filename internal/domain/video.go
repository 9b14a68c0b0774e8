package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var (
	shortLinkPattern = regexp.MustCompile(`youtu\.be/([A-Za-z0-9_\-]{6,})`)
	shortsPattern    = regexp.MustCompile(`/shorts/([A-Za-z0-9_\-]{6,})`)
	bareIDPattern    = regexp.MustCompile(`^[A-Za-z0-9_\-]{11}$`)
)

// ExtractVideoID parses a video reference: a bare 11-character ID, a
// watch URL, a youtu.be short link, or a /shorts/ URL.
func ExtractVideoID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if bareIDPattern.MatchString(ref) {
		return ref, nil
	}
	if parsed, err := url.Parse(ref); err == nil {
		if v := parsed.Query().Get("v"); len(v) >= 10 {
			return v, nil
		}
	}
	if m := shortLinkPattern.FindStringSubmatch(ref); m != nil {
		return m[1], nil
	}
	if m := shortsPattern.FindStringSubmatch(ref); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("could not extract a video ID from %q", ref)
}

// WatchURL builds the canonical watch-page URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// TranscriptLine is one caption cue with its start offset.
type TranscriptLine struct {
	Start time.Duration
	Text  string
}

// Transcript is the fetched caption track for one video.
type Transcript struct {
	VideoID string
	// Language is the language code of the track actually served, which
	// may differ from every requested language when the auto-generated
	// fallback kicks in.
	Language string
	// Generated marks an auto-generated (ASR) track.
	Generated bool
	Lines     []TranscriptLine
}

// PlainText joins all cue texts with single spaces.
func (t Transcript) PlainText() string {
	parts := make([]string, 0, len(t.Lines))
	for _, line := range t.Lines {
		if text := strings.TrimSpace(line.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// VideoMetadata is the normalized metadata record for one video.
type VideoMetadata struct {
	VideoID   string
	Title     string
	Channel   string
	Duration  time.Duration
	ViewCount int64
	// UploadDate is in YYYYMMDD form, as YouTube reports it.
	UploadDate string
	SourceURL  string
}

// VideoListing is one entry of an externally supplied channel listing.
type VideoListing struct {
	VideoID    string
	Title      string
	UploadDate string
}
