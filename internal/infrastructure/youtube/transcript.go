package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/ports"
)

// TranscriptClient fetches caption tracks from the watch page.
type TranscriptClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewTranscriptClient builds a TranscriptClient.
func NewTranscriptClient() *TranscriptClient {
	return &TranscriptClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    watchBaseURL,
	}
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	// Kind is "asr" for auto-generated tracks.
	Kind string `json:"kind"`
}

func (t captionTrack) generated() bool { return t.Kind == "asr" }

// Fetch implements ports.TranscriptService. Languages are attempted in
// priority order; when none of them has a track, any auto-generated
// track is used before giving up with TranscriptUnavailableError.
func (c *TranscriptClient) Fetch(ctx context.Context, videoID string, languages []string) (domain.Transcript, error) {
	page, err := fetchPage(ctx, c.httpClient, c.baseURL+"/watch?v="+videoID)
	if err != nil {
		return domain.Transcript{}, err
	}

	tracks, err := parseCaptionTracks(page)
	if err != nil || len(tracks) == 0 {
		return domain.Transcript{}, &domain.TranscriptUnavailableError{VideoID: videoID, Languages: languages}
	}

	track, ok := selectTrack(tracks, languages)
	if !ok {
		return domain.Transcript{}, &domain.TranscriptUnavailableError{VideoID: videoID, Languages: languages}
	}

	lines, err := c.fetchTrack(ctx, track.BaseURL)
	if err != nil {
		return domain.Transcript{}, err
	}
	return domain.Transcript{
		VideoID:   videoID,
		Language:  track.LanguageCode,
		Generated: track.generated(),
		Lines:     lines,
	}, nil
}

func parseCaptionTracks(page []byte) ([]captionTrack, error) {
	raw, ok := extractJSONValue(page, "captionTracks")
	if !ok {
		return nil, &domain.InvalidRequestError{Provider: "youtube", Message: "no caption track listing"}
	}
	var tracks []captionTrack
	if err := json.Unmarshal(raw, &tracks); err != nil {
		return nil, &domain.InvalidRequestError{Provider: "youtube", Message: "malformed caption track listing"}
	}
	return tracks, nil
}

// selectTrack picks the caption track honoring the priority order.
// Within one language a manual track beats an auto-generated one.
func selectTrack(tracks []captionTrack, languages []string) (captionTrack, bool) {
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	for _, lang := range languages {
		var generated *captionTrack
		for i, track := range tracks {
			if !matchesLanguage(track.LanguageCode, lang) {
				continue
			}
			if !track.generated() {
				return track, true
			}
			if generated == nil {
				generated = &tracks[i]
			}
		}
		if generated != nil {
			return *generated, true
		}
	}
	// None of the requested languages exist; any auto-generated track
	// is still better than failing.
	for _, track := range tracks {
		if track.generated() {
			return track, true
		}
	}
	return captionTrack{}, false
}

func matchesLanguage(code string, want string) bool {
	code = strings.ToLower(code)
	want = strings.ToLower(want)
	return code == want || strings.HasPrefix(code, want+"-")
}

// timedtext json3 payload.
type json3Events struct {
	Events []struct {
		StartMS int64 `json:"tStartMs"`
		Segs    []struct {
			Text string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func (c *TranscriptClient) fetchTrack(ctx context.Context, trackURL string) ([]domain.TranscriptLine, error) {
	separator := "&"
	if !strings.Contains(trackURL, "?") {
		separator = "?"
	}
	body, err := fetchPage(ctx, c.httpClient, trackURL+separator+"fmt=json3")
	if err != nil {
		return nil, err
	}

	var decoded json3Events
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &domain.InvalidRequestError{Provider: "youtube", Message: "malformed caption payload"}
	}

	var lines []domain.TranscriptLine
	for _, event := range decoded.Events {
		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.Text)
		}
		cue := strings.TrimSpace(strings.ReplaceAll(text.String(), "\n", " "))
		if cue == "" {
			continue
		}
		lines = append(lines, domain.TranscriptLine{
			Start: time.Duration(event.StartMS) * time.Millisecond,
			Text:  cue,
		})
	}
	return lines, nil
}

var _ ports.TranscriptService = (*TranscriptClient)(nil)
