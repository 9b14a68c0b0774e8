// Package youtube implements the transcript, metadata, and channel
// listing collaborators plus their TTL-caching decorators.
//
// Transcript and metadata both come from the public watch page: the
// caption track listing and ytInitialPlayerResponse are embedded in its
// HTML. Channel listings are delegated to a yt-dlp subprocess.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/yoyaktube/yyt/internal/domain"
)

const watchBaseURL = "https://www.youtube.com"

// fetchPage downloads one page from the watch host.
func fetchPage(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.InvalidRequestError{Provider: "youtube", Message: err.Error()}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept-Language", "en")

	resp, err := client.Do(req)
	if err != nil {
		return nil, classifyFetchError(err, client)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &domain.RateLimitError{Provider: "youtube", Message: resp.Status}
	}
	if resp.StatusCode >= 400 {
		return nil, &domain.NetworkError{Provider: "youtube", Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Provider: "youtube", Message: "read response body", Cause: err}
	}
	return body, nil
}

func classifyFetchError(err error, client *http.Client) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.TimeoutError{Provider: "youtube", Timeout: client.Timeout, Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &domain.TimeoutError{Provider: "youtube", Timeout: client.Timeout, Cause: err}
	}
	return &domain.NetworkError{Provider: "youtube", Message: "request failed", Cause: err}
}

// extractJSONValue finds `"key":` in page and returns the balanced JSON
// value ({...} or [...]) that follows it. The scanner is string- and
// escape-aware; watch pages embed plenty of braces inside quoted text.
func extractJSONValue(page []byte, key string) ([]byte, bool) {
	marker := fmt.Sprintf("%q:", key)
	start := strings.Index(string(page), marker)
	if start < 0 {
		return nil, false
	}
	rest := page[start+len(marker):]

	var open, close byte
	switch {
	case len(rest) > 0 && rest[0] == '{':
		open, close = '{', '}'
	case len(rest) > 0 && rest[0] == '[':
		open, close = '[', ']'
	default:
		return nil, false
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(rest); i++ {
		ch := rest[i]
		switch {
		case escaped:
			escaped = false
		case inString && ch == '\\':
			escaped = true
		case ch == '"':
			inString = !inString
		case !inString && ch == open:
			depth++
		case !inString && ch == close:
			depth--
			if depth == 0 {
				return rest[:i+1], true
			}
		}
	}
	return nil, false
}
