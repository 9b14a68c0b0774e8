package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yoyaktube/yyt/internal/domain"
)

// maxErrorBody bounds how much of a provider error payload is kept for
// the normalized message.
const maxErrorBody = 512

// classifyStatus maps a non-2xx provider response onto the shared error
// taxonomy. No raw provider error type crosses this boundary.
func classifyStatus(provider domain.ProviderName, resp *http.Response, body []byte) error {
	message := errorMessage(body)
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &domain.AuthError{Provider: string(provider), Message: message}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &domain.RateLimitError{
			Provider:   string(provider),
			RetryAfter: retryAfter(resp),
			Message:    message,
		}
	case resp.StatusCode >= 500:
		return &domain.NetworkError{
			Provider: string(provider),
			Message:  fmt.Sprintf("HTTP %d: %s", resp.StatusCode, message),
		}
	default:
		return &domain.InvalidRequestError{
			Provider: string(provider),
			Message:  fmt.Sprintf("HTTP %d: %s", resp.StatusCode, message),
		}
	}
}

// classifyTransport maps a transport-level failure (connection refused,
// deadline exceeded) onto the taxonomy.
func classifyTransport(provider domain.ProviderName, err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.TimeoutError{Provider: string(provider), Timeout: timeout, Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &domain.TimeoutError{Provider: string(provider), Timeout: timeout, Cause: err}
	}
	return &domain.NetworkError{Provider: string(provider), Message: "request failed", Cause: err}
}

// errorMessage pulls a human-readable message out of a provider error
// payload, falling back to a truncated raw body.
func errorMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	if text == "" {
		text = "no response body"
	}
	return text
}

func retryAfter(resp *http.Response) time.Duration {
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

// validateRequest rejects calls that would fail at the provider anyway.
func validateRequest(provider domain.ProviderName, model string, prompt string) error {
	if model == "" {
		return &domain.InvalidRequestError{Provider: string(provider), Message: "no model selected"}
	}
	if strings.TrimSpace(prompt) == "" {
		return &domain.InvalidRequestError{Provider: string(provider), Message: "empty prompt"}
	}
	return nil
}
