package domain

import (
	"errors"
	"fmt"
	"time"
)

// ConfigError represents missing or invalid provider configuration or
// credentials. It is fatal to the current request and never retried.
type ConfigError struct {
	// Provider is the provider the configuration belongs to ("" for the
	// resolver itself).
	Provider string

	// Field is the configuration field that is missing or invalid.
	Field string

	// Message describes the configuration problem.
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("config error for provider %q (%s): %s", e.Provider, e.Field, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("config error (%s): %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// AuthError represents rejected credentials (HTTP 401/403). The caller
// must be told to fix credentials; retrying cannot help.
type AuthError struct {
	Provider string
	Message  string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("provider %q authentication failed: %s", e.Provider, e.Message)
}

// NetworkError represents a connection failure reaching a provider or
// the transcript service, including 5xx responses. Transient.
type NetworkError struct {
	Provider string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %q network error: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider %q network error: %s", e.Provider, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// TimeoutError represents a request that exceeded its allotted time.
// Transient.
type TimeoutError struct {
	Provider string
	Timeout  time.Duration
	Cause    error
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	if e.Timeout > 0 {
		return fmt.Sprintf("provider %q request timed out after %s", e.Provider, e.Timeout)
	}
	return fmt.Sprintf("provider %q request timed out", e.Provider)
}

// Unwrap returns the underlying error for error chain support.
func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// RateLimitError represents provider throttling (HTTP 429). Transient,
// but retried with a longer delay than other transient kinds.
type RateLimitError struct {
	Provider string
	// RetryAfter is the wait hinted by the provider, if any.
	RetryAfter time.Duration
	Message    string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("provider %q rate limited (retry after %s): %s", e.Provider, e.RetryAfter, e.Message)
	}
	return fmt.Sprintf("provider %q rate limited: %s", e.Provider, e.Message)
}

// InvalidRequestError represents a malformed request (bad model name,
// empty prompt, HTTP 400/404). Surfaced immediately.
type InvalidRequestError struct {
	Provider string
	Message  string
}

// Error implements the error interface.
func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("provider %q rejected request: %s", e.Provider, e.Message)
}

// TranscriptUnavailableError means no caption track exists in any
// requested or fallback language. Terminal; must not be retried.
type TranscriptUnavailableError struct {
	VideoID   string
	Languages []string
}

// Error implements the error interface.
func (e *TranscriptUnavailableError) Error() string {
	if len(e.Languages) > 0 {
		return fmt.Sprintf("no captions available for video %q in languages %v", e.VideoID, e.Languages)
	}
	return fmt.Sprintf("no captions available for video %q", e.VideoID)
}

// IsTransient reports whether err belongs to a failure category expected
// to resolve itself on retry. Only these kinds may be retried.
func IsTransient(err error) bool {
	var netErr *NetworkError
	var timeoutErr *TimeoutError
	var rateErr *RateLimitError
	return errors.As(err, &netErr) || errors.As(err, &timeoutErr) || errors.As(err, &rateErr)
}

// IsRateLimit reports whether err is a throttling signal; the retry
// policy stretches its backoff for these.
func IsRateLimit(err error) bool {
	var rateErr *RateLimitError
	return errors.As(err, &rateErr)
}

// IsTranscriptUnavailable reports whether err is the terminal
// no-captions signal.
func IsTranscriptUnavailable(err error) bool {
	var unavailable *TranscriptUnavailableError
	return errors.As(err, &unavailable)
}

// UserMessage renders the short, kind-specific message the CLI shows
// instead of raw provider error text.
func UserMessage(err error) string {
	var (
		cfgErr     *ConfigError
		authErr    *AuthError
		netErr     *NetworkError
		timeoutErr *TimeoutError
		rateErr    *RateLimitError
		reqErr     *InvalidRequestError
		noCaptions *TranscriptUnavailableError
	)
	switch {
	case errors.As(err, &cfgErr):
		return "Provider configuration is missing or invalid. Check your config file and credentials."
	case errors.As(err, &authErr):
		return "Credentials were rejected. Check the API key for " + authErr.Provider + "."
	case errors.As(err, &rateErr):
		return "The provider is rate limiting requests. Try again later."
	case errors.As(err, &timeoutErr):
		return "The request timed out. Try again, or pick a smaller video."
	case errors.As(err, &netErr):
		return "Could not reach the provider. Check your network connection."
	case errors.As(err, &reqErr):
		return "The request was rejected as invalid: " + reqErr.Message
	case errors.As(err, &noCaptions):
		return "No captions are available for this video in the requested languages."
	default:
		return "An unexpected error occurred."
	}
}
