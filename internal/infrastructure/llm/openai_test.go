package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yoyaktube/yyt/internal/domain"
)

func newTestOpenAIClient(t *testing.T, handler http.HandlerFunc) (*openAIClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &openAIClient{
		apiKey:     "sk-test",
		model:      "gpt-5-mini",
		baseURL:    srv.URL,
		httpClient: srv.Client(),
	}, srv
}

func openAICompletionBody(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":"` + content + `"}}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`
}

func TestOpenAIGenerateSendsBearerAndPayload(t *testing.T) {
	var captured openAIChatRequest
	var auth string
	client, _ := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(openAICompletionBody("    summary text  ")))
	})

	resp, err := client.Generate(context.Background(), domain.Request{
		Model:       "gpt-4o",
		Prompt:      "summarize this",
		Temperature: 0.2,
		MaxTokens:   256,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if auth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", auth)
	}
	if captured.Model != "gpt-4o" {
		t.Errorf("model = %q", captured.Model)
	}
	if captured.Temperature == nil || *captured.Temperature != 0.2 {
		t.Errorf("temperature = %v, want 0.2", captured.Temperature)
	}
	if captured.MaxTokens != 256 {
		t.Errorf("max tokens = %d", captured.MaxTokens)
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Role != domain.RoleUser {
		t.Errorf("messages = %+v", captured.Messages)
	}
	if resp.Content != "summary text" {
		t.Errorf("content = %q, want trimmed text", resp.Content)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("usage = %+v", resp.Usage)
	}
}

func TestOpenAIOmitsTemperatureForGPT5Family(t *testing.T) {
	var rawBody map[string]any
	client, _ := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&rawBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(openAICompletionBody("ok")))
	})

	if _, err := client.Generate(context.Background(), domain.Request{
		Model:       "gpt-5-mini",
		Prompt:      "hello",
		Temperature: 0.7,
	}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, present := rawBody["temperature"]; present {
		t.Fatal("temperature sent to a gpt-5 family model")
	}
}

func TestOpenAIChatDoesNotMutateHistory(t *testing.T) {
	client, _ := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(openAICompletionBody("ok")))
	})

	history := make([]domain.ChatMessage, 1, 4)
	history[0] = domain.ChatMessage{Role: domain.RoleSystem, Content: "context"}
	snapshot := history[0]

	if _, err := client.Chat(context.Background(), history, "question", domain.Request{Model: "gpt-4o"}); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if len(history) != 1 || history[0] != snapshot {
		t.Fatal("caller history was mutated")
	}
}

func TestOpenAIErrorClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		header http.Header
		check  func(t *testing.T, err error)
	}{
		{
			name:   "401 is auth",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				var authErr *domain.AuthError
				if !errors.As(err, &authErr) {
					t.Fatalf("error = %v, want AuthError", err)
				}
			},
		},
		{
			name:   "429 is rate limit with hint",
			status: http.StatusTooManyRequests,
			header: http.Header{"Retry-After": []string{"30"}},
			check: func(t *testing.T, err error) {
				var rateErr *domain.RateLimitError
				if !errors.As(err, &rateErr) {
					t.Fatalf("error = %v, want RateLimitError", err)
				}
				if rateErr.RetryAfter != 30*time.Second {
					t.Fatalf("RetryAfter = %v", rateErr.RetryAfter)
				}
			},
		},
		{
			name:   "500 is network",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var netErr *domain.NetworkError
				if !errors.As(err, &netErr) {
					t.Fatalf("error = %v, want NetworkError", err)
				}
			},
		},
		{
			name:   "400 is invalid request",
			status: http.StatusBadRequest,
			check: func(t *testing.T, err error) {
				var reqErr *domain.InvalidRequestError
				if !errors.As(err, &reqErr) {
					t.Fatalf("error = %v, want InvalidRequestError", err)
				}
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
				for k, vs := range tc.header {
					for _, v := range vs {
						w.Header().Add(k, v)
					}
				}
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"error":{"message":"nope"}}`))
			})
			_, err := client.Generate(context.Background(), domain.Request{Model: "gpt-4o", Prompt: "x"})
			if err == nil {
				t.Fatal("expected error")
			}
			tc.check(t, err)
		})
	}
}

func TestOpenAIRejectsEmptyPromptWithoutCalling(t *testing.T) {
	called := false
	client, _ := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	_, err := client.Generate(context.Background(), domain.Request{Model: "gpt-4o", Prompt: "   "})
	var reqErr *domain.InvalidRequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v, want InvalidRequestError", err)
	}
	if called {
		t.Fatal("empty prompt reached the wire")
	}
}

func TestOpenAIListModels(t *testing.T) {
	client, _ := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":[{"id":"gpt-5-mini"},{"id":"gpt-4o"}]}`))
	})
	models, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if len(models) != 2 || models[0] != "gpt-5-mini" {
		t.Fatalf("models = %v", models)
	}
}
