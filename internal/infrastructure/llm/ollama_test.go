package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yoyaktube/yyt/internal/domain"
)

func newTestOllamaClient(t *testing.T, handler http.HandlerFunc) *ollamaClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &ollamaClient{
		host:       srv.URL,
		model:      "llama3.1",
		httpClient: srv.Client(),
	}
}

func TestOllamaGenerateDisablesStreaming(t *testing.T) {
	var captured ollamaChatRequest
	client := newTestOllamaClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"message":{"role":"assistant","content":"local answer"},"prompt_eval_count":12,"eval_count":4}`))
	})

	resp, err := client.Generate(context.Background(), domain.Request{
		Model:       "llama3.1",
		Prompt:      "hello",
		Temperature: 0.2,
		MaxTokens:   128,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if captured.Stream {
		t.Error("stream must be disabled")
	}
	if captured.Options == nil || captured.Options.Temperature != 0.2 || captured.Options.NumPredict != 128 {
		t.Errorf("options = %+v", captured.Options)
	}
	if resp.Content != "local answer" {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.Usage.TotalTokens != 16 {
		t.Errorf("usage = %+v", resp.Usage)
	}
}

func TestOllamaListModels(t *testing.T) {
	client := newTestOllamaClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"models":[{"name":"llama3.1"},{"name":"qwen2.5"}]}`))
	})
	models, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if len(models) != 2 || models[1] != "qwen2.5" {
		t.Fatalf("models = %v", models)
	}
}

func TestOllamaTrimsTrailingSlashFromHost(t *testing.T) {
	client := newOllamaClient("llama3.1", domain.Credentials{Host: "http://localhost:11434/"}, http.DefaultClient)
	if got := client.(*ollamaClient).host; got != "http://localhost:11434" {
		t.Fatalf("host = %q", got)
	}
}
