package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/ports"
)

type ollamaClient struct {
	host       string
	model      string
	httpClient *http.Client
}

func newOllamaClient(model string, creds domain.Credentials, httpClient *http.Client) ports.Provider {
	return &ollamaClient{
		host:       strings.TrimRight(creds.Host, "/"),
		model:      model,
		httpClient: httpClient,
	}
}

func (c *ollamaClient) Name() domain.ProviderName {
	return domain.ProviderOllama
}

type ollamaChatRequest struct {
	Model    string               `json:"model"`
	Messages []domain.ChatMessage `json:"messages"`
	Stream   bool                 `json:"stream"`
	Options  *ollamaOptions       `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Message         domain.ChatMessage `json:"message"`
	PromptEvalCount int                `json:"prompt_eval_count"`
	EvalCount       int                `json:"eval_count"`
}

func (c *ollamaClient) ListModels(ctx context.Context) ([]string, error) {
	raw, err := c.send(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		return nil, err
	}
	var decoded struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &domain.InvalidRequestError{Provider: "ollama", Message: "unexpected model list payload"}
	}
	models := make([]string, 0, len(decoded.Models))
	for _, m := range decoded.Models {
		models = append(models, m.Name)
	}
	return models, nil
}

func (c *ollamaClient) Generate(ctx context.Context, req domain.Request) (domain.Response, error) {
	model := modelOrDefault(req.Model, c.model)
	if err := validateRequest(domain.ProviderOllama, model, req.Prompt); err != nil {
		return domain.Response{}, err
	}
	messages := []domain.ChatMessage{{Role: domain.RoleUser, Content: req.Prompt}}
	return c.chat(ctx, model, messages, req)
}

func (c *ollamaClient) Chat(ctx context.Context, history []domain.ChatMessage, message string, req domain.Request) (domain.Response, error) {
	model := modelOrDefault(req.Model, c.model)
	if err := validateRequest(domain.ProviderOllama, model, message); err != nil {
		return domain.Response{}, err
	}
	messages := appendTurn(history, domain.ChatMessage{Role: domain.RoleUser, Content: message})
	return c.chat(ctx, model, messages, req)
}

func (c *ollamaClient) chat(ctx context.Context, model string, messages []domain.ChatMessage, req domain.Request) (domain.Response, error) {
	payload := ollamaChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
	}
	if req.Temperature > 0 || req.MaxTokens > 0 {
		payload.Options = &ollamaOptions{Temperature: req.Temperature, NumPredict: req.MaxTokens}
	}

	raw, err := c.send(ctx, http.MethodPost, "/api/chat", payload)
	if err != nil {
		return domain.Response{}, err
	}

	var decoded ollamaChatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return domain.Response{}, &domain.InvalidRequestError{Provider: "ollama", Message: "unexpected chat payload"}
	}
	return domain.Response{
		Content: strings.TrimSpace(decoded.Message.Content),
		Model:   model,
		Usage: domain.Usage{
			PromptTokens:     decoded.PromptEvalCount,
			CompletionTokens: decoded.EvalCount,
			TotalTokens:      decoded.PromptEvalCount + decoded.EvalCount,
		},
		Raw: raw,
	}, nil
}

func (c *ollamaClient) send(ctx context.Context, method string, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, &domain.InvalidRequestError{Provider: "ollama", Message: err.Error()}
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.host+path, body)
	if err != nil {
		return nil, &domain.InvalidRequestError{Provider: "ollama", Message: err.Error()}
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransport(domain.ProviderOllama, err, c.httpClient.Timeout)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Provider: "ollama", Message: "read response body", Cause: err}
	}
	if resp.StatusCode >= 400 {
		return nil, classifyStatus(domain.ProviderOllama, resp, raw)
	}
	return raw, nil
}
