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

const defaultOpenAIBaseURL = "https://api.openai.com"

type openAIClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func newOpenAIClient(model string, creds domain.Credentials, httpClient *http.Client) ports.Provider {
	return &openAIClient{
		apiKey:     creds.APIKey,
		model:      model,
		baseURL:    defaultOpenAIBaseURL,
		httpClient: httpClient,
	}
}

func (c *openAIClient) Name() domain.ProviderName {
	return domain.ProviderOpenAI
}

type openAIChatRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	Temperature *float64             `json:"temperature,omitempty"`
	MaxTokens   int                  `json:"max_completion_tokens,omitempty"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message domain.ChatMessage `json:"message"`
	} `json:"choices"`
	Usage domain.Usage `json:"usage"`
}

func (c *openAIClient) ListModels(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/v1/models")
	if err != nil {
		return nil, err
	}
	var decoded struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &domain.InvalidRequestError{Provider: "openai", Message: "unexpected model list payload"}
	}
	models := make([]string, 0, len(decoded.Data))
	for _, m := range decoded.Data {
		models = append(models, m.ID)
	}
	return models, nil
}

func (c *openAIClient) Generate(ctx context.Context, req domain.Request) (domain.Response, error) {
	model := modelOrDefault(req.Model, c.model)
	if err := validateRequest(domain.ProviderOpenAI, model, req.Prompt); err != nil {
		return domain.Response{}, err
	}
	messages := []domain.ChatMessage{{Role: domain.RoleUser, Content: req.Prompt}}
	return c.complete(ctx, model, messages, req)
}

func (c *openAIClient) Chat(ctx context.Context, history []domain.ChatMessage, message string, req domain.Request) (domain.Response, error) {
	model := modelOrDefault(req.Model, c.model)
	if err := validateRequest(domain.ProviderOpenAI, model, message); err != nil {
		return domain.Response{}, err
	}
	messages := appendTurn(history, domain.ChatMessage{Role: domain.RoleUser, Content: message})
	return c.complete(ctx, model, messages, req)
}

func (c *openAIClient) complete(ctx context.Context, model string, messages []domain.ChatMessage, req domain.Request) (domain.Response, error) {
	payload := openAIChatRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	}
	// gpt-5 family models reject the temperature parameter.
	if supportsTemperature(model) && req.Temperature > 0 {
		payload.Temperature = &req.Temperature
	}

	raw, err := c.post(ctx, "/v1/chat/completions", payload)
	if err != nil {
		return domain.Response{}, err
	}

	var decoded openAIChatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil || len(decoded.Choices) == 0 {
		return domain.Response{}, &domain.InvalidRequestError{Provider: "openai", Message: "unexpected completion payload"}
	}
	return domain.Response{
		Content: strings.TrimSpace(decoded.Choices[0].Message.Content),
		Model:   model,
		Usage:   decoded.Usage,
		Raw:     raw,
	}, nil
}

func (c *openAIClient) get(ctx context.Context, path string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &domain.InvalidRequestError{Provider: "openai", Message: err.Error()}
	}
	return c.send(httpReq)
}

func (c *openAIClient) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &domain.InvalidRequestError{Provider: "openai", Message: err.Error()}
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, &domain.InvalidRequestError{Provider: "openai", Message: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return c.send(httpReq)
}

func (c *openAIClient) send(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(domain.ProviderOpenAI, err, c.httpClient.Timeout)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Provider: "openai", Message: "read response body", Cause: err}
	}
	if resp.StatusCode >= 400 {
		return nil, classifyStatus(domain.ProviderOpenAI, resp, raw)
	}
	return raw, nil
}

// supportsTemperature reports whether the model accepts a temperature
// parameter.
func supportsTemperature(model string) bool {
	return !strings.HasPrefix(model, "gpt-5")
}
