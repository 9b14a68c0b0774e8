package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/ports"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type geminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func newGeminiClient(model string, creds domain.Credentials, httpClient *http.Client) ports.Provider {
	return &geminiClient{
		apiKey:     creds.APIKey,
		model:      model,
		baseURL:    defaultGeminiBaseURL,
		httpClient: httpClient,
	}
}

func (c *geminiClient) Name() domain.ProviderName {
	return domain.ProviderGemini
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiGenerateRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

func (c *geminiClient) ListModels(ctx context.Context) ([]string, error) {
	raw, err := c.send(ctx, http.MethodGet, fmt.Sprintf("%s/models?key=%s", c.baseURL, c.apiKey), nil)
	if err != nil {
		return nil, err
	}
	var decoded struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &domain.InvalidRequestError{Provider: "gemini", Message: "unexpected model list payload"}
	}
	models := make([]string, 0, len(decoded.Models))
	for _, m := range decoded.Models {
		models = append(models, strings.TrimPrefix(m.Name, "models/"))
	}
	return models, nil
}

func (c *geminiClient) Generate(ctx context.Context, req domain.Request) (domain.Response, error) {
	model := modelOrDefault(req.Model, c.model)
	if err := validateRequest(domain.ProviderGemini, model, req.Prompt); err != nil {
		return domain.Response{}, err
	}
	contents := []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}}}
	return c.generate(ctx, model, contents, nil, req)
}

func (c *geminiClient) Chat(ctx context.Context, history []domain.ChatMessage, message string, req domain.Request) (domain.Response, error) {
	model := modelOrDefault(req.Model, c.model)
	if err := validateRequest(domain.ProviderGemini, model, message); err != nil {
		return domain.Response{}, err
	}

	// Gemini takes system text in a dedicated field and calls the
	// assistant role "model".
	var system *geminiContent
	var contents []geminiContent
	for _, msg := range history {
		switch msg.Role {
		case domain.RoleSystem:
			if system == nil {
				system = &geminiContent{Parts: []geminiPart{{Text: msg.Content}}}
			} else {
				system.Parts = append(system.Parts, geminiPart{Text: msg.Content})
			}
		case domain.RoleAssistant:
			contents = append(contents, geminiContent{Role: "model", Parts: []geminiPart{{Text: msg.Content}}})
		default:
			contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: msg.Content}}})
		}
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: message}}})

	return c.generate(ctx, model, contents, system, req)
}

func (c *geminiClient) generate(ctx context.Context, model string, contents []geminiContent, system *geminiContent, req domain.Request) (domain.Response, error) {
	payload := geminiGenerateRequest{
		Contents:          contents,
		SystemInstruction: system,
	}
	if req.Temperature > 0 || req.MaxTokens > 0 {
		payload.GenerationConfig = &geminiGenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	raw, err := c.send(ctx, http.MethodPost, url, payload)
	if err != nil {
		return domain.Response{}, err
	}

	var decoded geminiGenerateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil || len(decoded.Candidates) == 0 {
		return domain.Response{}, &domain.InvalidRequestError{Provider: "gemini", Message: "unexpected generation payload"}
	}

	var text strings.Builder
	for _, part := range decoded.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return domain.Response{
		Content: strings.TrimSpace(text.String()),
		Model:   model,
		Usage: domain.Usage{
			PromptTokens:     decoded.UsageMetadata.PromptTokenCount,
			CompletionTokens: decoded.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      decoded.UsageMetadata.TotalTokenCount,
		},
		Raw: raw,
	}, nil
}

func (c *geminiClient) send(ctx context.Context, method string, url string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, &domain.InvalidRequestError{Provider: "gemini", Message: err.Error()}
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &domain.InvalidRequestError{Provider: "gemini", Message: err.Error()}
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransport(domain.ProviderGemini, err, c.httpClient.Timeout)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Provider: "gemini", Message: "read response body", Cause: err}
	}
	if resp.StatusCode >= 400 {
		return nil, classifyStatus(domain.ProviderGemini, resp, raw)
	}
	return raw, nil
}
