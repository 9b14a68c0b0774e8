// Package summary orchestrates the fetch-then-summarize pipeline and
// the transcript Q&A chat on top of it.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/yoyaktube/yyt/assets"
	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/ports"
)

var (
	summaryTmpl    = template.Must(template.New("summary").Parse(assets.SummaryPromptTmpl))
	chatSystemTmpl = template.Must(template.New("chat_system").Parse(assets.ChatSystemPromptTmpl))
)

// Request carries everything one summarization run needs.
type Request struct {
	// VideoRef is a video ID or any supported YouTube URL form.
	VideoRef    string
	Provider    domain.ProviderName
	Model       string
	Credentials domain.Credentials
	Languages   []string
	Temperature float64
	MaxTokens   int
}

// Result is the outcome of a summarization run.
type Result struct {
	VideoID    string
	Metadata   domain.VideoMetadata
	Transcript domain.Transcript
	Summary    string
	Provider   domain.ProviderName
	Model      string
}

// Service orchestrates summarization end-to-end.
type Service struct {
	Transcripts ports.TranscriptService
	Metadata    ports.MetadataService
	Factory     ports.ProviderFactory
	Logger      ports.Logger
}

// Summarize resolves the video reference, fetches metadata and the
// transcript, and asks the provider for a structured summary.
func (s *Service) Summarize(ctx context.Context, req Request) (Result, error) {
	if s.Transcripts == nil || s.Metadata == nil || s.Factory == nil || s.Logger == nil {
		return Result{}, errors.New("summary.Service dependencies not satisfied")
	}

	videoID, err := domain.ExtractVideoID(req.VideoRef)
	if err != nil {
		return Result{}, err
	}

	meta, err := s.Metadata.Fetch(ctx, videoID)
	if err != nil {
		// Metadata is decorative; summarize without it.
		s.Logger.Warn("metadata fetch failed", map[string]interface{}{
			"video_id": videoID,
			"error":    err.Error(),
		})
		meta = domain.VideoMetadata{VideoID: videoID, SourceURL: domain.WatchURL(videoID)}
	}

	transcript, err := s.Transcripts.Fetch(ctx, videoID, req.Languages)
	if err != nil {
		return Result{}, fmt.Errorf("fetch transcript: %w", err)
	}

	provider, err := s.Factory.GetOrCreate(req.Provider, req.Model, req.Credentials)
	if err != nil {
		return Result{}, err
	}

	prompt, err := renderPrompt(summaryTmpl, BuildContext(meta, transcript))
	if err != nil {
		return Result{}, err
	}

	s.Logger.Info("calling provider", map[string]interface{}{
		"provider": string(req.Provider),
		"model":    req.Model,
		"video_id": videoID,
	})

	resp, err := provider.Generate(ctx, domain.Request{
		Model:       req.Model,
		Prompt:      prompt,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return Result{}, fmt.Errorf("provider generate: %w", err)
	}

	return Result{
		VideoID:    videoID,
		Metadata:   meta,
		Transcript: transcript,
		Summary:    resp.Content,
		Provider:   req.Provider,
		Model:      resp.Model,
	}, nil
}

// Ask answers one question against a prior summary and the full
// transcript. The caller owns history; the returned response is not
// appended to it here.
func (s *Service) Ask(
	ctx context.Context,
	req Request,
	prior Result,
	history []domain.ChatMessage,
	question string,
) (domain.Response, error) {
	if s.Factory == nil {
		return domain.Response{}, errors.New("summary.Service dependencies not satisfied")
	}
	if strings.TrimSpace(question) == "" {
		return domain.Response{}, &domain.InvalidRequestError{Provider: string(req.Provider), Message: "question is empty"}
	}

	provider, err := s.Factory.GetOrCreate(req.Provider, req.Model, req.Credentials)
	if err != nil {
		return domain.Response{}, err
	}

	system, err := renderPrompt(chatSystemTmpl, BuildQAContext(prior.Summary, prior.Transcript))
	if err != nil {
		return domain.Response{}, err
	}

	turns := make([]domain.ChatMessage, 0, len(history)+1)
	turns = append(turns, domain.ChatMessage{Role: domain.RoleSystem, Content: system})
	turns = append(turns, history...)

	resp, err := provider.Chat(ctx, turns, question, domain.Request{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return domain.Response{}, fmt.Errorf("provider chat: %w", err)
	}
	return resp, nil
}

func renderPrompt(tmpl *template.Template, contextBlock string) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, struct{ Context string }{Context: contextBlock}); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return b.String(), nil
}
