package youtube

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/ports"
)

// CommandRunner executes an external command and returns its stdout. It
// exists so tests can swap out the real yt-dlp binary.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%w: %s", err, bytes.TrimSpace(stderr.Bytes()))
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// YtDlpLister enumerates a channel's recent uploads by shelling out to
// yt-dlp in flat-playlist mode, one JSON object per line.
type YtDlpLister struct {
	Runner CommandRunner
	Logger ports.Logger
}

// NewYtDlpLister builds a lister backed by the real yt-dlp binary.
func NewYtDlpLister(log ports.Logger) *YtDlpLister {
	return &YtDlpLister{Runner: ExecRunner{}, Logger: log}
}

type flatPlaylistEntry struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	UploadDate string `json:"upload_date"`
}

// List implements ports.ChannelLister.
func (l *YtDlpLister) List(ctx context.Context, channelURL string, limit int) ([]domain.VideoListing, error) {
	if channelURL == "" {
		return nil, &domain.InvalidRequestError{Provider: "yt-dlp", Message: "channel URL is empty"}
	}
	args := []string{"--flat-playlist", "--dump-json"}
	if limit > 0 {
		args = append(args, "--playlist-end", strconv.Itoa(limit))
	}
	args = append(args, channelURL)

	out, err := l.Runner.Run(ctx, "yt-dlp", args...)
	if err != nil {
		return nil, classifyRunError(err)
	}

	var listings []domain.VideoListing
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry flatPlaylistEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			if l.Logger != nil {
				l.Logger.Debug("skipping malformed yt-dlp line", map[string]interface{}{"error": err.Error()})
			}
			continue
		}
		if entry.ID == "" {
			continue
		}
		listings = append(listings, domain.VideoListing{
			VideoID:    entry.ID,
			Title:      entry.Title,
			UploadDate: entry.UploadDate,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, &domain.NetworkError{Provider: "yt-dlp", Message: "read listing output", Cause: err}
	}
	return listings, nil
}

func classifyRunError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.TimeoutError{Provider: "yt-dlp", Cause: err}
	}
	if errors.Is(err, exec.ErrNotFound) {
		return &domain.ConfigError{Provider: "yt-dlp", Field: "binary", Message: "yt-dlp is not installed or not on PATH"}
	}
	return &domain.NetworkError{Provider: "yt-dlp", Message: "channel listing failed", Cause: err}
}

var _ ports.ChannelLister = (*YtDlpLister)(nil)
