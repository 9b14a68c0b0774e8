package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/ports"
)

// MetadataClient extracts video metadata from the watch page's embedded
// player response.
type MetadataClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewMetadataClient builds a MetadataClient.
func NewMetadataClient() *MetadataClient {
	return &MetadataClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    watchBaseURL,
	}
}

type videoDetails struct {
	VideoID       string `json:"videoId"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	LengthSeconds string `json:"lengthSeconds"`
	ViewCount     string `json:"viewCount"`
}

type microformatRenderer struct {
	PublishDate string `json:"publishDate"`
	UploadDate  string `json:"uploadDate"`
}

// Fetch implements ports.MetadataService.
func (c *MetadataClient) Fetch(ctx context.Context, videoID string) (domain.VideoMetadata, error) {
	page, err := fetchPage(ctx, c.httpClient, c.baseURL+"/watch?v="+videoID)
	if err != nil {
		return domain.VideoMetadata{}, err
	}

	raw, ok := extractJSONValue(page, "videoDetails")
	if !ok {
		return domain.VideoMetadata{}, &domain.InvalidRequestError{Provider: "youtube", Message: "video details not found"}
	}
	var details videoDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return domain.VideoMetadata{}, &domain.InvalidRequestError{Provider: "youtube", Message: "malformed video details"}
	}

	meta := domain.VideoMetadata{
		VideoID:   videoID,
		Title:     details.Title,
		Channel:   details.Author,
		SourceURL: domain.WatchURL(videoID),
	}
	if secs, err := strconv.Atoi(details.LengthSeconds); err == nil {
		meta.Duration = time.Duration(secs) * time.Second
	}
	if views, err := strconv.ParseInt(details.ViewCount, 10, 64); err == nil {
		meta.ViewCount = views
	}

	if raw, ok := extractJSONValue(page, "playerMicroformatRenderer"); ok {
		var micro microformatRenderer
		if err := json.Unmarshal(raw, &micro); err == nil {
			meta.UploadDate = compactDate(firstNonEmpty(micro.UploadDate, micro.PublishDate))
		}
	}
	return meta, nil
}

// compactDate normalizes 2023-01-02 (optionally with a time suffix) to
// 20230102.
func compactDate(date string) string {
	if date == "" {
		return ""
	}
	if idx := strings.IndexByte(date, 'T'); idx > 0 {
		date = date[:idx]
	}
	return strings.ReplaceAll(date, "-", "")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var _ ports.MetadataService = (*MetadataClient)(nil)
