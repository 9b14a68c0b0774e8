// Package channel builds date-ranged digests of a channel's uploads by
// summarizing each matching video in turn.
package channel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yoyaktube/yyt/internal/application/summary"
	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/ports"
)

// Request describes one digest run. Base.VideoRef is ignored; it is
// filled per video.
type Request struct {
	ChannelURL string
	// DateExpr is today, yesterday, a day count, YYYYMMDD, or
	// YYYYMMDD-YYYYMMDD.
	DateExpr  string
	MaxVideos int
	Base      summary.Request
}

// Item is one video's outcome within a digest. Failed videos carry Err
// and an empty Result; the digest keeps going.
type Item struct {
	Listing domain.VideoListing
	Result  summary.Result
	Err     error
}

// Digest is the result of one channel run.
type Digest struct {
	ChannelURL string
	Range      domain.DateRange
	Items      []Item
}

// Service wires the lister and the summarizer together.
type Service struct {
	Lister     ports.ChannelLister
	Metadata   ports.MetadataService
	Summarizer *summary.Service
	Clock      ports.Clock
	Logger     ports.Logger
}

// Run lists the channel's uploads, keeps those inside the date range,
// and summarizes them sequentially.
func (s *Service) Run(ctx context.Context, req Request) (Digest, error) {
	if s.Lister == nil || s.Summarizer == nil || s.Logger == nil {
		return Digest{}, errors.New("channel.Service dependencies not satisfied")
	}

	now := time.Now()
	if s.Clock != nil {
		now = s.Clock.Now()
	}
	dateRange, err := domain.ParseDateRange(req.DateExpr, now)
	if err != nil {
		return Digest{}, err
	}

	listings, err := s.Lister.List(ctx, req.ChannelURL, req.MaxVideos)
	if err != nil {
		return Digest{}, fmt.Errorf("list channel: %w", err)
	}

	digest := Digest{ChannelURL: req.ChannelURL, Range: dateRange}
	for _, listing := range listings {
		if ctx.Err() != nil {
			return digest, ctx.Err()
		}
		uploadDate := listing.UploadDate
		if uploadDate == "" && s.Metadata != nil {
			// Flat-playlist output often omits upload dates.
			if meta, err := s.Metadata.Fetch(ctx, listing.VideoID); err == nil {
				uploadDate = meta.UploadDate
				listing.UploadDate = uploadDate
			}
		}
		if !dateRange.Contains(uploadDate) {
			continue
		}

		item := Item{Listing: listing}
		videoReq := req.Base
		videoReq.VideoRef = listing.VideoID
		result, err := s.Summarizer.Summarize(ctx, videoReq)
		if err != nil {
			s.Logger.Warn("video summarization failed", map[string]interface{}{
				"video_id": listing.VideoID,
				"error":    err.Error(),
			})
			item.Err = err
		} else {
			item.Result = result
		}
		digest.Items = append(digest.Items, item)
	}
	return digest, nil
}
