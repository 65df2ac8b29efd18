package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/quillblog/quill/configs"
	"github.com/quillblog/quill/internal/core/ports"
)

// Client reads video metadata from the YouTube Data API. It implements
// ports.VideoProvider.
type Client struct {
	service   *yt.Service
	channelID string
	timeout   time.Duration
	logger    *logrus.Logger
}

// NewClient creates a YouTube-backed video provider.
func NewClient(ctx context.Context, cfg *configs.YouTubeConfig, logger *logrus.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("youtube API key is not configured")
	}

	service, err := yt.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	return &Client{
		service:   service,
		channelID: cfg.ChannelID,
		timeout:   cfg.Timeout,
		logger:    logger,
	}, nil
}

// GetVideo fetches metadata for one video ID.
func (c *Client) GetVideo(ctx context.Context, id string) (*ports.VideoMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.service.Videos.List([]string{"snippet", "contentDetails"}).Id(id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video %s: %w", id, err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video %s: %w", id, ports.ErrNotFound)
	}

	return videoToMetadata(resp.Items[0]), nil
}

// ListChannelUploads returns the most recent uploads of the configured
// channel, newest first.
func (c *Client) ListChannelUploads(ctx context.Context, maxResults int) ([]*ports.VideoMetadata, error) {
	if c.channelID == "" {
		return nil, fmt.Errorf("youtube channel ID is not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	chResp, err := c.service.Channels.List([]string{"contentDetails"}).Id(c.channelID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel %s: %w", c.channelID, err)
	}
	if len(chResp.Items) == 0 {
		return nil, fmt.Errorf("channel %s: %w", c.channelID, ports.ErrNotFound)
	}
	uploadsID := chResp.Items[0].ContentDetails.RelatedPlaylists.Uploads

	plResp, err := c.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(uploadsID).
		MaxResults(int64(maxResults)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch uploads playlist: %w", err)
	}

	videos := make([]*ports.VideoMetadata, 0, len(plResp.Items))
	for _, item := range plResp.Items {
		if item.Snippet == nil || item.ContentDetails == nil {
			continue
		}
		published, _ := time.Parse(time.RFC3339, item.ContentDetails.VideoPublishedAt)
		videos = append(videos, &ports.VideoMetadata{
			ID:           item.ContentDetails.VideoId,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ChannelTitle: item.Snippet.ChannelTitle,
			ThumbnailURL: bestThumbnail(item.Snippet.Thumbnails),
			PublishedAt:  published,
		})
	}

	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{"channel_id": c.channelID, "count": len(videos)}).Debug("youtube: listed channel uploads")
	}
	return videos, nil
}

func videoToMetadata(v *yt.Video) *ports.VideoMetadata {
	meta := &ports.VideoMetadata{ID: v.Id}
	if v.Snippet != nil {
		meta.Title = v.Snippet.Title
		meta.Description = v.Snippet.Description
		meta.ChannelTitle = v.Snippet.ChannelTitle
		meta.ThumbnailURL = bestThumbnail(v.Snippet.Thumbnails)
		meta.PublishedAt, _ = time.Parse(time.RFC3339, v.Snippet.PublishedAt)
	}
	if v.ContentDetails != nil {
		meta.Duration = parseISODuration(v.ContentDetails.Duration)
	}
	return meta
}

func bestThumbnail(t *yt.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*yt.Thumbnail{t.Maxres, t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISODuration handles the PT#H#M#S form the Data API uses. Unparseable
// values come back as zero.
func parseISODuration(s string) time.Duration {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	var d time.Duration
	if m[1] != "" {
		h, _ := strconv.Atoi(m[1])
		d += time.Duration(h) * time.Hour
	}
	if m[2] != "" {
		min, _ := strconv.Atoi(m[2])
		d += time.Duration(min) * time.Minute
	}
	if m[3] != "" {
		sec, _ := strconv.Atoi(m[3])
		d += time.Duration(sec) * time.Second
	}
	return d
}
