package youtube

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"playlist-duration/domain/dto"
	"playlist-duration/domain/model"
	"playlist-duration/domain/repository"
	"playlist-duration/infrastructure/logger"
)

// Client represents YouTube Data API client
type Client struct {
	service *youtube.Service
	timeout time.Duration
}

// Config represents YouTube API configuration
type Config struct {
	APIKey string `json:"api_key"`
	// Endpoint overrides the API base URL, e.g. for a local fake. Empty means Google's.
	Endpoint       string        `json:"endpoint"`
	RequestTimeout time.Duration `json:"request_timeout"`
}

// NewYouTubeClient creates a new YouTube API client in API key mode (read-only)
func NewYouTubeClient(ctx context.Context, config *Config) (repository.IYouTube, error) {
	if config == nil {
		return nil, errors.New("youtube client config is nil")
	}
	opts := []option.ClientOption{option.WithAPIKey(config.APIKey)}
	if config.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(config.Endpoint))
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create YouTube service with API key")
	}

	return &Client{
		service: service,
		timeout: config.RequestTimeout,
	}, nil
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// GetPlaylist fetches the snippet of a playlist. A playlist the API does not
// return (deleted, private or mistyped) yields nil without an error.
func (c *Client) GetPlaylist(ctx context.Context, playlistID string) (*model.PlaylistInfo, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.service.Playlists.List([]string{"snippet"}).
		Id(playlistID).
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to get playlist %s", playlistID)
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}

	item := resp.Items[0]
	info := &model.PlaylistInfo{ID: item.Id}
	if item.Snippet != nil {
		info.Title = item.Snippet.Title
		info.Thumbnail = thumbnailURL(item.Snippet.Thumbnails)
	}
	return info, nil
}

// ListPlaylistItems fetches one page of playlist members. An empty pageToken
// requests the first page.
func (c *Client) ListPlaylistItems(ctx context.Context, playlistID, pageToken string) (*dto.PlaylistItemsPage, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	call := c.service.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(repository.YouTubeMaxResults)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list items of playlist %s", playlistID)
	}

	page := &dto.PlaylistItemsPage{
		VideoIDs:      make([]string, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for _, item := range resp.Items {
		if item.ContentDetails == nil || item.ContentDetails.VideoId == "" {
			logger.WithContext(ctx).WithField("playlistItemId", item.Id).Debug("Skipping playlist item without video id")
			continue
		}
		page.VideoIDs = append(page.VideoIDs, item.ContentDetails.VideoId)
	}
	return page, nil
}

// ListVideoDurations returns the ISO-8601 duration of every video the API
// knows among videoIDs. Unknown or removed ids are simply absent.
func (c *Client) ListVideoDurations(ctx context.Context, videoIDs []string) ([]string, error) {
	if len(videoIDs) == 0 {
		return []string{}, nil
	}
	if len(videoIDs) > repository.YouTubeMaxResults {
		return nil, errors.Newf("at most %d video ids per request, got %d", repository.YouTubeMaxResults, len(videoIDs))
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.service.Videos.List([]string{"contentDetails"}).
		Id(strings.Join(videoIDs, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %d videos", len(videoIDs))
	}

	durations := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ContentDetails == nil {
			continue
		}
		durations = append(durations, item.ContentDetails.Duration)
	}
	return durations, nil
}

func thumbnailURL(thumbnails *youtube.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}
	if thumbnails.High != nil && thumbnails.High.Url != "" {
		return thumbnails.High.Url
	}
	if thumbnails.Default != nil {
		return thumbnails.Default.Url
	}
	return ""
}
