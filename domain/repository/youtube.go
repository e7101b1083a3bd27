package repository

import (
	"context"

	"playlist-duration/domain/dto"
	"playlist-duration/domain/model"
)

// YouTubeMaxResults is the largest page the playlistItems endpoint returns and
// the largest id list the videos endpoint accepts in one call.
const YouTubeMaxResults = 50

// IYouTube defines the read-only YouTube Data API operations used by the calculator
type IYouTube interface {
	// GetPlaylist returns the playlist snippet, or nil when the API knows no such playlist.
	GetPlaylist(ctx context.Context, playlistID string) (*model.PlaylistInfo, error)
	// ListPlaylistItems returns one page of member video ids. An empty pageToken requests the first page.
	ListPlaylistItems(ctx context.Context, playlistID, pageToken string) (*dto.PlaylistItemsPage, error)
	// ListVideoDurations returns the ISO-8601 duration of every video the API resolved.
	// Unknown or private ids are silently absent from the result.
	ListVideoDurations(ctx context.Context, videoIDs []string) ([]string, error)
}
