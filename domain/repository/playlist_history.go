package repository

import (
	"context"

	"playlist-duration/domain/model"
)

// IPlaylistHistory stores finished calculations. Implementations are best-effort and not authoritative.
type IPlaylistHistory interface {
	Save(ctx context.Context, record *model.PlaylistHistory) error
	// ListRecent returns at most limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.PlaylistHistory, error)
}
