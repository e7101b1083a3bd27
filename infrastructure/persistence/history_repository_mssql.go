package persistence

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"

	"playlist-duration/domain/model"
	"playlist-duration/domain/repository"
)

// HistoryRepositoryMSSQL is the SQL Server variant of HistoryRepository
type HistoryRepositoryMSSQL struct {
	db *sql.DB
}

func NewHistoryRepositoryMSSQL(db *sql.DB) repository.IPlaylistHistory {
	return &HistoryRepositoryMSSQL{db: db}
}

func (r *HistoryRepositoryMSSQL) Save(ctx context.Context, record *model.PlaylistHistory) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO playlist_history (id, playlist_id, title, thumbnail_url, total_duration_seconds, video_count, created_at)
		 VALUES (@p1,@p2,@p3,@p4,@p5,@p6,@p7)`,
		record.ID, record.PlaylistID, record.Title, record.ThumbnailURL, record.TotalDurationSeconds, record.VideoCount, record.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "insert playlist_history")
	}
	return nil
}

func (r *HistoryRepositoryMSSQL) ListRecent(ctx context.Context, limit int) ([]model.PlaylistHistory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT TOP (@p1) id, playlist_id, title, thumbnail_url, total_duration_seconds, video_count, created_at
		 FROM playlist_history ORDER BY created_at DESC`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query playlist_history")
	}
	defer rows.Close()
	return scanHistory(rows)
}
