package persistence

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"

	"playlist-duration/domain/model"
	"playlist-duration/domain/repository"
)

// HistoryRepository implements playlist history persistence using PostgreSQL (native sql.DB)
type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) repository.IPlaylistHistory {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Save(ctx context.Context, record *model.PlaylistHistory) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO playlist_history (id, playlist_id, title, thumbnail_url, total_duration_seconds, video_count, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		record.ID, record.PlaylistID, record.Title, record.ThumbnailURL, record.TotalDurationSeconds, record.VideoCount, record.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "insert playlist_history")
	}
	return nil
}

func (r *HistoryRepository) ListRecent(ctx context.Context, limit int) ([]model.PlaylistHistory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, playlist_id, title, thumbnail_url, total_duration_seconds, video_count, created_at
		 FROM playlist_history ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query playlist_history")
	}
	defer rows.Close()
	return scanHistory(rows)
}

func scanHistory(rows *sql.Rows) ([]model.PlaylistHistory, error) {
	list := make([]model.PlaylistHistory, 0)
	for rows.Next() {
		var rec model.PlaylistHistory
		if err := rows.Scan(&rec.ID, &rec.PlaylistID, &rec.Title, &rec.ThumbnailURL, &rec.TotalDurationSeconds, &rec.VideoCount, &rec.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan playlist_history")
		}
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate playlist_history")
	}
	return list, nil
}
