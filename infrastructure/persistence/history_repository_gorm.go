package persistence

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"playlist-duration/domain/model"
	"playlist-duration/domain/repository"
)

// HistoryRepositoryGorm stores history through gorm (MySQL)
type HistoryRepositoryGorm struct {
	db *gorm.DB
}

func NewHistoryRepositoryGorm(db *gorm.DB) repository.IPlaylistHistory {
	return &HistoryRepositoryGorm{db: db}
}

// MigratePlaylistHistory creates or updates the history table
func MigratePlaylistHistory(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.PlaylistHistory{}); err != nil {
		return errors.Wrap(err, "auto migrate playlist_history")
	}
	return nil
}

func (r *HistoryRepositoryGorm) Save(ctx context.Context, record *model.PlaylistHistory) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return errors.Wrap(err, "insert playlist_history")
	}
	return nil
}

func (r *HistoryRepositoryGorm) ListRecent(ctx context.Context, limit int) ([]model.PlaylistHistory, error) {
	list := make([]model.PlaylistHistory, 0)
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "query playlist_history")
	}
	return list, nil
}
