package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
)

const createHistoryTablePostgres = `CREATE TABLE IF NOT EXISTS playlist_history (
	id VARCHAR(36) PRIMARY KEY,
	playlist_id VARCHAR(64) NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	thumbnail_url TEXT NOT NULL DEFAULT '',
	total_duration_seconds BIGINT NOT NULL,
	video_count INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

const createHistoryIndexPostgres = `CREATE INDEX IF NOT EXISTS idx_playlist_history_created_at ON playlist_history (created_at DESC)`

const createHistoryTableMSSQL = `IF OBJECT_ID(N'dbo.playlist_history', N'U') IS NULL
CREATE TABLE dbo.playlist_history (
	id NVARCHAR(36) NOT NULL PRIMARY KEY,
	playlist_id NVARCHAR(64) NOT NULL,
	title NVARCHAR(MAX) NOT NULL DEFAULT '',
	thumbnail_url NVARCHAR(MAX) NOT NULL DEFAULT '',
	total_duration_seconds BIGINT NOT NULL,
	video_count INT NOT NULL,
	created_at DATETIME2 NOT NULL,
	INDEX idx_playlist_history_created_at (created_at DESC)
)`

// EnsurePlaylistHistorySchema creates the history table on PostgreSQL if it is missing.
// Safe to call at startup.
func EnsurePlaylistHistorySchema(db *sql.DB) error {
	return execSchema(db, createHistoryTablePostgres, createHistoryIndexPostgres)
}

// EnsurePlaylistHistorySchemaMSSQL is EnsurePlaylistHistorySchema for SQL Server
func EnsurePlaylistHistorySchemaMSSQL(db *sql.DB) error {
	return execSchema(db, createHistoryTableMSSQL)
}

func execSchema(db *sql.DB, statements ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, ddl := range statements {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return errors.Wrap(err, "creating playlist_history schema failed")
		}
	}
	return nil
}
