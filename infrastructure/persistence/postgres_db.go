package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cockroachdb/errors"
	_ "github.com/lib/pq"

	"playlist-duration/infrastructure/configuration"
)

// NewPostgreSQLDB opens the PostgreSQL history database
func NewPostgreSQLDB(ctx context.Context) (*sql.DB, error) {
	cfg := configuration.C.Database.Psql
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open postgres connection")
	}
	configurePool(db)
	if err := pingDB(ctx, db); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to reach postgres at %s:%s", cfg.Host, cfg.Port)
	}
	return db, nil
}
