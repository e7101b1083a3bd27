package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"playlist-duration/infrastructure/configuration"
)

// NewCache creates a redis client from configuration and checks the connection
func NewCache(ctx context.Context) (*redis.Client, error) {
	cfg := configuration.C.Redis
	dbIndex, err := strconv.Atoi(cfg.DatabaseName)
	if err != nil {
		return nil, errors.Wrapf(err, "redis databaseName must be a number, got %q", cfg.DatabaseName)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       dbIndex,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "failed to reach redis at %s", client.Options().Addr)
	}
	return client, nil
}
