package cache

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"playlist-duration/domain/model"
	"playlist-duration/domain/repository"
	"playlist-duration/infrastructure/logger"
)

const historyKey = "playlist:history"

// HistoryCache keeps the most recent calculations in a capped redis list,
// newest at the head.
type HistoryCache struct {
	client     redis.Cmdable
	maxEntries int64
}

func NewHistoryCache(client redis.Cmdable, maxEntries int) repository.IPlaylistHistory {
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &HistoryCache{client: client, maxEntries: int64(maxEntries)}
}

func (c *HistoryCache) Save(ctx context.Context, record *model.PlaylistHistory) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "marshal history record")
	}
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, historyKey, payload)
		pipe.LTrim(ctx, historyKey, 0, c.maxEntries-1)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "push history record")
	}
	return nil
}

func (c *HistoryCache) ListRecent(ctx context.Context, limit int) ([]model.PlaylistHistory, error) {
	values, err := c.client.LRange(ctx, historyKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "read history list")
	}

	list := make([]model.PlaylistHistory, 0, len(values))
	for _, v := range values {
		var rec model.PlaylistHistory
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			logger.WithContext(ctx).WithField("error", err).Warn("Skipping unreadable history entry")
			continue
		}
		list = append(list, rec)
	}
	return list, nil
}
