package persistence

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"playlist-duration/infrastructure/configuration"
)

// NewMongoDb connects to MongoDB and verifies the connection
func NewMongoDb(ctx context.Context) (*mongo.Client, error) {
	cfg := configuration.C.Database.Mongo
	u := &url.URL{Scheme: "mongodb", Host: fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)}
	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}

	client, err := mongo.Connect(options.Client().ApplyURI(u.String()).SetServerSelectionTimeout(5 * time.Second))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create mongo client")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrapf(err, "failed to reach mongo at %s", u.Host)
	}
	return client, nil
}
