package persistence

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"playlist-duration/domain/model"
	"playlist-duration/domain/repository"
	"playlist-duration/infrastructure/logger"
)

const historyCollection = "playlist_history"

// HistoryRepositoryMongo stores history documents in MongoDB
type HistoryRepositoryMongo struct {
	collection *mongo.Collection
}

func NewHistoryRepositoryMongo(client *mongo.Client, database string) repository.IPlaylistHistory {
	return &HistoryRepositoryMongo{collection: client.Database(database).Collection(historyCollection)}
}

func (r *HistoryRepositoryMongo) Save(ctx context.Context, record *model.PlaylistHistory) error {
	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return errors.Wrap(err, "insert playlist_history document")
	}
	return nil
}

func (r *HistoryRepositoryMongo) ListRecent(ctx context.Context, limit int) ([]model.PlaylistHistory, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find playlist_history documents")
	}
	defer func(cursor *mongo.Cursor, ctx context.Context) {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}(cursor, ctx)

	list := make([]model.PlaylistHistory, 0)
	for cursor.Next(ctx) {
		var rec model.PlaylistHistory
		if err := cursor.Decode(&rec); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding")
			continue
		}
		list = append(list, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate playlist_history documents")
	}
	return list, nil
}
