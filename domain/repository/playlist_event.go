package repository

import (
	"context"

	"playlist-duration/domain/dto"
)

// IPlaylistEventPublisher announces finished calculations to a message broker
type IPlaylistEventPublisher interface {
	PublishPlaylistCalculated(ctx context.Context, event *dto.PlaylistCalculatedEvent) error
}
