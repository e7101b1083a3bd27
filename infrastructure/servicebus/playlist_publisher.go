package servicebus

import (
	"context"
	"encoding/json"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"github.com/cockroachdb/errors"

	"playlist-duration/domain/dto"
	"playlist-duration/domain/repository"
	"playlist-duration/infrastructure/logger"
)

const eventTypePlaylistCalculated = "PlaylistCalculated"

type messageSender interface {
	SendMessage(ctx context.Context, message *azservicebus.Message, options *azservicebus.SendMessageOptions) error
	Close(ctx context.Context) error
}

// PlaylistPublisher sends PlaylistCalculated events to a Service Bus queue
type PlaylistPublisher struct {
	queue     string
	newSender func(queue string) (messageSender, error)
}

func NewPlaylistPublisher(azServiceBusClient *azservicebus.Client, queue string) repository.IPlaylistEventPublisher {
	return &PlaylistPublisher{
		queue: queue,
		newSender: func(queue string) (messageSender, error) {
			if azServiceBusClient == nil {
				return nil, errors.New("service bus client is not configured")
			}
			return azServiceBusClient.NewSender(queue, nil)
		},
	}
}

func (p *PlaylistPublisher) PublishPlaylistCalculated(ctx context.Context, event *dto.PlaylistCalculatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal playlist event")
	}

	sender, err := p.newSender(p.queue)
	if err != nil {
		logger.WithContext(ctx).
			WithField("error", err).
			Error("Error while making new sender service bus.")
		return errors.Wrapf(err, "new sender for queue %s", p.queue)
	}
	defer func(sender messageSender) {
		if err := sender.Close(context.WithoutCancel(ctx)); err != nil {
			logger.WithContext(ctx).
				WithField("error", err).
				Error("Error while closing sender.")
		}
	}(sender)

	contentType := "application/json"
	subject := eventTypePlaylistCalculated
	message := &azservicebus.Message{
		Body:        body,
		ContentType: &contentType,
		Subject:     &subject,
		ApplicationProperties: map[string]any{
			"playlistId": event.PlaylistID,
		},
	}
	if err := sender.SendMessage(ctx, message, nil); err != nil {
		return errors.Wrapf(err, "send to queue %s", p.queue)
	}
	return nil
}
