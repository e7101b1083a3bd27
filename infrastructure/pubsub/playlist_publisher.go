package pubsub

import (
	"context"
	"encoding/json"
	"sync"

	"cloud.google.com/go/pubsub"
	"github.com/cockroachdb/errors"

	"playlist-duration/domain/dto"
	"playlist-duration/domain/repository"
	"playlist-duration/infrastructure/logger"
)

const eventTypePlaylistCalculated = "PlaylistCalculated"

// PlaylistPublisher publishes PlaylistCalculated events to a Pub/Sub topic
type PlaylistPublisher struct {
	PubSubClient *pubsub.Client
	topicName    string

	mu    sync.Mutex
	topic *pubsub.Topic
}

func NewPlaylistPublisher(pubSubClient *pubsub.Client, topicName string) repository.IPlaylistEventPublisher {
	return &PlaylistPublisher{
		PubSubClient: pubSubClient,
		topicName:    topicName,
	}
}

func (p *PlaylistPublisher) PublishPlaylistCalculated(ctx context.Context, event *dto.PlaylistCalculatedEvent) error {
	if p.PubSubClient == nil {
		return errors.New("pubsub client is not configured")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal playlist event")
	}

	topic, err := p.ensureTopic(ctx)
	if err != nil {
		return err
	}

	serverID, err := topic.Publish(ctx, &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"eventType":  eventTypePlaylistCalculated,
			"playlistId": event.PlaylistID,
		},
	}).Get(ctx)
	if err != nil {
		return errors.Wrapf(err, "publish to topic %s", p.topicName)
	}

	logger.WithContext(ctx).WithField("server ID", serverID).Info("Message published")
	return nil
}

// ensureTopic creates the topic if it doesn't exist. A failed lookup is retried on the next publish.
func (p *PlaylistPublisher) ensureTopic(ctx context.Context) (*pubsub.Topic, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.topic != nil {
		return p.topic, nil
	}

	topic := p.PubSubClient.Topic(p.topicName)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "check topic %s", p.topicName)
	}
	if !exists {
		logger.WithContext(ctx).WithField("topic", p.topicName).Info("Topic doesn't exist - creating it")
		if topic, err = p.PubSubClient.CreateTopic(ctx, p.topicName); err != nil {
			return nil, errors.Wrapf(err, "create topic %s", p.topicName)
		}
	}
	p.topic = topic
	return topic, nil
}

// Stop flushes pending messages
func (p *PlaylistPublisher) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.topic != nil {
		p.topic.Stop()
	}
}
