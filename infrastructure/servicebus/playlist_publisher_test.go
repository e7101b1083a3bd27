package servicebus_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"playlist-duration/domain/dto"
	"playlist-duration/infrastructure/servicebus"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendMessage(ctx context.Context, message *azservicebus.Message, options *azservicebus.SendMessageOptions) error {
	return m.Called(ctx, message, options).Error(0)
}

func (m *MockSender) Close(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestPlaylistPublisher_Sends(t *testing.T) {
	sender := new(MockSender)
	sender.On("SendMessage", mock.Anything, mock.MatchedBy(func(msg *azservicebus.Message) bool {
		var event dto.PlaylistCalculatedEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return false
		}
		return event.PlaylistID == "PLabc" &&
			*msg.Subject == "PlaylistCalculated" &&
			msg.ApplicationProperties["playlistId"] == "PLabc"
	}), (*azservicebus.SendMessageOptions)(nil)).Return(nil)
	sender.On("Close", mock.Anything).Return(nil)

	var usedQueue string
	publisher := servicebus.NewPlaylistPublisherWithSender("playlist-calculated", func(queue string) (servicebus.MessageSender, error) {
		usedQueue = queue
		return sender, nil
	})

	err := publisher.PublishPlaylistCalculated(context.Background(), &dto.PlaylistCalculatedEvent{PlaylistID: "PLabc", TotalSeconds: 60})

	require.NoError(t, err)
	assert.Equal(t, "playlist-calculated", usedQueue)
	sender.AssertExpectations(t)
}

func TestPlaylistPublisher_SendFailureStillCloses(t *testing.T) {
	sender := new(MockSender)
	sender.On("SendMessage", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("amqp link detached"))
	sender.On("Close", mock.Anything).Return(nil)

	publisher := servicebus.NewPlaylistPublisherWithSender("q", func(string) (servicebus.MessageSender, error) {
		return sender, nil
	})

	err := publisher.PublishPlaylistCalculated(context.Background(), &dto.PlaylistCalculatedEvent{PlaylistID: "PLabc"})

	assert.ErrorContains(t, err, "amqp link detached")
	sender.AssertCalled(t, "Close", mock.Anything)
}

func TestPlaylistPublisher_NilClient(t *testing.T) {
	publisher := servicebus.NewPlaylistPublisher(nil, "q")

	err := publisher.PublishPlaylistCalculated(context.Background(), &dto.PlaylistCalculatedEvent{})

	assert.Error(t, err)
}

func TestNewServiceBus_RequiresNamespace(t *testing.T) {
	client, err := servicebus.NewServiceBus("")

	assert.Nil(t, client)
	assert.Error(t, err)
}
