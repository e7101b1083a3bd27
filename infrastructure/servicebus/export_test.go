package servicebus

// NewPlaylistPublisherWithSender lets tests replace the Service Bus sender
func NewPlaylistPublisherWithSender(queue string, send func(queue string) (MessageSender, error)) *PlaylistPublisher {
	return &PlaylistPublisher{
		queue: queue,
		newSender: func(queue string) (messageSender, error) {
			return send(queue)
		},
	}
}

type MessageSender = messageSender
