package realtime

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"playlist-duration/domain/dto"
	"playlist-duration/domain/model"
	"playlist-duration/infrastructure/logger"
)

// SSE event names
const (
	EventStage  = "stage"
	EventResult = "result"
	EventError  = "error"
)

// StageStream writes the progress of one calculation as server-sent events:
// one "stage" event per transition, then a single "result" or "error" event.
type StageStream struct {
	c        *gin.Context
	finished bool
}

// NewStageStream switches the response to an SSE stream
func NewStageStream(c *gin.Context) *StageStream {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering
	c.Status(http.StatusOK)

	// Initial comment to commit headers
	_, _ = c.Writer.Write([]byte(":ok\n\n"))
	c.Writer.Flush()
	return &StageStream{c: c}
}

// Stage reports a pipeline transition. Usable directly as a usecase.StageObserver.
func (s *StageStream) Stage(stage model.Stage) {
	s.send(EventStage, dto.StageEvent{Stage: stage})
}

// Result ends the stream with the calculation result
func (s *StageStream) Result(result *model.PlaylistResult) {
	s.finish(EventResult, result)
}

// Error ends the stream with a caller-safe message and the status the plain endpoint would have used
func (s *StageStream) Error(message string, status int) {
	s.finish(EventError, dto.StreamErrorEvent{Error: message, Status: status})
}

func (s *StageStream) finish(event string, payload interface{}) {
	if s.finished {
		return
	}
	s.send(event, payload)
	s.finished = true
}

func (s *StageStream) send(event string, payload interface{}) {
	if s.finished {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		logger.WithContext(s.c.Request.Context()).WithField("error", err).Error("Error while encoding stream event")
		return
	}
	w := s.c.Writer
	_, _ = w.Write([]byte("event: " + event + "\n"))
	_, _ = w.Write([]byte("data: "))
	_, _ = w.Write(data)
	_, _ = w.Write([]byte("\n\n"))
	w.Flush()
}
