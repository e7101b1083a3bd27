package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"playlist-duration/domain/apperror"
	"playlist-duration/domain/dto"
	"playlist-duration/domain/model"
	httpHandler "playlist-duration/interfaces/http"
	"playlist-duration/usecase"
)

type MockPlaylistUseCase struct {
	mock.Mock
}

func (m *MockPlaylistUseCase) Calculate(ctx context.Context, req *dto.PlaylistRequest) (*model.PlaylistResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlaylistResult), args.Error(1)
}

func (m *MockPlaylistUseCase) CalculateWithProgress(ctx context.Context, req *dto.PlaylistRequest, observe usecase.StageObserver) (*model.PlaylistResult, error) {
	args := m.Called(ctx, req, observe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlaylistResult), args.Error(1)
}

func (m *MockPlaylistUseCase) ListHistory(ctx context.Context, limit int) ([]model.PlaylistHistory, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PlaylistHistory), args.Error(1)
}

var sampleResult = &model.PlaylistResult{
	PlaylistID:   "PLabc",
	Title:        "Gophercon",
	Thumbnail:    "https://i.ytimg.com/hq.jpg",
	VideoCount:   120,
	TotalSeconds: 7265,
	Duration:     model.DurationBreakdown{Hours: 2, Minutes: 1, Seconds: 5},
}

func setupRouter(uc usecase.IPlaylistUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := httpHandler.NewPlaylistHandler(uc)
	router := gin.New()
	router.POST("/playlist", handler.CalculateDuration)
	router.POST("/playlist/stream", handler.StreamCalculation)
	router.GET("/playlist/history", handler.GetHistory)
	router.GET("/healthz", httpHandler.NewHealthHandler().Healthz)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestPlaylistHandler_CalculateDuration_Success(t *testing.T) {
	uc := new(MockPlaylistUseCase)
	uc.On("Calculate", mock.Anything, &dto.PlaylistRequest{URL: "https://www.youtube.com/playlist?list=PLabc"}).Return(sampleResult, nil)

	w := doRequest(setupRouter(uc), http.MethodPost, "/playlist", `{"url":"https://www.youtube.com/playlist?list=PLabc"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"playlistId": "PLabc",
		"title": "Gophercon",
		"thumbnail": "https://i.ytimg.com/hq.jpg",
		"videoCount": 120,
		"totalSeconds": 7265,
		"duration": {"days": 0, "hours": 2, "minutes": 1, "seconds": 5}
	}`, w.Body.String())
}

func TestPlaylistHandler_CalculateDuration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apperror.New(apperror.ErrValidation, apperror.MsgURLRequired), http.StatusBadRequest, apperror.MsgURLRequired},
		{"not found", apperror.New(apperror.ErrNotFound, apperror.MsgNoVideos), http.StatusNotFound, apperror.MsgNoVideos},
		{"quota", apperror.Wrap(apperror.ErrQuotaExceeded, apperror.MsgQuotaExceeded, errors.New("quota")), http.StatusTooManyRequests, apperror.MsgQuotaExceeded},
		{"config", apperror.New(apperror.ErrConfig, apperror.MsgAPIKeyNotConfigured), http.StatusInternalServerError, apperror.MsgAPIKeyNotConfigured},
		{"unclassified hides detail", errors.New("dial tcp 10.0.0.1:443: i/o timeout"), http.StatusInternalServerError, apperror.MsgProcessing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockPlaylistUseCase)
			uc.On("Calculate", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := doRequest(setupRouter(uc), http.MethodPost, "/playlist", `{"url":"x"}`)

			assert.Equal(t, tt.status, w.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Error)
		})
	}
}

func TestPlaylistHandler_CalculateDuration_MalformedBodyIsEmptyURL(t *testing.T) {
	uc := new(MockPlaylistUseCase)
	uc.On("Calculate", mock.Anything, &dto.PlaylistRequest{URL: ""}).
		Return(nil, apperror.New(apperror.ErrValidation, apperror.MsgURLRequired))

	w := doRequest(setupRouter(uc), http.MethodPost, "/playlist", `{"url":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Playlist URL is required"}`, w.Body.String())
	uc.AssertExpectations(t)
}

func TestPlaylistHandler_StreamCalculation(t *testing.T) {
	uc := new(MockPlaylistUseCase)
	uc.On("CalculateWithProgress", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			observe := args.Get(2).(usecase.StageObserver)
			observe(model.StageValidating)
			observe(model.StageDone)
		}).
		Return(sampleResult, nil)

	w := doRequest(setupRouter(uc), http.MethodPost, "/playlist/stream", `{"url":"https://www.youtube.com/playlist?list=PLabc"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "event: stage\ndata: {\"stage\":\"Validating\"}\n\n")
	assert.Contains(t, body, "event: stage\ndata: {\"stage\":\"Done\"}\n\n")
	assert.Contains(t, body, "event: result\ndata: {\"playlistId\":\"PLabc\"")
	assert.NotContains(t, body, "event: error")
}

func TestPlaylistHandler_StreamCalculation_Error(t *testing.T) {
	uc := new(MockPlaylistUseCase)
	uc.On("CalculateWithProgress", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(2).(usecase.StageObserver)(model.StageFailed)
		}).
		Return(nil, apperror.New(apperror.ErrNotFound, apperror.MsgPlaylistNotFound))

	w := doRequest(setupRouter(uc), http.MethodPost, "/playlist/stream", `{"url":"x"}`)

	body := w.Body.String()
	assert.Contains(t, body, "event: error\ndata: {\"error\":\"Playlist not found\",\"status\":404}\n\n")
	assert.NotContains(t, body, "event: result")
}

func TestPlaylistHandler_GetHistory(t *testing.T) {
	created := sampleHistory()
	uc := new(MockPlaylistUseCase)
	uc.On("ListHistory", mock.Anything, 0).Return([]model.PlaylistHistory{created}, nil)
	uc.On("ListHistory", mock.Anything, 5).Return([]model.PlaylistHistory{}, nil)

	router := setupRouter(uc)

	w := doRequest(router, http.MethodGet, "/playlist/history", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var body dto.HistoryListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []model.PlaylistHistory{created}, body.Items)

	w = doRequest(router, http.MethodGet, "/playlist/history?limit=5", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[]}`, w.Body.String())
}

func TestPlaylistHandler_GetHistory_BadLimit(t *testing.T) {
	uc := new(MockPlaylistUseCase)

	for _, limit := range []string{"abc", "0", "-3"} {
		w := doRequest(setupRouter(uc), http.MethodGet, "/playlist/history?limit="+limit, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, limit)
	}
	uc.AssertNotCalled(t, "ListHistory", mock.Anything, mock.Anything)
}

func TestPlaylistHandler_GetHistory_StoreFailure(t *testing.T) {
	uc := new(MockPlaylistUseCase)
	uc.On("ListHistory", mock.Anything, 0).Return(nil, errors.New("connection refused"))

	w := doRequest(setupRouter(uc), http.MethodGet, "/playlist/history", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestHealthHandler(t *testing.T) {
	w := doRequest(setupRouter(new(MockPlaylistUseCase)), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
