package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"playlist-duration/domain/apperror"
	"playlist-duration/domain/dto"
	"playlist-duration/infrastructure/logger"
	"playlist-duration/infrastructure/realtime"
	"playlist-duration/usecase"
)

// IPlaylistHandler defines the interface for playlist HTTP handlers
type IPlaylistHandler interface {
	CalculateDuration(ctx *gin.Context)
	StreamCalculation(ctx *gin.Context)
	GetHistory(ctx *gin.Context)
}

// PlaylistHandler implements the playlist HTTP handlers
type PlaylistHandler struct {
	playlistUseCase usecase.IPlaylistUseCase
}

// NewPlaylistHandler creates a new playlist handler instance
func NewPlaylistHandler(playlistUseCase usecase.IPlaylistUseCase) IPlaylistHandler {
	return &PlaylistHandler{
		playlistUseCase: playlistUseCase,
	}
}

// bindRequest reads the {url} body. A missing or malformed body reads as an empty
// url so the usecase reports it in its usual order (credential first).
func bindRequest(ctx *gin.Context) *dto.PlaylistRequest {
	req := &dto.PlaylistRequest{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.WithContext(ctx.Request.Context()).WithField("error", err).Debug("Unreadable playlist request body")
		req.URL = ""
	}
	return req
}

// CalculateDuration handles POST /playlist
func (h *PlaylistHandler) CalculateDuration(ctx *gin.Context) {
	req := bindRequest(ctx)

	result, err := h.playlistUseCase.Calculate(ctx.Request.Context(), req)
	if err != nil {
		appErr := apperror.Classify(err)
		ctx.JSON(apperror.HTTPStatus(appErr), dto.ErrorResponse{Error: appErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// StreamCalculation handles POST /playlist/stream
func (h *PlaylistHandler) StreamCalculation(ctx *gin.Context) {
	req := bindRequest(ctx)
	stream := realtime.NewStageStream(ctx)

	result, err := h.playlistUseCase.CalculateWithProgress(ctx.Request.Context(), req, stream.Stage)
	if err != nil {
		appErr := apperror.Classify(err)
		stream.Error(appErr.Message, apperror.HTTPStatus(appErr))
		return
	}
	stream.Result(result)
}

// GetHistory handles GET /playlist/history
func (h *PlaylistHandler) GetHistory(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val < 1 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = val
	}

	items, err := h.playlistUseCase.ListHistory(ctx.Request.Context(), limit)
	if err != nil {
		logger.WithContext(ctx.Request.Context()).WithField("error", err).Error("Error listing playlist history")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to load playlist history"})
		return
	}
	ctx.JSON(http.StatusOK, dto.HistoryListResponse{Items: items})
}
