package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"playlist-duration/domain/apperror"
	"playlist-duration/domain/dto"
	"playlist-duration/domain/model"
	"playlist-duration/domain/repository"
	"playlist-duration/infrastructure/logger"
)

const (
	defaultBatchConcurrency = 4
	defaultHistoryLimit     = 20
	maxHistoryLimit         = 100
	sideEffectTimeout       = 5 * time.Second
)

// IPlaylistUseCase defines the playlist duration operations
type IPlaylistUseCase interface {
	// Calculate runs the whole pipeline for one pasted URL
	Calculate(ctx context.Context, req *dto.PlaylistRequest) (*model.PlaylistResult, error)
	// CalculateWithProgress is Calculate reporting every stage transition to observe
	CalculateWithProgress(ctx context.Context, req *dto.PlaylistRequest, observe StageObserver) (*model.PlaylistResult, error)
	// ListHistory returns recent calculations, newest first
	ListHistory(ctx context.Context, limit int) ([]model.PlaylistHistory, error)
}

// StageObserver receives pipeline transitions in order. The last stage is always Done or Failed.
type StageObserver func(stage model.Stage)

// PlaylistConfig carries the settings the pipeline validates or tunes with
type PlaylistConfig struct {
	APIKey           string
	BatchConcurrency int
}

// PlaylistUseCase implements the playlist duration pipeline
type PlaylistUseCase struct {
	youtubeRepo      repository.IYouTube
	apiKey           string
	batchConcurrency int
	history          repository.IPlaylistHistory        // optional
	publisher        repository.IPlaylistEventPublisher // optional
	now              func() time.Time
}

// NewPlaylistUseCase creates a new playlist use case instance
func NewPlaylistUseCase(youtubeRepo repository.IYouTube, cfg PlaylistConfig) *PlaylistUseCase {
	concurrency := cfg.BatchConcurrency
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}
	return &PlaylistUseCase{
		youtubeRepo:      youtubeRepo,
		apiKey:           cfg.APIKey,
		batchConcurrency: concurrency,
		now:              time.Now,
	}
}

// WithHistory enables best-effort history recording (fluent)
func (u *PlaylistUseCase) WithHistory(history repository.IPlaylistHistory) *PlaylistUseCase {
	u.history = history
	return u
}

// WithPublisher enables best-effort calculation events (fluent)
func (u *PlaylistUseCase) WithPublisher(publisher repository.IPlaylistEventPublisher) *PlaylistUseCase {
	u.publisher = publisher
	return u
}

// CredentialConfigured reports whether apiKey looks like a real key rather than
// an empty value or a template placeholder such as YOUR_YOUTUBE_API_KEY_HERE.
func CredentialConfigured(apiKey string) bool {
	apiKey = strings.TrimSpace(apiKey)
	return apiKey != "" && !strings.HasPrefix(strings.ToUpper(apiKey), "YOUR_")
}

// calculation is the state owned by one in-flight request
type calculation struct {
	rawURL       string
	playlistID   string
	info         *model.PlaylistInfo
	videoIDs     []string
	totalSeconds int64
}

type pipelineStep struct {
	stage model.Stage
	run   func(ctx context.Context, calc *calculation) error
}

func (u *PlaylistUseCase) pipeline() []pipelineStep {
	return []pipelineStep{
		{model.StageValidating, u.validate},
		{model.StageResolvingID, u.resolvePlaylistID},
		{model.StageFetchingMetadata, u.fetchMetadata},
		{model.StagePaginating, u.paginate},
		{model.StageAggregating, u.aggregate},
	}
}

// Calculate runs the whole pipeline for one pasted URL
func (u *PlaylistUseCase) Calculate(ctx context.Context, req *dto.PlaylistRequest) (*model.PlaylistResult, error) {
	return u.CalculateWithProgress(ctx, req, nil)
}

// CalculateWithProgress runs the pipeline steps in order and stops at the first
// failure. Every returned error is an *apperror.Error.
func (u *PlaylistUseCase) CalculateWithProgress(ctx context.Context, req *dto.PlaylistRequest, observe StageObserver) (*model.PlaylistResult, error) {
	if observe == nil {
		observe = func(model.Stage) {}
	}
	calc := &calculation{}
	if req != nil {
		calc.rawURL = strings.TrimSpace(req.URL)
	}

	for _, step := range u.pipeline() {
		observe(step.stage)
		if err := step.run(ctx, calc); err != nil {
			appErr := apperror.Classify(err)
			logger.WithContext(ctx).
				WithField("stage", step.stage).
				WithField("kind", apperror.KindName(appErr)).
				WithField("playlistId", calc.playlistID).
				WithField("error", err.Error()).
				Error("Error processing playlist")
			observe(model.StageFailed)
			return nil, appErr
		}
	}

	result := &model.PlaylistResult{
		PlaylistID:   calc.playlistID,
		Title:        calc.info.Title,
		Thumbnail:    calc.info.Thumbnail,
		VideoCount:   len(calc.videoIDs),
		TotalSeconds: calc.totalSeconds,
		Duration:     FormatDuration(calc.totalSeconds),
	}
	observe(model.StageDone)

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"playlistId":   result.PlaylistID,
		"videoCount":   result.VideoCount,
		"totalSeconds": result.TotalSeconds,
	}).Info("Playlist duration calculated")

	u.recordHistory(ctx, result)
	u.publishCalculated(ctx, result)
	return result, nil
}

func (u *PlaylistUseCase) validate(_ context.Context, calc *calculation) error {
	if !CredentialConfigured(u.apiKey) || u.youtubeRepo == nil {
		return apperror.New(apperror.ErrConfig, apperror.MsgAPIKeyNotConfigured)
	}
	if calc.rawURL == "" {
		return apperror.New(apperror.ErrValidation, apperror.MsgURLRequired)
	}
	return nil
}

func (u *PlaylistUseCase) resolvePlaylistID(_ context.Context, calc *calculation) error {
	id, ok := ExtractPlaylistID(calc.rawURL)
	if !ok {
		return apperror.New(apperror.ErrValidation, apperror.MsgInvalidPlaylistURL)
	}
	calc.playlistID = id
	return nil
}

func (u *PlaylistUseCase) fetchMetadata(ctx context.Context, calc *calculation) error {
	info, err := u.youtubeRepo.GetPlaylist(ctx, calc.playlistID)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to fetch playlist info"), apperror.ErrFetch)
	}
	if info == nil {
		return apperror.New(apperror.ErrNotFound, apperror.MsgPlaylistNotFound)
	}
	calc.info = info
	return nil
}

// An empty playlist and a private one look the same from here; both are NotFound.
func (u *PlaylistUseCase) paginate(ctx context.Context, calc *calculation) error {
	videoIDs, err := u.FetchAllVideoIDs(ctx, calc.playlistID)
	if err != nil {
		return err
	}
	if len(videoIDs) == 0 {
		return apperror.New(apperror.ErrNotFound, apperror.MsgNoVideos)
	}
	calc.videoIDs = videoIDs
	return nil
}

func (u *PlaylistUseCase) aggregate(ctx context.Context, calc *calculation) error {
	total, err := u.CalculateTotalDuration(ctx, calc.videoIDs)
	if err != nil {
		return err
	}
	calc.totalSeconds = total
	return nil
}

func (u *PlaylistUseCase) recordHistory(ctx context.Context, result *model.PlaylistResult) {
	if u.history == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	record := &model.PlaylistHistory{
		ID:                   uuid.NewString(),
		PlaylistID:           result.PlaylistID,
		Title:                result.Title,
		ThumbnailURL:         result.Thumbnail,
		TotalDurationSeconds: result.TotalSeconds,
		VideoCount:           result.VideoCount,
		CreatedAt:            u.now().UTC(),
	}
	if err := u.history.Save(saveCtx, record); err != nil {
		logger.WithContext(ctx).WithField("error", err).Warn("Failed to record playlist history")
	}
}

func (u *PlaylistUseCase) publishCalculated(ctx context.Context, result *model.PlaylistResult) {
	if u.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	event := &dto.PlaylistCalculatedEvent{
		PlaylistID:   result.PlaylistID,
		Title:        result.Title,
		VideoCount:   result.VideoCount,
		TotalSeconds: result.TotalSeconds,
		CalculatedAt: u.now().UTC(),
	}
	if err := u.publisher.PublishPlaylistCalculated(pubCtx, event); err != nil {
		logger.WithContext(ctx).WithField("error", err).Warn("Failed to publish playlist calculated event")
	}
}

// ListHistory returns recent calculations. Without a history store the list is empty.
func (u *PlaylistUseCase) ListHistory(ctx context.Context, limit int) ([]model.PlaylistHistory, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if u.history == nil {
		return []model.PlaylistHistory{}, nil
	}
	items, err := u.history.ListRecent(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list playlist history")
	}
	if items == nil {
		items = []model.PlaylistHistory{}
	}
	return items, nil
}
