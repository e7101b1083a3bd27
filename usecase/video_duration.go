package usecase

import (
	"context"
	"slices"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"playlist-duration/domain/apperror"
	"playlist-duration/domain/repository"
)

// CalculateTotalDuration sums the durations of videoIDs. Ids are looked up in
// batches of repository.YouTubeMaxResults, at most batchConcurrency batches in
// flight. Ids the API does not return add nothing. The first failing batch
// cancels the rest and fails the whole sum.
func (u *PlaylistUseCase) CalculateTotalDuration(ctx context.Context, videoIDs []string) (int64, error) {
	batches := slices.Collect(slices.Chunk(videoIDs, repository.YouTubeMaxResults))
	batchTotals := make([]int64, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.batchConcurrency)
	for i, batch := range batches {
		g.Go(func() error {
			durations, err := u.youtubeRepo.ListVideoDurations(gctx, batch)
			if err != nil {
				return errors.Mark(errors.Wrapf(err, "failed to fetch video details (batch %d of %d)", i+1, len(batches)), apperror.ErrFetch)
			}
			for _, d := range durations {
				batchTotals[i] += ParseDuration(d)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total int64
	for _, t := range batchTotals {
		total += t
	}
	return total, nil
}
