package usecase

import (
	"context"
	"iter"

	"github.com/cockroachdb/errors"

	"playlist-duration/domain/apperror"
	"playlist-duration/domain/dto"
)

// hard stop against an upstream that keeps returning a cursor (~50k items at 50/page)
const maxPlaylistPages = 1000

var errPaginationRunaway = errors.New("playlist pagination did not terminate")

// playlistPages lazily walks the playlistItems listing. Each page is requested
// only when the consumer asks for it, and iteration stops after the first page
// without a continuation cursor or after the first error.
func (u *PlaylistUseCase) playlistPages(ctx context.Context, playlistID string) iter.Seq2[*dto.PlaylistItemsPage, error] {
	return func(yield func(*dto.PlaylistItemsPage, error) bool) {
		pageToken := ""
		for page := 0; ; page++ {
			if page == maxPlaylistPages {
				yield(nil, errPaginationRunaway)
				return
			}
			items, err := u.youtubeRepo.ListPlaylistItems(ctx, playlistID, pageToken)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(items, nil) || items.NextPageToken == "" {
				return
			}
			pageToken = items.NextPageToken
		}
	}
}

// FetchAllVideoIDs collects the id of every playlist member in playlist order.
// An empty playlist yields an empty slice; any failed page aborts the walk.
func (u *PlaylistUseCase) FetchAllVideoIDs(ctx context.Context, playlistID string) ([]string, error) {
	videoIDs := make([]string, 0)
	for page, err := range u.playlistPages(ctx, playlistID) {
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "failed to fetch playlist items"), apperror.ErrPagination)
		}
		videoIDs = append(videoIDs, page.VideoIDs...)
	}
	return videoIDs, nil
}
