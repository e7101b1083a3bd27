package http_test

import (
	"time"

	"playlist-duration/domain/model"
)

func sampleHistory() model.PlaylistHistory {
	return model.PlaylistHistory{
		ID:                   "7d2f0c4e-1b2a-4c3d-9e8f-0a1b2c3d4e5f",
		PlaylistID:           "PLabc",
		Title:                "Gophercon",
		ThumbnailURL:         "https://i.ytimg.com/hq.jpg",
		TotalDurationSeconds: 7265,
		VideoCount:           120,
		CreatedAt:            time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
	}
}
