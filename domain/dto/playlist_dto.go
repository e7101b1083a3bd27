package dto

import (
	"time"

	"playlist-duration/domain/model"
)

// PlaylistRequest is the body of POST /playlist
type PlaylistRequest struct {
	URL string `json:"url"`
}

// ErrorResponse is returned for every non-200 answer
type ErrorResponse struct {
	Error string `json:"error"`
}

// PlaylistItemsPage is one page of the playlist membership listing
type PlaylistItemsPage struct {
	VideoIDs      []string
	NextPageToken string
}

// HistoryListResponse is the body of GET /playlist/history
type HistoryListResponse struct {
	Items []model.PlaylistHistory `json:"items"`
}

// StageEvent is streamed for every pipeline transition
type StageEvent struct {
	Stage model.Stage `json:"stage"`
}

// StreamErrorEvent terminates a progress stream that failed
type StreamErrorEvent struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// PlaylistCalculatedEvent is published after a successful calculation
type PlaylistCalculatedEvent struct {
	PlaylistID   string    `json:"playlistId"`
	Title        string    `json:"title"`
	VideoCount   int       `json:"videoCount"`
	TotalSeconds int64     `json:"totalSeconds"`
	CalculatedAt time.Time `json:"calculatedAt"`
}
