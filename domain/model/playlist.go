package model

import "time"

// PlaylistInfo is the playlist metadata displayed next to the computed duration
type PlaylistInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

// DurationBreakdown is a total number of seconds split into days, hours, minutes and seconds.
// Days*86400 + Hours*3600 + Minutes*60 + Seconds always equals the input total.
type DurationBreakdown struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// PlaylistResult is the outcome of one playlist duration calculation
type PlaylistResult struct {
	PlaylistID   string            `json:"playlistId"`
	Title        string            `json:"title"`
	Thumbnail    string            `json:"thumbnail"`
	VideoCount   int               `json:"videoCount"`
	TotalSeconds int64             `json:"totalSeconds"`
	Duration     DurationBreakdown `json:"duration"`
}

// PlaylistHistory is a best-effort record of a finished calculation
type PlaylistHistory struct {
	ID                   string    `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	PlaylistID           string    `json:"playlist_id" gorm:"size:64;index" bson:"playlist_id"`
	Title                string    `json:"title" bson:"title"`
	ThumbnailURL         string    `json:"thumbnail_url" bson:"thumbnail_url"`
	TotalDurationSeconds int64     `json:"total_duration_seconds" bson:"total_duration_seconds"`
	VideoCount           int       `json:"video_count" bson:"video_count"`
	CreatedAt            time.Time `json:"created_at" gorm:"index" bson:"created_at"`
}

// TableName keeps the gorm table aligned with the SQL stores
func (PlaylistHistory) TableName() string {
	return "playlist_history"
}
