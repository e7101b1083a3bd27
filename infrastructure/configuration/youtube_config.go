package configuration

import (
	"time"
)

// YouTubeConfig is the resolved YouTube Data API configuration
type YouTubeConfig struct {
	APIKey           string
	Endpoint         string
	BatchConcurrency int
	RequestTimeout   time.Duration
}

// GetYouTubeConfig returns YouTube configuration from the loaded config. The
// API key is returned as configured, placeholder or not; callers decide
// whether it is usable.
func GetYouTubeConfig() *YouTubeConfig {
	return &YouTubeConfig{
		APIKey:           C.YouTube.APIKey,
		Endpoint:         C.YouTube.Endpoint,
		BatchConcurrency: C.YouTube.BatchConcurrency,
		RequestTimeout:   time.Duration(C.YouTube.RequestTimeoutSeconds) * time.Second,
	}
}
