package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpHandler "playlist-duration/interfaces/http"
	"playlist-duration/interfaces/middleware"
)

func InitiateRouter(
	playlistHandler httpHandler.IPlaylistHandler,
	healthHandler httpHandler.IHealthHandler,
	allowOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(cors.New(corsConfig(allowOrigins)))

	router.GET("/healthz", healthHandler.Healthz)

	playlist := router.Group("/playlist")
	{
		playlist.POST("", playlistHandler.CalculateDuration)
		playlist.POST("/stream", playlistHandler.StreamCalculation)
		playlist.GET("/history", playlistHandler.GetHistory)
	}

	return router
}

func corsConfig(allowOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(allowOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, origin := range allowOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = allowOrigins
	cfg.AllowCredentials = true
	return cfg
}
