package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"playlist-duration/domain/repository"
	"playlist-duration/infrastructure/cache"
	youtubeclient "playlist-duration/infrastructure/clients/youtube"
	"playlist-duration/infrastructure/configuration"
	"playlist-duration/infrastructure/logger"
	"playlist-duration/infrastructure/persistence"
	"playlist-duration/infrastructure/pubsub"
	"playlist-duration/infrastructure/servicebus"
	httpHandler "playlist-duration/interfaces/http"
	"playlist-duration/server"
	"playlist-duration/usecase"
)

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := configuration.C.App
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	// A missing key does not stop the server: calculations answer with a configuration error instead.
	youtubeConfig := configuration.GetYouTubeConfig()
	logger.GetLogger().WithFields(map[string]interface{}{
		"hasAPIKey":        usecase.CredentialConfigured(youtubeConfig.APIKey),
		"endpointOverride": youtubeConfig.Endpoint != "",
		"batchConcurrency": youtubeConfig.BatchConcurrency,
	}).Info("Loaded YouTube configuration state")

	var youtubeClient repository.IYouTube
	if usecase.CredentialConfigured(youtubeConfig.APIKey) {
		client, err := youtubeclient.NewYouTubeClient(ctx, &youtubeclient.Config{
			APIKey:         youtubeConfig.APIKey,
			Endpoint:       youtubeConfig.Endpoint,
			RequestTimeout: youtubeConfig.RequestTimeout,
		})
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Failed to initialize YouTube client")
		} else {
			youtubeClient = client
		}
	} else {
		logger.GetLogger().Warn("YouTube API key is not configured - playlist calculations will fail until it is set")
	}

	playlistUseCase := usecase.NewPlaylistUseCase(youtubeClient, usecase.PlaylistConfig{
		APIKey:           youtubeConfig.APIKey,
		BatchConcurrency: youtubeConfig.BatchConcurrency,
	})
	if history, closeHistory := InitiateHistory(ctx); history != nil {
		playlistUseCase.WithHistory(history)
		closers = append(closers, closeHistory)
	}
	if publisher, closePublisher := InitiatePublisher(ctx); publisher != nil {
		playlistUseCase.WithPublisher(publisher)
		closers = append(closers, closePublisher)
	}

	router := server.InitiateRouter(
		httpHandler.NewPlaylistHandler(playlistUseCase),
		httpHandler.NewHealthHandler(),
		configuration.C.Cors.AllowOrigins,
	)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	logger.GetLogger().WithFields(map[string]interface{}{"port": app.Port, "tls": app.TLSEnabled}).Info("Starting application")
	g.Go(func() error {
		var err error
		if app.TLSEnabled && app.TLSCertFile != "" && app.TLSKeyFile != "" {
			logger.GetLogger().WithFields(map[string]interface{}{"cert": app.TLSCertFile, "key": app.TLSKeyFile}).Info("Serving HTTPS")
			err = httpServer.ListenAndServeTLS(app.TLSCertFile, app.TLSKeyFile)
		} else {
			if app.TLSEnabled {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
			}
			err = httpServer.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.GetLogger().Info("Application shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(app.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// InitiateHistory connects the configured history backend. Any failure leaves
// history disabled; the calculator works without it.
func InitiateHistory(ctx context.Context) (repository.IPlaylistHistory, func()) {
	backend := configuration.C.History.Backend
	log := logger.GetLogger().WithField("backend", backend)

	switch backend {
	case "postgres":
		db, err := persistence.NewPostgreSQLDB(ctx)
		if err != nil {
			log.WithField("error", err).Warn("History store not available - continuing without history")
			return nil, nil
		}
		if err := persistence.EnsurePlaylistHistorySchema(db); err != nil {
			log.WithField("error", err).Warn("History schema check failed")
		}
		log.Info("History store connected")
		return persistence.NewHistoryRepository(db), func() { _ = db.Close() }
	case "mssql":
		db, err := persistence.NewMSSQLDB(ctx)
		if err != nil {
			log.WithField("error", err).Warn("History store not available - continuing without history")
			return nil, nil
		}
		if err := persistence.EnsurePlaylistHistorySchemaMSSQL(db); err != nil {
			log.WithField("error", err).Warn("History schema check failed")
		}
		log.Info("History store connected")
		return persistence.NewHistoryRepositoryMSSQL(db), func() { _ = db.Close() }
	case "mysql":
		db, err := persistence.NewMySQLGormDB()
		if err != nil {
			log.WithField("error", err).Warn("History store not available - continuing without history")
			return nil, nil
		}
		if err := persistence.MigratePlaylistHistory(db); err != nil {
			log.WithField("error", err).Warn("History schema check failed")
		}
		log.Info("History store connected")
		return persistence.NewHistoryRepositoryGorm(db), func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
	case "mongo":
		client, err := persistence.NewMongoDb(ctx)
		if err != nil {
			log.WithField("error", err).Warn("History store not available - continuing without history")
			return nil, nil
		}
		log.Info("History store connected")
		return persistence.NewHistoryRepositoryMongo(client, configuration.C.Database.Mongo.Name), func() {
			_ = client.Disconnect(context.Background())
		}
	case "redis":
		client, err := cache.NewCache(ctx)
		if err != nil {
			log.WithField("error", err).Warn("History store not available - continuing without history")
			return nil, nil
		}
		log.Info("History store connected")
		return cache.NewHistoryCache(client, configuration.C.History.MaxEntries), func() { _ = client.Close() }
	default:
		return nil, nil
	}
}

// InitiatePublisher connects the configured event backend. Any failure leaves events disabled.
func InitiatePublisher(ctx context.Context) (repository.IPlaylistEventPublisher, func()) {
	backend := configuration.C.Events.Backend
	log := logger.GetLogger().WithField("backend", backend)

	switch backend {
	case "pubsub":
		client, err := pubsub.NewPubSubClient(ctx, configuration.C.Pubsub.ProjectID)
		if err != nil {
			log.WithField("error", err).Warn("PubSub not available - continuing without events")
			return nil, nil
		}
		publisher := pubsub.NewPlaylistPublisher(client, configuration.C.Pubsub.Topic)
		log.Info("Event publisher connected")
		return publisher, func() {
			if p, ok := publisher.(*pubsub.PlaylistPublisher); ok {
				p.Stop()
			}
			_ = client.Close()
		}
	case "servicebus":
		client, err := servicebus.NewServiceBus(configuration.C.ServiceBus.Namespace)
		if err != nil {
			log.WithField("error", err).Warn("Azure Service Bus not available - continuing without events")
			return nil, nil
		}
		log.Info("Event publisher connected")
		return servicebus.NewPlaylistPublisher(client, configuration.C.ServiceBus.Queue), func() {
			_ = client.Close(context.Background())
		}
	default:
		return nil, nil
	}
}
