package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/onsideagency/touchline/internal/analysis"
	"github.com/onsideagency/touchline/internal/blob"
	"github.com/onsideagency/touchline/internal/config"
	"github.com/onsideagency/touchline/internal/database"
	"github.com/onsideagency/touchline/internal/events"
	"github.com/onsideagency/touchline/internal/fixtures"
	"github.com/onsideagency/touchline/internal/highlights"
	server "github.com/onsideagency/touchline/internal/http"
	"github.com/onsideagency/touchline/internal/knowledge"
	"github.com/onsideagency/touchline/internal/metrics"
	"github.com/onsideagency/touchline/internal/notifier/slack"
	"github.com/onsideagency/touchline/internal/roster"
	"github.com/onsideagency/touchline/internal/scouting"
	"github.com/onsideagency/touchline/internal/textgen"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	blobStore, err := blob.NewMinioStore(cfg.Minio)
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %s", err)
	}

	playerStore := roster.New(db)
	fixtureStore := fixtures.NewStore(db)
	analysisStore := analysis.NewStore(db)
	scoutingStore := scouting.NewStore(db)
	knowledgeStore := knowledge.NewStore(db)

	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	eventsClient := events.New(cfg.ProjectID)
	textGen := textgen.NewClient(cfg.TextGen.BaseURL, cfg.TextGen.APIKey, metricsSvc)

	manager := highlights.NewManager(playerStore, metricsSvc)
	uploader := highlights.NewUploader(blobStore, manager, metricsSvc, notifier, eventsClient, nil)
	extractor := fixtures.NewExtractor(textGen)
	reviewer := scouting.NewReviewer(scoutingStore, textGen, eventsClient)

	s := server.NewServer(
		playerStore,
		manager,
		uploader,
		blobStore,
		fixtureStore,
		extractor,
		analysisStore,
		scoutingStore,
		reviewer,
		knowledgeStore,
		textGen,
		notifier,
		eventsClient,
		metricsSvc,
		metricsHandler,
		cfg,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
