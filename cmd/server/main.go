package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/internal/infrastructure/config"
	"tripwatch-service/internal/infrastructure/oauth"
	"tripwatch-service/internal/infrastructure/persistence"
	"tripwatch-service/internal/interface/provider"
	mongoRepo "tripwatch-service/internal/interface/repository"
	"tripwatch-service/internal/scheduler"
	"tripwatch-service/internal/usecase"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Starting Tripwatch Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up PostgreSQL for airline/airport reference data
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	bookingRepo := mongoRepo.NewMongoBookingRepository(db)
	notificationRepo := mongoRepo.NewMongoNotificationRepository(db)
	tripRepo := mongoRepo.NewMongoTripRepository(db)
	airlineRepo := mongoRepo.NewGormAirlineRepository(gormDB)
	airportRepo := mongoRepo.NewGormAirportRepository(gormDB)

	// Set up metrics
	engineMetrics := metrics.NewMetrics("tripwatch")

	// Set up flight status providers, primary first
	providerOAuth := oauth.NewProviderOAuth(cfg.LufthansaClientID, cfg.LufthansaSecret, cfg.LufthansaTokenURL, log)
	statusProviders := []repository.FlightStatusProvider{
		provider.NewAviationStackProvider(cfg.AviationStackBaseURL, cfg.AviationStackAPIKey, log),
		provider.NewLufthansaProvider(cfg.LufthansaBaseURL, providerOAuth.Client(ctx), log),
	}

	// Set up the engine: cache, chain, classifier, reminder engine, dedup gate
	statusCache := usecase.NewStatusCache(cfg.StatusCacheTTL)
	statusChain := usecase.NewStatusProviderChain(statusProviders, statusCache, cfg.ProviderTimeout, log, engineMetrics)
	classifier := usecase.NewChangeClassifier()
	reminderEngine := usecase.NewReminderEngine(cfg.ReminderTolerance())
	dedupGate := usecase.NewDedupGate(notificationRepo, log, engineMetrics)

	weatherProvider := provider.NewOpenWeatherProvider(cfg.OpenWeatherBaseURL, cfg.OpenWeatherAPIKey, log)

	reminderMonitor := usecase.NewReminderMonitor(bookingRepo, notificationRepo, reminderEngine, dedupGate, log, engineMetrics)
	flightMonitor := usecase.NewFlightStatusMonitor(bookingRepo, notificationRepo, airlineRepo, airportRepo, statusChain, classifier, dedupGate, log, engineMetrics)
	weatherMonitor := usecase.NewWeatherMonitor(tripRepo, bookingRepo, notificationRepo, weatherProvider, dedupGate, log, engineMetrics)

	// Set up the scheduler: four independently-ticking jobs
	supervisor := scheduler.NewSupervisor([]scheduler.Job{
		{Name: "reminders", Interval: cfg.ReminderInterval, Run: reminderMonitor.Run},
		{Name: "flight_status", Interval: cfg.FlightStatusInterval, Run: flightMonitor.Run},
		{Name: "weather", Interval: cfg.WeatherInterval, Run: weatherMonitor.Run},
		{Name: "cache_sweep", Interval: cfg.CacheSweepInterval, Run: func(ctx context.Context) error {
			removed := statusCache.Sweep()
			log.Debug("Status cache swept", "removed", removed, "remaining", statusCache.Len())
			return nil
		}},
	}, log, engineMetrics)
	supervisor.Start(ctx)

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	supervisor.Stop()
	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Tripwatch Service stopped")
}
