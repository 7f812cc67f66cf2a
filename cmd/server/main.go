// Yatra - travel context orchestrator and itinerary route optimizer.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/yatralabs/yatra-server/internal/api"
	"github.com/yatralabs/yatra-server/internal/assistant"
	"github.com/yatralabs/yatra-server/internal/config"
	"github.com/yatralabs/yatra-server/internal/middleware"
	"github.com/yatralabs/yatra-server/internal/provider"
	"github.com/yatralabs/yatra-server/internal/route"
	"github.com/yatralabs/yatra-server/internal/store"
	"github.com/yatralabs/yatra-server/internal/translate"
	"github.com/yatralabs/yatra-server/internal/travelctx"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	// Provider gateway clients. A missing API key leaves the client in
	// place; its calls fail as rejected and degrade per the caller's policy.
	weatherClient := provider.NewWeatherClient(provider.WeatherClientConfig{
		APIKey:  cfg.OpenWeatherAPIKey,
		Timeout: cfg.ProviderTimeout,
	})
	routingClient := provider.NewRoutingClient(provider.RoutingClientConfig{
		APIKey:  cfg.GoogleMapsAPIKey,
		Timeout: cfg.ProviderTimeout,
	})
	placesClient := provider.NewPlacesClient(provider.PlacesClientConfig{
		APIKey:  cfg.GoogleMapsAPIKey,
		Timeout: cfg.ProviderTimeout,
	})
	translateClient := provider.NewTranslateClient(provider.TranslateClientConfig{
		APIKey:  cfg.GoogleTranslateAPIKey,
		Timeout: cfg.ProviderTimeout,
	})
	chatClient := provider.NewChatClient(provider.ChatClientConfig{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.ProviderTimeout,
	})

	// Initialize services.
	translationCache, err := translate.New(translateClient, cfg.TranslationCacheSize)
	if err != nil {
		slog.Error("Failed to initialize translation cache", "error", err)
		os.Exit(1)
	}
	aggregator := travelctx.New(weatherClient, placesClient, cfg.AggregationTimeout)
	chatService := assistant.New(aggregator, chatClient)
	optimizer := route.NewOptimizer(routingClient)

	// Initialize handlers.
	travelHandler := api.NewTravelHandler(chatService, optimizer, translationCache,
		weatherClient, placesClient, repo, cfg.HistoryLimit)
	healthHandler := api.NewHealthHandler(repo)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))

	healthHandler.RegisterHealth(r)
	travelHandler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
