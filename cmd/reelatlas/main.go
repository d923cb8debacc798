package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"reelatlas/internal/api"
	"reelatlas/pkg/config"
	"reelatlas/pkg/geocode"
	"reelatlas/pkg/llm/gemini"
	"reelatlas/pkg/logging"
	"reelatlas/pkg/media"
	"reelatlas/pkg/request"
	"reelatlas/pkg/summarizer"
	"reelatlas/pkg/summary"
	"reelatlas/pkg/tracker"
	"reelatlas/pkg/version"
)

var (
	configPath = flag.String("config", "configs/reelatlas.yaml", "Path to the config file")
	initConfig = flag.Bool("init-config", false, "Generate default config file and exit")
)

func main() {
	flag.Parse()

	// Secrets may live in a .env file during development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
	}

	if *initConfig {
		if err := config.Save(*configPath, config.DefaultConfig()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Config file generated:", *configPath)
		return
	}

	if err := run(context.Background(), *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cleanupLogs, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("ReelAtlas Started", "version", version.Version, "model", cfg.Gemini.Model)

	tr := tracker.New()
	reqClient := request.New(cfg.Request.Timeout.Std(), tr)

	geminiClient, err := gemini.NewClient(cfg.Gemini, cfg.Log.Gemini.Path, tr)
	if err != nil {
		return fmt.Errorf("failed to initialize gemini client: %w", err)
	}
	defer geminiClient.Close()

	if err := geminiClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("gemini startup check failed: %w", err)
	}

	downloader, err := media.NewYTDLP(cfg.Downloader)
	if err != nil {
		return fmt.Errorf("failed to initialize downloader: %w", err)
	}
	defer downloader.CleanupAll()

	sumSvc := summarizer.New(geminiClient, geminiClient, cfg.Gemini.UploadTimeout.Std())
	geocoder := geocode.New(cfg.Geocoding.Key, reqClient, tr)

	handler := api.NewHandler(
		downloader,
		sumSvc,
		geocoder,
		tr,
		summary.ExtractTitle,
		summary.ExtractLocationNames,
		cfg.Gemini.Key != "",
	)

	srv := api.NewServer(cfg.Server.Address, handler)
	srv.Handler = loggingMiddleware(srv.Handler)

	return runServerLifecycle(ctx, srv)
}

func runServerLifecycle(ctx context.Context, srv *http.Server) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	slog.Info("Starting server", "addr", srv.Addr)
	serverErrors := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case <-quit:
		slog.Info("Shutting down server...")
	case <-ctx.Done():
		slog.Info("Context cancelled, shutting down...")
	case err := <-serverErrors:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("Request Processed", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
