package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phorb/eggsplode-server/internal/catalog"
	"github.com/phorb/eggsplode-server/internal/config"
	"github.com/phorb/eggsplode-server/internal/gateway"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting eggsplode server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	// Create context that listens for termination signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Load card catalog: database-backed when configured, built-in otherwise
	cat, err := loadCatalog(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to load card catalog", zap.Error(err))
	}
	logger.Info("card catalog loaded", zap.Strings("expansions", cat.Expansions()))

	// Initialize websocket hub and game manager
	hub := gateway.NewHub(cat, logger)
	logger.Info("gateway hub initialized")

	// Drive timeout defaults and registry sweeping from a single ticker
	go runSupervisor(ctx, hub, cfg.Game.TickInterval, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)

	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: mux,
	}

	go func() {
		logger.Info("starting websocket server", zap.String("address", cfg.Server.Address))
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Error("websocket server error", zap.Error(serveErr))
		}
	}()

	// Wait for termination signal
	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	logger.Info("shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", zap.Error(err))
	}

	logger.Info("eggsplode server stopped")
}

func loadCatalog(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*catalog.Catalog, error) {
	if cfg.URL == "" {
		return catalog.New(), nil
	}
	logger.Info("loading card catalog from database")
	return catalog.LoadPostgres(ctx, cfg.URL)
}

// runSupervisor ticks the manager's timeout pass until the context ends.
func runSupervisor(ctx context.Context, hub *gateway.Hub, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("timeout supervisor started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			hub.Manager().CheckTimeouts(now)
		}
	}
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
