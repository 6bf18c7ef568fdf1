package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/iwvelando/raroc-pricing/internal/cache"
	"github.com/iwvelando/raroc-pricing/internal/config"
	"github.com/iwvelando/raroc-pricing/internal/server"
	"github.com/iwvelando/raroc-pricing/internal/tracing"
	"github.com/iwvelando/raroc-pricing/pkg/constants"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// Load .env if present; environment always wins over file values.
	_ = godotenv.Load()

	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	addressFlag := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := config.NewLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	shutdownTracing, err := tracing.Init(context.Background(), "raroc-pricing-server", version, os.Getenv("OTEL_ENDPOINT"))
	if err != nil {
		logger.Fatal("failed to initialize tracing",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(ctx)
	}()

	var cacheRepo cache.Repository
	switch cfg.Cache.Backend {
	case "redis":
		cacheRepo = cache.NewRedisCache(cfg.Cache.RedisAddr)
		logger.Info("schedule cache enabled",
			zap.String("op", "main"),
			zap.String("backend", "redis"),
			zap.String("addr", cfg.Cache.RedisAddr),
		)
	case "memory":
		cacheRepo = cache.NewMemoryCache()
		logger.Info("schedule cache enabled",
			zap.String("op", "main"),
			zap.String("backend", "memory"),
		)
	}

	address := cfg.Address
	if *addressFlag != "" {
		address = *addressFlag
	}

	handler := server.NewHandler(logger, cfg.UploadSizeBytes(), version, cacheRepo)

	logger.Info("starting pricing API",
		zap.String("op", "main"),
		zap.String("address", address),
		zap.String("version", version),
	)

	if err := http.ListenAndServe(address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
