package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/skyatlas/internal/adapters/filestore"
	"github.com/samirrijal/skyatlas/internal/adapters/http"
	"github.com/samirrijal/skyatlas/internal/adapters/mapprovider"
	"github.com/samirrijal/skyatlas/internal/adapters/valkey"
	"github.com/samirrijal/skyatlas/internal/core/ports"
	"github.com/samirrijal/skyatlas/internal/core/usecases"
	"github.com/samirrijal/skyatlas/internal/pkg/config"
	"github.com/samirrijal/skyatlas/internal/pkg/logging"
	"github.com/samirrijal/skyatlas/internal/pkg/metrics"
	"github.com/samirrijal/skyatlas/internal/pkg/telemetry"
)

var version = "dev"

func main() {
	cfg, err := config.Load("skyatlas-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Gallery metadata
	gallery, err := filestore.Open(cfg.Gallery.MetaFile)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("gallery metadata not found, serving an empty gallery", "path", cfg.Gallery.MetaFile)
		gallery = filestore.NewGalleryFile(cfg.Gallery.MetaFile)
	} else if err != nil {
		log.Fatalf("gallery: %v", err)
	}
	metrics.GalleryItems.Set(float64(gallery.Len()))

	// Valkey (optional shared rate-limit store)
	var limiterStore *valkey.Storage
	if cfg.Valkey.Addr != "" {
		limiterStore, err = valkey.New(cfg.Valkey.Addr, valkey.DefaultPrefix)
		if err != nil {
			slog.Warn("valkey unavailable, rate limiting per instance", "error", err)
		} else {
			defer limiterStore.Close()
		}
	}

	// Map providers
	mapbox := mapprovider.NewMapbox(mapprovider.MapboxConfig{
		BaseURL:     cfg.Mapbox.BaseURL,
		Style:       cfg.Mapbox.Style,
		MarkerColor: cfg.Mapbox.MarkerColor,
		Token:       cfg.Mapbox.Token(),
		Timeout:     config.Seconds(cfg.Mapbox.Timeout),
	})
	if !mapbox.Configured() {
		slog.Warn("no Mapbox token configured; /api/static-map will answer 500")
	}
	var fallback ports.MapProvider
	if cfg.Fallback.Enabled {
		fallback = mapprovider.NewOpenStreetMap(cfg.Fallback.BaseURL, config.Seconds(cfg.Fallback.Timeout))
	}

	// Use cases
	staticMapSvc := usecases.NewStaticMapService(mapbox, fallback)
	gallerySvc := usecases.NewGalleryService(gallery)

	deps := &http.Dependencies{
		StaticMaps: staticMapSvc,
		Gallery:    gallerySvc,
		Limiter:    limiterStore,
		RateLimit: http.RateLimit{
			Max:    cfg.RateLimit.Max,
			Window: config.Seconds(cfg.RateLimit.Window),
		},
		RequestTimeout: config.Seconds(cfg.Server.RequestTimeout),
		Version:        version,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  config.Seconds(cfg.Server.ReadTimeout),
		WriteTimeout: config.Seconds(cfg.Server.WriteTimeout),
		BodyLimit:    64 * 1024, // GET-only API
		AppName:      "SkyAtlas API",
		ErrorHandler: http.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     "GET,HEAD,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, If-None-Match",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "version", version, "gallery_items", gallery.Len())
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// In-flight map fetches are bounded by the provider timeouts.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
