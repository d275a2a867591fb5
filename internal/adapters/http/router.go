package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"

	"github.com/samirrijal/skyatlas/internal/pkg/metrics"
)

const (
	defaultRequestTimeout = 20 * time.Second
	defaultRateMax        = 120
	defaultRateWindow     = time.Minute
)

// SetupRoutes registers the API, health, metrics and docs routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip); map images are already compressed
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/static-map"
		},
	}))

	// Request ID
	app.Use(requestid.New())

	// Request-scoped logger
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting per IP, shared through Valkey when configured
	app.Use(limiter.New(limiterConfig(deps)))

	// Security headers + API version
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", version)
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/api/health", HealthHandler(deps))
	app.Get("/api/ready", ReadyHandler(deps))

	reqTimeout := deps.RequestTimeout
	if reqTimeout <= 0 {
		reqTimeout = defaultRequestTimeout
	}

	apiRoutes := app.Group("/api")
	apiRoutes.Get("/static-map", timeout.NewWithContext(StaticMapHandler(deps), reqTimeout))
	apiRoutes.Get("/gallery", timeout.NewWithContext(ListGalleryHandler(deps), reqTimeout))
	apiRoutes.Get("/gallery/markers", timeout.NewWithContext(GalleryMarkersHandler(deps), reqTimeout))

	// API documentation (Swagger UI)
	SetupDocs(app)
}

func limiterConfig(deps *Dependencies) limiter.Config {
	cfg := limiter.Config{
		Max:        deps.RateLimit.Max,
		Expiration: deps.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, APIError{
				Error:   "rate limit exceeded",
				Message: "too many requests, please try again later",
			})
		},
	}
	if cfg.Max <= 0 {
		cfg.Max = defaultRateMax
	}
	if cfg.Expiration <= 0 {
		cfg.Expiration = defaultRateWindow
	}
	// A typed nil would satisfy fiber.Storage and bypass the memory store.
	if deps.Limiter != nil {
		cfg.Storage = deps.Limiter
	}
	return cfg
}
