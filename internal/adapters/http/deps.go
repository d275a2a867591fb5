package http

import (
	"time"

	"github.com/samirrijal/skyatlas/internal/adapters/valkey"
	"github.com/samirrijal/skyatlas/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	StaticMaps *usecases.StaticMapService
	Gallery    *usecases.GalleryService

	// Limiter shares rate-limit counters across instances. Nil keeps them in memory.
	Limiter   *valkey.Storage
	RateLimit RateLimit

	// RequestTimeout bounds each API handler, upstream calls included.
	RequestTimeout time.Duration
	Version        string
}

// RateLimit is the per-IP request budget.
type RateLimit struct {
	Max    int
	Window time.Duration
}
