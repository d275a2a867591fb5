package ports

import (
	"context"

	"github.com/samirrijal/skyatlas/internal/core/domain"
)

// MapProvider renders a static map image with a single marker.
//
// Render returns *domain.UpstreamError when the provider answered with a
// non-success status; any other error is a transport or read fault.
type MapProvider interface {
	Name() string
	// Configured reports whether the provider has the credentials it needs.
	Configured() bool
	Render(ctx context.Context, req domain.MapImageRequest) (*domain.MapImage, error)
}
