package ports

import (
	"context"

	"github.com/samirrijal/skyatlas/internal/core/domain"
)

// GalleryRepository reads the ordered gallery metadata list.
type GalleryRepository interface {
	List(ctx context.Context) ([]domain.GalleryItem, error)
}

// GalleryStore reads and rewrites the gallery metadata list.
type GalleryStore interface {
	GalleryRepository
	Save(ctx context.Context, items []domain.GalleryItem) error
}

// ImageLocator reads embedded GPS coordinates from a gallery image.
// It returns domain.ErrImageNotFound when src does not resolve to a file and
// (nil, nil) when the image carries no GPS data.
type ImageLocator interface {
	Coordinates(ctx context.Context, src string) (*domain.GeoPoint, error)
}
