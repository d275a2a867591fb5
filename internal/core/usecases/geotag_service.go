package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/samirrijal/skyatlas/internal/core/domain"
	"github.com/samirrijal/skyatlas/internal/core/ports"
	"github.com/samirrijal/skyatlas/internal/pkg/logging"
)

// GeotagReport summarises one Fill run.
type GeotagReport struct {
	Updated  int
	Missing  int // image file not found
	NoGPS    int
	Failed   int // unreadable image metadata
	Complete int // already geotagged, left alone
}

// GeotagService fills missing gallery coordinates from image GPS metadata.
type GeotagService struct {
	store   ports.GalleryStore
	locator ports.ImageLocator
}

// NewGeotagService creates a new GeotagService.
func NewGeotagService(store ports.GalleryStore, locator ports.ImageLocator) *GeotagService {
	return &GeotagService{store: store, locator: locator}
}

// Fill geotags every item lacking a latitude or longitude and saves the list
// only if at least one item changed.
func (s *GeotagService) Fill(ctx context.Context) (GeotagReport, error) {
	var report GeotagReport
	log := logging.FromContext(ctx)

	items, err := s.store.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list gallery: %w", err)
	}

	for i := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if items[i].Geotagged() {
			report.Complete++
			continue
		}

		pt, err := s.locator.Coordinates(ctx, items[i].Src)
		switch {
		case errors.Is(err, domain.ErrImageNotFound):
			report.Missing++
			log.Debug("image not found", "src", items[i].Src)
			continue
		case err != nil:
			report.Failed++
			log.Warn("read image metadata", "src", items[i].Src, "error", err)
			continue
		case pt == nil:
			report.NoGPS++
			continue
		}

		items[i].SetPoint(*pt)
		report.Updated++
		log.Info("geotagged image", "src", items[i].Src, "lat", pt.Lat, "lon", pt.Lon)
	}

	if report.Updated == 0 {
		return report, nil
	}
	if err := s.store.Save(ctx, items); err != nil {
		return report, fmt.Errorf("save gallery: %w", err)
	}
	return report, nil
}
