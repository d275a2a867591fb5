package usecases

import (
	"context"
	"slices"

	"github.com/samirrijal/skyatlas/internal/core/domain"
	"github.com/samirrijal/skyatlas/internal/core/ports"
	"github.com/samirrijal/skyatlas/internal/pkg/geospatial"
)

// GalleryService serves the gallery metadata and its map markers.
type GalleryService struct {
	items ports.GalleryRepository
}

// NewGalleryService creates a new GalleryService.
func NewGalleryService(items ports.GalleryRepository) *GalleryService {
	return &GalleryService{items: items}
}

// List returns all items in display order.
func (s *GalleryService) List(ctx context.Context) ([]domain.GalleryItem, error) {
	return s.items.List(ctx)
}

// ListByDate returns the items sorted by date. Items without a parseable
// date keep their relative order and go last.
func (s *GalleryService) ListByDate(ctx context.Context, newestFirst bool) ([]domain.GalleryItem, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	sorted := slices.Clone(items)

	slices.SortStableFunc(sorted, func(a, b domain.GalleryItem) int {
		ta, okA := a.ParsedDate()
		tb, okB := b.ParsedDate()
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		c := ta.Compare(tb)
		if newestFirst {
			return -c
		}
		return c
	})
	return sorted, nil
}

// Markers returns a pin for every geotagged item plus the region enclosing them.
func (s *GalleryService) Markers(ctx context.Context) (*domain.MarkerSet, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}

	set := &domain.MarkerSet{Markers: []domain.Marker{}}
	points := make([]domain.GeoPoint, 0, len(items))
	for i, item := range items {
		pt, ok := item.Point()
		if !ok {
			continue
		}
		points = append(points, pt)
		set.Markers = append(set.Markers, domain.Marker{
			Index: i,
			Point: pt,
			Popup: domain.PopupContent{
				Title:       item.Title,
				Description: item.Description,
				Date:        item.Date,
				DisplayDate: item.DisplayDate(),
				Src:         item.Src,
			},
		})
	}

	if b, ok := geospatial.Enclose(points); ok {
		c := geospatial.Center(b)
		set.Bounds = &b
		set.Center = &c
	}
	return set, nil
}
