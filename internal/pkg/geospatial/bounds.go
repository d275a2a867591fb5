package geospatial

import "github.com/samirrijal/skyatlas/internal/core/domain"

// Enclose returns the smallest bounding box containing every point.
// ok is false for an empty slice.
func Enclose(points []domain.GeoPoint) (b domain.Bounds, ok bool) {
	if len(points) == 0 {
		return domain.Bounds{}, false
	}

	b = domain.Bounds{
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
		MinLon: points[0].Lon, MaxLon: points[0].Lon,
	}
	for _, p := range points[1:] {
		b.MinLat = min(b.MinLat, p.Lat)
		b.MaxLat = max(b.MaxLat, p.Lat)
		b.MinLon = min(b.MinLon, p.Lon)
		b.MaxLon = max(b.MaxLon, p.Lon)
	}
	return b, true
}

// Center returns the midpoint of a bounding box. Boxes are not treated as
// crossing the antimeridian.
func Center(b domain.Bounds) domain.GeoPoint {
	return domain.GeoPoint{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lon: (b.MinLon + b.MaxLon) / 2,
	}
}
