package domain

import (
	"strings"
	"time"
)

// GalleryItem is one photo in the metadata list. Date is an ISO-ish string
// or empty; coordinates are null until the photo is geotagged.
type GalleryItem struct {
	Src         string   `json:"src"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// Geotagged reports whether both coordinates are set.
func (g GalleryItem) Geotagged() bool {
	return g.Latitude != nil && g.Longitude != nil
}

// Point returns the item's location if it is geotagged.
func (g GalleryItem) Point() (GeoPoint, bool) {
	if !g.Geotagged() {
		return GeoPoint{}, false
	}
	return GeoPoint{Lat: *g.Latitude, Lon: *g.Longitude}, true
}

// SetPoint geotags the item.
func (g *GalleryItem) SetPoint(p GeoPoint) {
	lat, lon := p.Lat, p.Lon
	g.Latitude = &lat
	g.Longitude = &lon
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006:01:02 15:04:05", // EXIF DateTimeOriginal
	"2006-01-02",
}

// ParsedDate parses Date using the ISO-ish layouts found in the metadata.
func (g GalleryItem) ParsedDate() (time.Time, bool) {
	s := strings.TrimSpace(g.Date)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayDate renders Date as "January 2, 2006". Unparseable dates are
// returned unchanged and an empty date stays empty.
func (g GalleryItem) DisplayDate() string {
	t, ok := g.ParsedDate()
	if !ok {
		return g.Date
	}
	return t.Format("January 2, 2006")
}

// PopupContent is the structured detail shown when a map pin is opened. The
// map widget's binding layer templates it; no markup is built server-side.
type PopupContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	DisplayDate string `json:"display_date"`
	Src         string `json:"src"`
}

// Marker is a map pin for a geotagged gallery item. Index is the item's
// position in the gallery list so a pin click can select it.
type Marker struct {
	Index int          `json:"index"`
	Point GeoPoint     `json:"point"`
	Popup PopupContent `json:"popup"`
}

// MarkerSet is everything the map widget needs to initialize: pins plus the
// region that encloses them. Bounds and Center are nil when there are no pins.
type MarkerSet struct {
	Markers []Marker  `json:"markers"`
	Bounds  *Bounds   `json:"bounds,omitempty"`
	Center  *GeoPoint `json:"center,omitempty"`
}
