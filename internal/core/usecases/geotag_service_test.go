package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/skyatlas/internal/core/domain"
	"github.com/samirrijal/skyatlas/internal/core/usecases"
)

// --- Mock GalleryStore / ImageLocator ---

type mockGalleryStore struct {
	items []domain.GalleryItem
	saved [][]domain.GalleryItem
}

func (m *mockGalleryStore) List(ctx context.Context) ([]domain.GalleryItem, error) {
	out := make([]domain.GalleryItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *mockGalleryStore) Save(ctx context.Context, items []domain.GalleryItem) error {
	m.saved = append(m.saved, items)
	return nil
}

type mockLocator struct {
	coords map[string]*domain.GeoPoint
	errs   map[string]error
	asked  []string
}

func (m *mockLocator) Coordinates(ctx context.Context, src string) (*domain.GeoPoint, error) {
	m.asked = append(m.asked, src)
	if err, ok := m.errs[src]; ok {
		return nil, err
	}
	return m.coords[src], nil
}

// --- Tests ---

func TestGeotagService_Fill(t *testing.T) {
	store := &mockGalleryStore{items: []domain.GalleryItem{
		{Src: "/images/tagged.jpg", Latitude: fptr(1), Longitude: fptr(2)},
		{Src: "/images/gps.jpg"},
		{Src: "/images/nogps.jpg"},
		{Src: "/images/gone.jpg"},
		{Src: "/images/broken.jpg"},
	}}
	locator := &mockLocator{
		coords: map[string]*domain.GeoPoint{
			"/images/gps.jpg": {Lat: -33.8568, Lon: 151.2153},
		},
		errs: map[string]error{
			"/images/gone.jpg":   domain.ErrImageNotFound,
			"/images/broken.jpg": errors.New("exif: bad header"),
		},
	}
	svc := usecases.NewGeotagService(store, locator)

	report, err := svc.Fill(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := usecases.GeotagReport{Updated: 1, Missing: 1, NoGPS: 1, Failed: 1, Complete: 1}
	if report != want {
		t.Errorf("expected %+v, got %+v", want, report)
	}
	for _, src := range locator.asked {
		if src == "/images/tagged.jpg" {
			t.Error("already geotagged items must not be read")
		}
	}

	if len(store.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(store.saved))
	}
	saved := store.saved[0]
	if len(saved) != 5 {
		t.Fatalf("expected all items saved, got %d", len(saved))
	}
	pt, ok := saved[1].Point()
	if !ok || pt.Lat != -33.8568 || pt.Lon != 151.2153 {
		t.Errorf("expected gps.jpg geotagged, got %+v", saved[1])
	}
	if saved[2].Geotagged() || saved[3].Geotagged() {
		t.Error("items without GPS must stay untagged")
	}
}

func TestGeotagService_Fill_NoUpdatesNoSave(t *testing.T) {
	store := &mockGalleryStore{items: []domain.GalleryItem{{Src: "/images/nogps.jpg"}}}
	svc := usecases.NewGeotagService(store, &mockLocator{})

	report, err := svc.Fill(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Updated != 0 || report.NoGPS != 1 {
		t.Errorf("unexpected report %+v", report)
	}
	if len(store.saved) != 0 {
		t.Error("expected no write when nothing changed")
	}
}

func TestGeotagService_Fill_HalfTaggedIsRetried(t *testing.T) {
	store := &mockGalleryStore{items: []domain.GalleryItem{{Src: "/images/half.jpg", Latitude: fptr(5)}}}
	locator := &mockLocator{coords: map[string]*domain.GeoPoint{"/images/half.jpg": {Lat: 6, Lon: 7}}}
	svc := usecases.NewGeotagService(store, locator)

	report, _ := svc.Fill(context.Background())
	if report.Updated != 1 {
		t.Fatalf("expected item with only latitude to be geotagged, got %+v", report)
	}
	if *store.saved[0][0].Latitude != 6 {
		t.Error("expected latitude replaced from image metadata")
	}
}

func TestGeotagService_Fill_Cancelled(t *testing.T) {
	store := &mockGalleryStore{items: []domain.GalleryItem{{Src: "/images/a.jpg"}}}
	svc := usecases.NewGeotagService(store, &mockLocator{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Fill(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
