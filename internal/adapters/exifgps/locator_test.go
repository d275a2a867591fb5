package exifgps_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/samirrijal/skyatlas/internal/adapters/exifgps"
	"github.com/samirrijal/skyatlas/internal/core/domain"
)

type ifdEntry struct {
	tag, typ uint16
	count    uint32
	value    uint32
}

type rational [2]uint32

// tiffWithGPS builds a little-endian TIFF holding only GPS tags. With gps
// false it carries a Make tag instead.
func tiffWithGPS(gps bool, latRef, lonRef string, lat, lon [3]rational) []byte {
	var buf bytes.Buffer
	le := binary.LittleEndian
	w := func(v any) { _ = binary.Write(&buf, le, v) }

	buf.WriteString("II")
	w(uint16(42))
	w(uint32(8))

	writeIFD := func(entries []ifdEntry) {
		w(uint16(len(entries)))
		for _, e := range entries {
			w(e.tag)
			w(e.typ)
			w(e.count)
			w(e.value)
		}
		w(uint32(0))
	}
	ascii := func(s string) uint32 {
		var b [4]byte
		copy(b[:], s)
		return le.Uint32(b[:])
	}

	if !gps {
		writeIFD([]ifdEntry{{tag: 0x010F, typ: 2, count: 4, value: ascii("Go!")}})
		return buf.Bytes()
	}

	const gpsIFD = 8 + 2 + 12 + 4
	const data = gpsIFD + 2 + 4*12 + 4
	writeIFD([]ifdEntry{{tag: 0x8825, typ: 4, count: 1, value: gpsIFD}})
	writeIFD([]ifdEntry{
		{tag: 0x0001, typ: 2, count: 2, value: ascii(latRef)},
		{tag: 0x0002, typ: 5, count: 3, value: data},
		{tag: 0x0003, typ: 2, count: 2, value: ascii(lonRef)},
		{tag: 0x0004, typ: 5, count: 3, value: data + 24},
	})
	for _, r := range append(lat[:], lon[:]...) {
		w(r[0])
		w(r[1])
	}
	return buf.Bytes()
}

func nycTIFF() []byte {
	return tiffWithGPS(true, "N", "W",
		[3]rational{{40, 1}, {42, 1}, {4608, 100}},
		[3]rational{{74, 1}, {0, 1}, {216, 10}},
	)
}

func publicDir(t *testing.T, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, body, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestCoordinates_SignedFromRefs(t *testing.T) {
	dir := publicDir(t, map[string][]byte{"images/nyc.jpg": nycTIFF()})
	l := exifgps.New(dir)

	pt, err := l.Coordinates(context.Background(), "/images/nyc.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pt == nil {
		t.Fatal("expected coordinates")
	}
	if !near(pt.Lat, 40.7128) || !near(pt.Lon, -74.006) {
		t.Errorf("expected 40.7128,-74.006, got %v,%v", pt.Lat, pt.Lon)
	}
}

func TestCoordinates_FallsBackToImagesDir(t *testing.T) {
	dir := publicDir(t, map[string][]byte{"images/nyc.jpg": nycTIFF()})
	l := exifgps.New(dir)

	pt, err := l.Coordinates(context.Background(), "/uploads/2024/nyc.jpg")
	if err != nil || pt == nil {
		t.Fatalf("expected lookup by base name, got %v, %v", pt, err)
	}
}

func TestCoordinates_NotFound(t *testing.T) {
	l := exifgps.New(t.TempDir())
	_, err := l.Coordinates(context.Background(), "/images/missing.jpg")
	if !errors.Is(err, domain.ErrImageNotFound) {
		t.Errorf("expected ErrImageNotFound, got %v", err)
	}
}

func TestCoordinates_NoGPS(t *testing.T) {
	dir := publicDir(t, map[string][]byte{"images/plain.jpg": tiffWithGPS(false, "", "", [3]rational{}, [3]rational{})})
	l := exifgps.New(dir)

	pt, err := l.Coordinates(context.Background(), "/images/plain.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pt != nil {
		t.Errorf("expected no coordinates, got %+v", pt)
	}
}

func TestCoordinates_Unreadable(t *testing.T) {
	dir := publicDir(t, map[string][]byte{"images/junk.jpg": []byte("definitely not an image")})
	l := exifgps.New(dir)

	_, err := l.Coordinates(context.Background(), "/images/junk.jpg")
	if err == nil {
		t.Fatal("expected decode error")
	}
	if errors.Is(err, domain.ErrImageNotFound) {
		t.Error("an unreadable file is not a missing file")
	}
}

func TestCoordinates_Cancelled(t *testing.T) {
	l := exifgps.New(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Coordinates(ctx, "/images/a.jpg"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
