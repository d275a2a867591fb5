package exifgps

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/samirrijal/skyatlas/internal/core/domain"
)

// Locator implements ports.ImageLocator by reading EXIF GPS tags from
// images under a public asset directory.
type Locator struct {
	publicDir string
}

// New creates a Locator rooted at publicDir.
func New(publicDir string) *Locator {
	return &Locator{publicDir: publicDir}
}

// Resolve maps a gallery src onto a file. It tries the src relative to the
// public dir first, then the bare file name under public/images.
func (l *Locator) Resolve(src string) (string, error) {
	rel := strings.TrimLeft(src, "/")
	candidates := []string{
		filepath.Join(l.publicDir, filepath.FromSlash(rel)),
		filepath.Join(l.publicDir, "images", path.Base(rel)),
	}
	for _, c := range candidates {
		info, err := os.Stat(c)
		if err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%s: %w", src, domain.ErrImageNotFound)
}

// Coordinates returns the GPS position stored in the image, or nil if it has none.
func (l *Locator) Coordinates(ctx context.Context, src string) (*domain.GeoPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := l.Resolve(src)
	if err != nil {
		return nil, err
	}
	return ReadFile(file)
}

// ReadFile decodes the EXIF block of the image at name.
func ReadFile(name string) (*domain.GeoPoint, error) {
	f, err := os.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, domain.ErrImageNotFound)
		}
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return nil, fmt.Errorf("decode exif %s: %w", name, err)
	}

	lat, lon, err := x.LatLong()
	if err != nil {
		return nil, nil
	}
	return &domain.GeoPoint{Lat: lat, Lon: lon}, nil
}
