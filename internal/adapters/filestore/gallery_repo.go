package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/samirrijal/skyatlas/internal/core/domain"
)

// GalleryFile implements ports.GalleryStore on top of a JSON metadata file.
// The file is read once and served from memory.
type GalleryFile struct {
	path string

	mu    sync.RWMutex
	items []domain.GalleryItem
}

// NewGalleryFile creates a store for path without reading it.
func NewGalleryFile(path string) *GalleryFile {
	return &GalleryFile{path: path, items: []domain.GalleryItem{}}
}

// Open creates a store for path and loads it.
func Open(path string) (*GalleryFile, error) {
	g := NewGalleryFile(path)
	if err := g.Load(); err != nil {
		return nil, err
	}
	return g, nil
}

// Path returns the metadata file location.
func (g *GalleryFile) Path() string { return g.path }

// Load (re)reads the metadata file into memory.
func (g *GalleryFile) Load() error {
	raw, err := os.ReadFile(g.path)
	if err != nil {
		return fmt.Errorf("read gallery metadata: %w", err)
	}

	var items []domain.GalleryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("decode %s: %w", g.path, err)
	}
	if items == nil {
		items = []domain.GalleryItem{}
	}

	g.mu.Lock()
	g.items = items
	g.mu.Unlock()
	return nil
}

// Len returns the number of loaded items.
func (g *GalleryFile) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.items)
}

func (g *GalleryFile) List(ctx context.Context) ([]domain.GalleryItem, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.items), nil
}

// Save replaces the file atomically with items, two-space indented and
// without HTML escaping.
func (g *GalleryFile) Save(ctx context.Context, items []domain.GalleryItem) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode gallery metadata: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(g.path), ".gallery-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	// CreateTemp opens 0600; the replacement keeps the original file's mode.
	mode := os.FileMode(0o644)
	if info, err := os.Stat(g.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), g.path); err != nil {
		return fmt.Errorf("replace %s: %w", g.path, err)
	}

	g.mu.Lock()
	g.items = slices.Clone(items)
	g.mu.Unlock()
	return nil
}
