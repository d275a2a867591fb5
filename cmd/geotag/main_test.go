package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samirrijal/skyatlas/internal/core/domain"
	"github.com/samirrijal/skyatlas/internal/pkg/config"
)

func TestRootCmd_NothingToUpdate(t *testing.T) {
	dir := t.TempDir()
	meta := filepath.Join(dir, "imagesMeta.json")
	original := `[{"src":"/images/a.jpg","title":"A","latitude":1,"longitude":2}]`
	if err := os.WriteFile(meta, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{}
	cmd := newRootCmd(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--meta", meta, "--public", dir})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No updates necessary.") {
		t.Errorf("unexpected output %q", out.String())
	}

	raw, _ := os.ReadFile(meta)
	if string(raw) != original {
		t.Error("file must not be rewritten when nothing changed")
	}
}

func TestRootCmd_MissingMetaFile(t *testing.T) {
	cmd := newRootCmd(&config.Config{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--meta", filepath.Join(t.TempDir(), "nope.json")})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for missing metadata file")
	}
}

func TestRootCmd_MissingImagesLeftAlone(t *testing.T) {
	dir := t.TempDir()
	meta := filepath.Join(dir, "imagesMeta.json")
	items := []domain.GalleryItem{{Src: "/images/gone.jpg", Title: "Gone"}}
	raw, _ := json.Marshal(items)
	if err := os.WriteFile(meta, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd(&config.Config{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--meta", meta, "--public", dir})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No updates necessary.") {
		t.Errorf("unexpected output %q", out.String())
	}
}
