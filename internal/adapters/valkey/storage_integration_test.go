//go:build integration
// +build integration

package valkey_test

import (
	"context"
	"testing"
	"time"

	"github.com/samirrijal/skyatlas/internal/adapters/valkey"
	"github.com/samirrijal/skyatlas/internal/pkg/config"
)

// setupStorage connects to the Valkey configured for the test environment.
func setupStorage(t *testing.T) *valkey.Storage {
	cfg, err := config.Load("skyatlas-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	addr := cfg.Valkey.Addr
	if addr == "" {
		addr = "localhost:6379"
	}

	s, err := valkey.New(addr, "skyatlas-test:")
	if err != nil {
		t.Fatalf("connect valkey: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping valkey: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Reset()
		_ = s.Close()
	})
	return s
}

func TestIntegration_StorageRoundTrip(t *testing.T) {
	s := setupStorage(t)

	if got, err := s.Get("absent"); err != nil || got != nil {
		t.Fatalf("expected nil, nil for missing key, got %q, %v", got, err)
	}
	if err := s.Set("hits", []byte("3"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get("hits")
	if err != nil || string(got) != "3" {
		t.Fatalf("expected 3, got %q, %v", got, err)
	}
	if err := s.Delete("hits"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := s.Get("hits"); got != nil {
		t.Errorf("expected key gone, got %q", got)
	}
}

func TestIntegration_StorageReset(t *testing.T) {
	s := setupStorage(t)

	for _, k := range []string{"a", "b", "c"} {
		if err := s.Set(k, []byte("1"), 0); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if got, _ := s.Get(k); got != nil {
			t.Errorf("expected %s cleared", k)
		}
	}
}
