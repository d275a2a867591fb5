package logging_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/samirrijal/skyatlas/internal/pkg/logging"
)

func TestFromContext_Default(t *testing.T) {
	if got := logging.FromContext(context.Background()); got != slog.Default() {
		t.Error("expected default logger for bare context")
	}
}

func TestFromContext_RequestScoped(t *testing.T) {
	l := slog.Default().With("request_id", "abc")
	ctx := logging.WithLogger(context.Background(), l)
	if got := logging.FromContext(ctx); got != l {
		t.Error("expected request-scoped logger")
	}
}
