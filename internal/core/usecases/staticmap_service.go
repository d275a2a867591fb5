package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samirrijal/skyatlas/internal/core/domain"
	"github.com/samirrijal/skyatlas/internal/core/ports"
	"github.com/samirrijal/skyatlas/internal/pkg/logging"
	"github.com/samirrijal/skyatlas/internal/pkg/metrics"
	"github.com/samirrijal/skyatlas/internal/pkg/telemetry"
)

// StaticMapService renders map thumbnails through a credentialed primary
// provider, degrading to a credential-free fallback when the primary rejects
// the request.
type StaticMapService struct {
	primary  ports.MapProvider
	fallback ports.MapProvider
}

// NewStaticMapService creates a new StaticMapService. fallback may be nil.
func NewStaticMapService(primary, fallback ports.MapProvider) *StaticMapService {
	return &StaticMapService{primary: primary, fallback: fallback}
}

// Configured reports whether the primary provider has its credential.
func (s *StaticMapService) Configured() bool {
	return s.primary.Configured()
}

// GetMapImage returns exactly one provider's image for req.
//
// Only a non-success status from the primary triggers the fallback. A
// transport fault on either provider ends the request as KindUnexpected; a
// non-success status from both is KindProvider. Every returned error is a
// *domain.MapError.
func (s *StaticMapService) GetMapImage(ctx context.Context, req domain.MapImageRequest) (img *domain.MapImage, err error) {
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = domain.NewUnexpected(fmt.Errorf("panic: %v", r))
		}
		if err != nil {
			metrics.MapErrors.WithLabelValues(domain.KindOf(err).String()).Inc()
		}
	}()

	if !req.HasCoordinates() {
		return nil, domain.NewMissingCoordinates()
	}
	if !s.primary.Configured() {
		return nil, domain.NewMisconfigured(s.primary.Name())
	}
	req = req.WithDefaults()

	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanStaticMap)
	defer span.End()
	span.SetAttributes(
		attribute.String(telemetry.AttrZoom, req.Zoom),
		attribute.String(telemetry.AttrSize, req.Width+"x"+req.Height),
	)

	log := logging.FromContext(ctx)

	img, err = s.attempt(ctx, s.primary, req)
	if err == nil {
		return img, nil
	}

	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.NewUnexpected(err)
	}

	log.Warn("primary map provider rejected request",
		"provider", upstream.Provider,
		"status", upstream.StatusCode,
	)
	span.SetAttributes(attribute.Bool(telemetry.AttrFallback, true))

	if s.fallback == nil {
		span.SetStatus(codes.Error, upstream.Error())
		return nil, domain.NewProviderError(s.primary.Name(), upstream.Body, upstream)
	}

	img, fbErr := s.attempt(ctx, s.fallback, req)
	if fbErr == nil {
		metrics.FallbacksServed.Inc()
		log.Debug("map served by fallback provider", "provider", img.Provider)
		return img, nil
	}

	log.Error("fallback map provider failed", "provider", s.fallback.Name(), "error", fbErr)
	span.SetStatus(codes.Error, fbErr.Error())

	var fbUpstream *domain.UpstreamError
	if !errors.As(fbErr, &fbUpstream) {
		return nil, domain.NewUnexpected(fbErr)
	}
	return nil, domain.NewProviderError(s.primary.Name(), upstream.Body, errors.Join(upstream, fbErr))
}

// attempt runs one provider call inside its own span and records its outcome.
func (s *StaticMapService) attempt(ctx context.Context, p ports.MapProvider, req domain.MapImageRequest) (*domain.MapImage, error) {
	name := strings.ToLower(p.Name())
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanProviderFetch)
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.AttrProvider, name))

	start := time.Now()
	img, err := p.Render(ctx, req)
	elapsed := time.Since(start)

	var upstream *domain.UpstreamError
	switch {
	case err == nil:
		metrics.ObserveUpstream(name, "ok", elapsed)
		return img, nil
	case errors.As(err, &upstream):
		metrics.ObserveUpstream(name, "status", elapsed)
		span.SetAttributes(attribute.Int(telemetry.AttrHTTPStatus, upstream.StatusCode))
	default:
		metrics.ObserveUpstream(name, "transport", elapsed)
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return nil, err
}
