package mapprovider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samirrijal/skyatlas/internal/core/domain"
)

// MapboxConfig configures the Mapbox Static Images provider.
type MapboxConfig struct {
	BaseURL     string // e.g. https://api.mapbox.com
	Style       string // e.g. streets-v11
	MarkerColor string // hex without '#'
	Token       string
	Timeout     time.Duration
}

// Mapbox renders static maps with the Mapbox Static Images API. The access
// token stays server-side and is never echoed to callers.
type Mapbox struct {
	cfg    MapboxConfig
	client *http.Client
}

// NewMapbox creates a Mapbox provider.
func NewMapbox(cfg MapboxConfig) *Mapbox {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Style == "" {
		cfg.Style = "streets-v11"
	}
	if cfg.MarkerColor == "" {
		cfg.MarkerColor = "ff4757"
	}
	return &Mapbox{cfg: cfg, client: newHTTPClient(cfg.Timeout)}
}

// Name returns the provider name.
func (m *Mapbox) Name() string { return "Mapbox" }

// Configured returns true if an access token is set.
func (m *Mapbox) Configured() bool { return m.cfg.Token != "" }

// Render fetches a map centred on the request point with a single pin.
func (m *Mapbox) Render(ctx context.Context, req domain.MapImageRequest) (*domain.MapImage, error) {
	return fetchImage(ctx, m.client, m.Name(), m.url(req))
}

// url builds /styles/v1/mapbox/{style}/static/{overlay}/{lon},{lat},{zoom}/{w}x{h}.
// Mapbox takes longitude before latitude.
func (m *Mapbox) url(req domain.MapImageRequest) string {
	lon, lat := url.PathEscape(req.Longitude), url.PathEscape(req.Latitude)
	marker := fmt.Sprintf("pin-s+%s(%s)", m.cfg.MarkerColor, url.QueryEscape(req.Longitude+","+req.Latitude))

	return fmt.Sprintf("%s/styles/v1/mapbox/%s/static/%s/%s,%s,%s/%sx%s?access_token=%s",
		m.cfg.BaseURL,
		url.PathEscape(m.cfg.Style),
		marker,
		lon, lat, url.PathEscape(req.Zoom),
		url.PathEscape(req.Width), url.PathEscape(req.Height),
		url.QueryEscape(m.cfg.Token),
	)
}
