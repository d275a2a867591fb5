package mapprovider

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/samirrijal/skyatlas/internal/core/domain"
)

// OpenStreetMap renders static maps with the credential-free
// staticmap.openstreetmap.de service.
type OpenStreetMap struct {
	baseURL string
	client  *http.Client
}

// NewOpenStreetMap creates the fallback provider. baseURL is the full
// staticmap.php endpoint.
func NewOpenStreetMap(baseURL string, timeout time.Duration) *OpenStreetMap {
	return &OpenStreetMap{baseURL: baseURL, client: newHTTPClient(timeout)}
}

// Name returns the provider name.
func (o *OpenStreetMap) Name() string { return "OpenStreetMap" }

// Configured is always true; the service needs no credential.
func (o *OpenStreetMap) Configured() bool { return true }

// Render fetches a map centred on the request point with a red pushpin.
func (o *OpenStreetMap) Render(ctx context.Context, req domain.MapImageRequest) (*domain.MapImage, error) {
	return fetchImage(ctx, o.client, o.Name(), o.url(req))
}

// url passes latitude before longitude, the service's native order.
func (o *OpenStreetMap) url(req domain.MapImageRequest) string {
	point := req.Latitude + "," + req.Longitude
	q := url.Values{}
	q.Set("center", point)
	q.Set("zoom", req.Zoom)
	q.Set("size", req.Width+"x"+req.Height)
	q.Set("markers", point+",red-pushpin")
	return o.baseURL + "?" + q.Encode()
}
