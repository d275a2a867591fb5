package mapprovider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/samirrijal/skyatlas/internal/core/domain"
)

const (
	userAgent = "skyatlas-staticmap/1.0"

	// maxBodyBytes caps what is read from a provider, image or error text.
	maxBodyBytes = 8 << 20

	defaultTimeout = 8 * time.Second
)

// ErrImageTooLarge is returned when a provider sends more than maxBodyBytes.
var ErrImageTooLarge = errors.New("map image exceeds size limit")

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// fetchImage GETs rawURL and returns the body as a map image. A non-2xx
// status becomes *domain.UpstreamError carrying whatever body text could be
// read; the status alone decides that outcome.
func fetchImage(ctx context.Context, client *http.Client, provider, rawURL string) (*domain.MapImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", provider, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// A broken error body still counts as a rejection.
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &domain.UpstreamError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Body:       string(text),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", provider, err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%s: %w", provider, ErrImageTooLarge)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = domain.DefaultContentType
	}
	return &domain.MapImage{Bytes: body, ContentType: contentType, Provider: provider}, nil
}
