package domain

// Static map defaults applied when the caller omits a parameter.
const (
	DefaultMapWidth  = "280"
	DefaultMapHeight = "280"
	DefaultMapZoom   = "13"

	// DefaultContentType is used when a provider omits Content-Type.
	DefaultContentType = "image/png"

	// MapCacheControl is sent with every successful map image.
	MapCacheControl = "public, max-age=3600"
)

// MapImageRequest describes a single-marker static map. Every field holds the
// caller's text as received; providers get it verbatim, with no clamping or
// numeric re-formatting ("-74.0060" stays "-74.0060").
type MapImageRequest struct {
	Latitude  string `json:"lat"`
	Longitude string `json:"lon"`
	Width     string `json:"w"`
	Height    string `json:"h"`
	Zoom      string `json:"z"`
}

// WithDefaults fills absent dimensions and zoom.
func (r MapImageRequest) WithDefaults() MapImageRequest {
	if r.Width == "" {
		r.Width = DefaultMapWidth
	}
	if r.Height == "" {
		r.Height = DefaultMapHeight
	}
	if r.Zoom == "" {
		r.Zoom = DefaultMapZoom
	}
	return r
}

// HasCoordinates reports whether both latitude and longitude were supplied.
func (r MapImageRequest) HasCoordinates() bool {
	return r.Latitude != "" && r.Longitude != ""
}

// MapImage is a rendered map as served by exactly one provider.
type MapImage struct {
	Bytes       []byte
	ContentType string
	// Provider is for logs and metrics only and is never sent to the client.
	Provider string
}
