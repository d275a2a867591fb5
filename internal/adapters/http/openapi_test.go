package http_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/samirrijal/skyatlas/api"
)

func loadOpenAPI(t *testing.T) *openapi3.T {
	t.Helper()
	loader := &openapi3.Loader{IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		t.Fatalf("failed to parse OpenAPI document: %v", err)
	}
	return spec
}

// TestOpenAPISpec validates the embedded OpenAPI document.
func TestOpenAPISpec(t *testing.T) {
	spec := loadOpenAPI(t)

	if err := spec.Validate(context.Background()); err != nil {
		t.Fatalf("OpenAPI validation failed: %v", err)
	}

	expectedPaths := []string{
		"/api/static-map",
		"/api/gallery",
		"/api/gallery/markers",
		"/api/health",
		"/api/ready",
	}
	for _, path := range expectedPaths {
		if item := spec.Paths.Find(path); item == nil {
			t.Errorf("expected path %s not found", path)
		}
	}

	expectedSchemas := []string{
		"APIError",
		"GalleryItem",
		"Marker",
		"MarkerSet",
		"PopupContent",
		"Pagination",
	}
	for _, schema := range expectedSchemas {
		if spec.Components.Schemas[schema] == nil {
			t.Errorf("expected schema %s not found", schema)
		}
	}

	t.Logf("OpenAPI document valid: %d paths, %d schemas", len(spec.Paths.Map()), len(spec.Components.Schemas))
}

// TestOpenAPIStaticMapContract checks the documented proxy parameters and statuses.
func TestOpenAPIStaticMapContract(t *testing.T) {
	spec := loadOpenAPI(t)

	op := spec.Paths.Find("/api/static-map").Get
	if op == nil {
		t.Fatal("expected GET /api/static-map")
	}

	required := map[string]bool{}
	defaults := map[string]any{}
	for _, ref := range op.Parameters {
		p := ref.Value
		required[p.Name] = p.Required
		if p.Schema != nil && p.Schema.Value.Default != nil {
			defaults[p.Name] = p.Schema.Value.Default
		}
	}
	if !required["lat"] || !required["lon"] {
		t.Error("lat and lon must be required")
	}
	for name, want := range map[string]string{"w": "280", "h": "280", "z": "13"} {
		if defaults[name] != want {
			t.Errorf("%s: expected default %q, got %v", name, want, defaults[name])
		}
	}

	for _, code := range []int{200, 400, 500, 502} {
		if op.Responses.Status(code) == nil {
			t.Errorf("expected documented %d response", code)
		}
	}
}

// TestOpenAPIInfo verifies document metadata.
func TestOpenAPIInfo(t *testing.T) {
	spec := loadOpenAPI(t)

	if spec.Info.Title != "SkyAtlas API" {
		t.Errorf("expected title 'SkyAtlas API', got %q", spec.Info.Title)
	}
	if spec.Info.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", spec.Info.Version)
	}
	if spec.Info.Description == "" {
		t.Error("expected non-empty description")
	}
	if len(spec.Servers) == 0 {
		t.Error("expected at least one server")
	}
}
