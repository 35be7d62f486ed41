// Package export adapts the schema encoders to the render.Renderer contract
// so the CLI and the HTTP server can pick an output format by name.
package export

import (
	"context"

	"github.com/goliatone/go-formdesigner/pkg/export/openapi"
	"github.com/goliatone/go-formdesigner/pkg/projection"
	"github.com/goliatone/go-formdesigner/pkg/render"
)

// JSON renders the projection as indented JSON, the designer's JSON view.
type JSON struct{}

// Name implements render.Renderer.
func (JSON) Name() string { return "json" }

// ContentType implements render.Renderer.
func (JSON) ContentType() string { return "application/json" }

// Render encodes schema with projection.MarshalJSON.
func (JSON) Render(_ context.Context, schema projection.Schema, _ render.RenderOptions) ([]byte, error) {
	return projection.MarshalJSON(schema)
}

// YAML renders the projection as YAML.
type YAML struct{}

// Name implements render.Renderer.
func (YAML) Name() string { return "yaml" }

// ContentType implements render.Renderer.
func (YAML) ContentType() string { return "application/yaml" }

// Render encodes schema with projection.MarshalYAML.
func (YAML) Render(_ context.Context, schema projection.Schema, _ render.RenderOptions) ([]byte, error) {
	return projection.MarshalYAML(schema)
}

// OpenAPI renders the projection as an OpenAPI 3 document.
type OpenAPI struct {
	Options []openapi.Option
}

// Name implements render.Renderer.
func (OpenAPI) Name() string { return "openapi" }

// ContentType implements render.Renderer.
func (OpenAPI) ContentType() string { return "application/vnd.oai.openapi+json" }

// Render exports schema as a validated OpenAPI document using Options.
func (o OpenAPI) Render(ctx context.Context, schema projection.Schema, _ render.RenderOptions) ([]byte, error) {
	return openapi.MarshalJSON(ctx, schema, o.Options...)
}

// Register adds the three encoders to registry.
func Register(registry *render.Registry, options ...openapi.Option) error {
	for _, renderer := range []render.Renderer{JSON{}, YAML{}, OpenAPI{Options: options}} {
		if err := registry.Register(renderer); err != nil {
			return err
		}
	}
	return nil
}
