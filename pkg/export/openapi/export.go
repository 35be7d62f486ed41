package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formdesigner/pkg/catalog"
	"github.com/goliatone/go-formdesigner/pkg/document"
	"github.com/goliatone/go-formdesigner/pkg/projection"
)

const (
	// ExtensionNamespace carries designer metadata that OpenAPI form
	// generators read (label, placeholder, widget, section).
	ExtensionNamespace = "x-formgen"

	openAPIVersion = "3.0.3"
	colorPattern   = `^#[0-9a-fA-F]{6}$`
)

var (
	slugPattern = regexp.MustCompile(`[^a-z0-9]+`)
	colorRegexp = regexp.MustCompile(colorPattern)
)

// Option configures the export.
type Option func(*config)

type config struct {
	version  string
	basePath string
}

// WithVersion sets info.version (defaults to 1.0.0).
func WithVersion(version string) Option {
	return func(cfg *config) {
		if v := strings.TrimSpace(version); v != "" {
			cfg.version = v
		}
	}
}

// WithBasePath sets the path prefix the submit operation is mounted under
// (defaults to /forms).
func WithBasePath(path string) Option {
	return func(cfg *config) {
		if p := strings.TrimRight(strings.TrimSpace(path), "/"); p != "" {
			if !strings.HasPrefix(p, "/") {
				p = "/" + p
			}
			cfg.basePath = p
		}
	}
}

// Export converts the projected schema into an OpenAPI document with one
// POST operation whose JSON body mirrors the form. Fields of unknown kinds
// are skipped, matching what renderers do. The document is validated before
// it is returned.
func Export(ctx context.Context, schema projection.Schema, options ...Option) (*openapi3.T, error) {
	cfg := config{version: "1.0.0", basePath: "/forms"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	title := strings.TrimSpace(schema.Title)
	if title == "" {
		title = "Form"
	}
	formSlug := slugify(title)
	if formSlug == "" {
		formSlug = "form"
	}

	body := openapi3.NewObjectSchema()
	body.Title = title
	names := newNameSet()
	var sections []map[string]any

	for _, section := range schema.Sections {
		var members []string
		for _, field := range section.Fields {
			prop, ok := propertySchema(section.ID, field)
			if !ok {
				continue
			}
			name := names.claim(field)
			body.WithProperty(name, prop)
			if field.Config.Required() {
				body.Required = append(body.Required, name)
			}
			members = append(members, name)
		}
		sections = append(sections, map[string]any{
			"id":     section.ID,
			"title":  section.Title,
			"fields": nonNil(members),
		})
	}

	operation := &openapi3.Operation{
		OperationID: "submit_" + strings.ReplaceAll(formSlug, "-", "_"),
		Summary:     "Submit " + title,
		RequestBody: &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(body),
		},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(204, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Submission accepted"),
			}),
		),
	}
	operation.Extensions = map[string]any{
		ExtensionNamespace: map[string]any{"sections": sections},
	}

	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:   title,
			Version: cfg.version,
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath(cfg.basePath+"/"+formSlug, &openapi3.PathItem{Post: operation}),
		),
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi export: validate document: %w", err)
	}
	return doc, nil
}

// MarshalJSON exports and encodes the document with two-space indentation.
func MarshalJSON(ctx context.Context, schema projection.Schema, options ...Option) ([]byte, error) {
	doc, err := Export(ctx, schema, options...)
	if err != nil {
		return nil, err
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi export: encode: %w", err)
	}
	return payload, nil
}

func propertySchema(sectionID string, field projection.Field) (*openapi3.Schema, bool) {
	cfg := field.Config
	var schema *openapi3.Schema
	widget := ""

	switch field.Type {
	case catalog.KindTextInput:
		schema = openapi3.NewStringSchema()
	case catalog.KindEmail:
		schema = openapi3.NewStringSchema().WithFormat("email")
	case catalog.KindPassword:
		schema = openapi3.NewStringSchema().WithFormat("password")
	case catalog.KindNumber:
		schema = openapi3.NewFloat64Schema()
	case catalog.KindDatePicker:
		schema = openapi3.NewStringSchema().WithFormat("date")
	case catalog.KindTextArea:
		schema = openapi3.NewStringSchema()
		widget = "textarea"
	case catalog.KindDropdown:
		schema = withEnum(openapi3.NewStringSchema(), cfg.Options())
		widget = "select"
	case catalog.KindRadio:
		schema = withEnum(openapi3.NewStringSchema(), cfg.Options())
		widget = "radio"
	case catalog.KindCheckbox:
		schema = openapi3.NewArraySchema().WithItems(withEnum(openapi3.NewStringSchema(), cfg.Options()))
		widget = "checkbox-group"
	case catalog.KindFileUpload:
		schema = openapi3.NewStringSchema().WithFormat("binary")
		widget = "file"
	case catalog.KindColor:
		schema = openapi3.NewStringSchema().WithPattern(colorPattern)
		value := cfg.String(catalog.KeyValue)
		if value == "" {
			value = catalog.DefaultColorValue
		}
		if colorRegexp.MatchString(value) {
			schema.WithDefault(value)
		}
		widget = "color"
	case catalog.KindRange:
		lo, hi, value := rangeBounds(cfg)
		schema = openapi3.NewFloat64Schema().WithMin(lo).WithMax(hi)
		if value >= lo && value <= hi {
			schema.WithDefault(value)
		}
		widget = "range"
	case catalog.KindTime:
		schema = openapi3.NewStringSchema().WithFormat("time")
	case catalog.KindURL:
		schema = openapi3.NewStringSchema().WithFormat("uri")
	case catalog.KindPhoneNumber:
		schema = openapi3.NewStringSchema()
		widget = "tel"
	default:
		return nil, false
	}

	schema.Title = cfg.Label()
	hints := map[string]any{
		"label":   cfg.Label(),
		"kind":    string(field.Type),
		"id":      field.ID,
		"section": sectionID,
	}
	if catalog.UsesPlaceholder(field.Type) {
		if placeholder := cfg.Placeholder(); placeholder != "" {
			hints["placeholder"] = placeholder
		}
	}
	if widget != "" {
		hints["widget"] = widget
	}
	schema.Extensions = map[string]any{ExtensionNamespace: hints}
	return schema, true
}

func withEnum(schema *openapi3.Schema, options []string) *openapi3.Schema {
	seen := make(map[string]struct{}, len(options))
	values := make([]any, 0, len(options))
	for _, option := range options {
		if _, dup := seen[option]; dup {
			continue
		}
		seen[option] = struct{}{}
		values = append(values, option)
	}
	if len(values) == 0 {
		return schema
	}
	return schema.WithEnum(values...)
}

func rangeBounds(cfg document.Config) (lo, hi, value float64) {
	lo, hi, value = catalog.DefaultRangeMin, catalog.DefaultRangeMax, catalog.DefaultRangeValue
	if v, ok := cfg.Number(catalog.KeyMin); ok {
		lo = v
	}
	if v, ok := cfg.Number(catalog.KeyMax); ok {
		hi = v
	}
	if v, ok := cfg.Number(catalog.KeyValue); ok {
		value = v
	}
	return lo, hi, value
}

type nameSet map[string]struct{}

func newNameSet() nameSet {
	return make(nameSet)
}

// claim derives a property name from the field label, falling back to the
// field id, and suffixes repeats so every property stays distinct.
func (n nameSet) claim(field projection.Field) string {
	base := strings.ReplaceAll(slugify(field.Config.Label()), "-", "_")
	if base == "" {
		base = strings.ReplaceAll(slugify(field.ID), "-", "_")
	}
	if base == "" {
		base = "field"
	}
	name := base
	for i := 2; ; i++ {
		if _, taken := n[name]; !taken {
			break
		}
		name = fmt.Sprintf("%s_%d", base, i)
	}
	n[name] = struct{}{}
	return name
}

func slugify(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	return strings.Trim(slugPattern.ReplaceAllString(lowered, "-"), "-")
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
