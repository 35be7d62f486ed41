package vanilla_test

import (
	"io"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formdesigner/pkg/projection"
	"github.com/goliatone/go-formdesigner/pkg/render"
	"github.com/goliatone/go-formdesigner/pkg/renderers/vanilla"
	"github.com/goliatone/go-formdesigner/pkg/testsupport"
)

func renderString(t *testing.T, renderer *vanilla.Renderer, schema projection.Schema, opts render.RenderOptions) string {
	t.Helper()
	out, err := renderer.Render(testsupport.Context(), schema, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func newRenderer(t *testing.T, options ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func assertNotContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(html, fragment) {
			t.Fatalf("expected output not to contain %q\n%s", fragment, html)
		}
	}
}

func TestRenderer_Preview(t *testing.T) {
	html := renderString(t, newRenderer(t), projection.FromStore(testsupport.ContactStore(t)), render.RenderOptions{Mode: render.ModePreview})

	assertContains(t, html,
		"<title>Contact</title>",
		`data-mode="preview"`,
		`<h2 class="fd-section-title">About you</h2>`,
		`<label for="fd-field-1">Full name<span class="fd-required" aria-hidden="true">*</span></label>`,
		`<input type="text" id="fd-field-1" name="field-1" placeholder="Enter text-input here" required>`,
		`<legend>Radio</legend>`,
		`type="radio" id="fd-field-2-1" name="field-2" value="Option 1">`,
		`type="radio" id="fd-field-2-3" name="field-2" value="Option 3">`,
		`<button type="submit">Submit</button>`,
	)
	assertNotContains(t, html, "is-selected", "Drop fields here", "disabled")
}

func TestRenderer_CanvasMarksSelection(t *testing.T) {
	html := renderString(t, newRenderer(t), projection.FromStore(testsupport.ContactStore(t)), render.RenderOptions{
		Mode:            render.ModeCanvas,
		SelectedFieldID: "field-2",
	})

	assertContains(t, html,
		`data-mode="canvas"`,
		`class="fd-section fd-dropzone" id="fd-section-2" data-section-id="section-2"`,
		`<p class="fd-empty">Drop fields here</p>`,
		`class="fd-field fd-kind-radio is-selected" data-field-id="field-2" data-field-kind="radio" aria-current="true"`,
		`placeholder="Enter text-input here" required disabled>`,
	)
	assertNotContains(t, html, `<button type="submit">`, `data-field-id="field-1" data-field-kind="text-input" aria-current`)
}

func TestRenderer_PreviewIgnoresSelection(t *testing.T) {
	html := renderString(t, newRenderer(t), projection.FromStore(testsupport.ContactStore(t)), render.RenderOptions{
		Mode:            render.ModePreview,
		SelectedFieldID: "field-1",
	})
	assertNotContains(t, html, "is-selected")
}

func TestRenderer_KitchenSinkWidgets(t *testing.T) {
	html := renderString(t, newRenderer(t), projection.FromStore(testsupport.KitchenSinkStore(t)), render.RenderOptions{})

	assertContains(t, html,
		`<input type="color" id="fd-field-11" name="field-11" value="#000000">`,
		`<input type="range" id="fd-field-12" name="field-12" value="50" min="0" max="100">`,
		`<textarea id="fd-field-6" name="field-6" placeholder="Enter text-area here"></textarea>`,
		`<select id="fd-field-7" name="field-7">`,
		`<option value="Option 2">Option 2</option>`,
		`type="checkbox" id="fd-field-9-1" name="field-9" value="Option 1">`,
		`<input type="file" id="fd-field-10" name="field-10">`,
		`<input type="tel" id="fd-field-15" name="field-15" placeholder="Enter phone-number here">`,
	)
	assertNotContains(t, html, "signature", "field-16")
}

func TestRenderer_ValuesAndErrors(t *testing.T) {
	schema := projection.FromStore(testsupport.ContactStore(t))
	values := map[string]any{"field-1": `Ada "<b>"`, "field-2": "Option 2"}

	html := renderString(t, newRenderer(t), schema, render.RenderOptions{
		Values: values,
		Errors: map[string][]string{"field-1": {"Full name is too bold"}},
	})

	assertContains(t, html,
		`value="Ada &quot;&lt;b&gt;&quot;"`,
		`value="Option 2" checked>`,
		`class="fd-field fd-kind-text-input has-errors"`,
		`<ul class="fd-errors"><li>Full name is too bold</li></ul>`,
	)
	assertNotContains(t, html, "<b>")
}

func TestRenderer_ThemeTokensBecomeCSSVars(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456", "surface": "#fafafa"},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files:  map[string]string{"vanilla.stylesheet": "theme.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"brand": "#654321"}},
		},
	}
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest}}

	html := renderString(t, newRenderer(t, vanilla.WithThemeSelector(selector)), projection.FromStore(testsupport.ContactStore(t)), render.RenderOptions{
		Theme:   "acme",
		Variant: "dark",
	})

	assertContains(t, html,
		`data-theme="acme" data-variant="dark" style="--brand: #654321; --surface: #fafafa;"`,
		`<link rel="stylesheet" href="/assets/themes/acme/theme.css">`,
	)
	if len(selector.calls) != 1 || selector.calls[0] != (selectorCall{name: "acme", variant: "dark"}) {
		t.Fatalf("unexpected selector calls: %+v", selector.calls)
	}
}

func TestRenderer_DefaultStylesAndLinks(t *testing.T) {
	html := renderString(t, newRenderer(t, vanilla.WithDefaultStyles(), vanilla.WithStylesheet("/assets/custom.css")), projection.Schema{Title: "Form"}, render.RenderOptions{})

	assertContains(t, html,
		`<link rel="stylesheet" href="/assets/custom.css">`,
		"<style>.fd-form {",
	)
}

func TestRenderer_WithTemplateRenderer(t *testing.T) {
	stub := &stubTemplateRenderer{
		renderTemplateFunc: func(name string, data any, out ...io.Writer) (string, error) {
			if name == "templates/form.tmpl" {
				return "custom-output", nil
			}
			return "", nil
		},
	}

	renderer := newRenderer(t, vanilla.WithTemplateRenderer(stub))
	out := renderString(t, renderer, projection.Schema{}, render.RenderOptions{})
	if out != "custom-output" {
		t.Fatalf("unexpected output: %s", out)
	}
	if !stub.called {
		t.Fatalf("expected render template to be called")
	}
}

func TestAssetsFS(t *testing.T) {
	if _, err := vanilla.AssetsFS().Open(vanilla.StylesheetName); err != nil {
		t.Fatalf("expected embedded stylesheet: %v", err)
	}
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

type stubTemplateRenderer struct {
	called             bool
	renderTemplateFunc func(name string, data any, out ...io.Writer) (string, error)
}

func (s *stubTemplateRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	s.called = true
	if s.renderTemplateFunc != nil {
		return s.renderTemplateFunc(name, data, out...)
	}
	return "", nil
}
