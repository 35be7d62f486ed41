package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdesigner/pkg/catalog"
	"github.com/goliatone/go-formdesigner/pkg/document"
)

// NewStore returns a store with deterministic field ids (field-1, field-2,
// ...) so fixtures and goldens stay stable.
func NewStore(t *testing.T, options ...document.Option) *document.Store {
	t.Helper()
	options = append([]document.Option{document.WithIDGenerator(&document.SequenceGenerator{})}, options...)
	return document.New(options...)
}

// ContactStore builds the two-section contact form used across renderer and
// export tests: a required text input and a radio group in "About you",
// plus an empty second section.
func ContactStore(t *testing.T) *document.Store {
	t.Helper()

	store := NewStore(t, document.WithTitle("Contact"))
	store.AddSection()
	store.AddSection()
	store.UpdateSectionTitle("section-1", "About you")
	store.AddField("section-1", catalog.KindTextInput)
	store.UpdateFieldConfig("section-1", "field-1", document.Config{
		catalog.KeyLabel:    "Full name",
		catalog.KeyRequired: true,
	})
	store.AddField("section-1", catalog.KindRadio)
	return store
}

// KitchenSinkStore places one field of every catalog kind, plus an unknown
// kind, into a single section.
func KitchenSinkStore(t *testing.T) *document.Store {
	t.Helper()

	store := NewStore(t, document.WithTitle("Everything"))
	store.AddSection()
	for _, kind := range catalog.Kinds() {
		store.AddField("section-1", kind)
	}
	store.AddField("section-1", catalog.Kind("signature"))
	return store
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertGolden compares data against the golden file, ignoring leading and
// trailing whitespace, and rewrites the golden when UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path string, data []byte) {
	t.Helper()
	if WriteMaybeGolden(t, path, append(bytes.TrimSpace(data), '\n')) {
		return
	}
	want := string(bytes.TrimSpace(MustReadGolden(t, path)))
	got := string(bytes.TrimSpace(data))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
