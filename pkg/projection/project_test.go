package projection_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdesigner/pkg/catalog"
	"github.com/goliatone/go-formdesigner/pkg/document"
	"github.com/goliatone/go-formdesigner/pkg/projection"
	"github.com/goliatone/go-formdesigner/pkg/testsupport"
)

func TestProject_MatchesGolden(t *testing.T) {
	store := testsupport.ContactStore(t)

	payload, err := projection.MarshalJSON(projection.FromStore(store))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "contact.golden.json"), payload)
}

func TestProject_Idempotent(t *testing.T) {
	store := testsupport.KitchenSinkStore(t)
	doc := store.Snapshot()

	first := projection.Project(doc)
	second := projection.Project(doc)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("projection not idempotent (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(doc, store.Snapshot()); diff != "" {
		t.Fatalf("projection mutated the document:\n%s", diff)
	}
}

func TestProject_FiltersNonFieldEntries(t *testing.T) {
	doc := document.FormDocument{
		Title: "Form",
		Sections: []document.Section{{
			ID:    "section-1",
			Title: "Section 1",
			Fields: []document.Field{
				{ID: "a", Type: document.EntryField, Kind: catalog.KindEmail, Config: document.Config{"label": "Email"}},
				{ID: "b", Type: "divider", Kind: "hr"},
				{ID: "c", Type: document.EntryField, Kind: catalog.KindURL},
			},
		}},
	}

	schema := projection.Project(doc)
	fields := schema.Sections[0].Fields
	if len(fields) != 2 || fields[0].ID != "a" || fields[1].ID != "c" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
	if fields[1].Config == nil {
		t.Fatalf("nil config should project as empty object")
	}
	if fields[0].Type != catalog.KindEmail {
		t.Fatalf("type should carry the field kind, got %q", fields[0].Type)
	}
}

func TestProject_DoesNotAliasConfig(t *testing.T) {
	store := testsupport.ContactStore(t)
	schema := projection.FromStore(store)
	schema.Sections[0].Fields[1].Config["options"].([]string)[0] = "changed"

	field, _ := store.Field("section-1", "field-2")
	if field.Config.Options()[0] != "Option 1" {
		t.Fatalf("projection aliased store config")
	}
}

func TestProject_EmptyStore(t *testing.T) {
	payload, err := projection.MarshalJSON(projection.FromStore(testsupport.NewStore(t)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := "{\n  \"title\": \"Form\",\n  \"sections\": []\n}"
	if string(payload) != want {
		t.Fatalf("unexpected payload:\n%s", payload)
	}
}

func TestDecode_RoundTripsJSONAndYAML(t *testing.T) {
	schema := projection.FromStore(testsupport.ContactStore(t))

	for _, format := range []projection.Format{projection.FormatJSON, projection.FormatYAML} {
		payload, err := projection.Marshal(schema, format)
		if err != nil {
			t.Fatalf("%s marshal: %v", format, err)
		}
		decoded, err := projection.Decode(payload)
		if err != nil {
			t.Fatalf("%s decode: %v", format, err)
		}
		if decoded.Title != "Contact" || decoded.FieldCount() != 2 {
			t.Fatalf("%s: unexpected schema %+v", format, decoded)
		}
		radio := decoded.Sections[0].Fields[1]
		if diff := cmp.Diff([]string{"Option 1", "Option 2", "Option 3"}, radio.Config.Options()); diff != "" {
			t.Fatalf("%s options mismatch:\n%s", format, diff)
		}
		if !decoded.Sections[0].Fields[0].Config.Required() {
			t.Fatalf("%s: required flag lost", format)
		}
	}
}

func TestMarshal_UnsupportedFormat(t *testing.T) {
	_, err := projection.Marshal(projection.Schema{}, "xml")
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestDecode_Empty(t *testing.T) {
	if _, err := projection.Decode([]byte("  ")); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}
