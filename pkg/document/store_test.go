package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdesigner/pkg/catalog"
)

func newTestStore(t *testing.T, options ...Option) *Store {
	t.Helper()
	options = append([]Option{WithIDGenerator(&SequenceGenerator{})}, options...)
	return New(options...)
}

func TestStore_EndToEndScenario(t *testing.T) {
	store := newTestStore(t)

	if got := len(store.Snapshot().Sections); got != 0 {
		t.Fatalf("expected no sections, got %d", got)
	}

	store.AddSection()
	doc := store.Snapshot()
	if len(doc.Sections) != 1 {
		t.Fatalf("expected one section, got %d", len(doc.Sections))
	}
	section := doc.Sections[0]
	if section.ID != "section-1" || section.Title != "Section 1" || len(section.Fields) != 0 {
		t.Fatalf("unexpected section: %+v", section)
	}

	if !store.AddField("section-1", catalog.KindTextInput) {
		t.Fatalf("expected addField to apply")
	}
	doc = store.Snapshot()
	fields := doc.Sections[0].Fields
	if len(fields) != 1 {
		t.Fatalf("expected one field, got %d", len(fields))
	}
	if fields[0].Kind != catalog.KindTextInput {
		t.Fatalf("kind mismatch: %q", fields[0].Kind)
	}
	if fields[0].Type != EntryField {
		t.Fatalf("entry type mismatch: %q", fields[0].Type)
	}
	if got := fields[0].Config.Label(); got != "Text-input" {
		t.Fatalf("default label mismatch: %q", got)
	}
	if doc.SelectedFieldID != fields[0].ID {
		t.Fatalf("expected new field selected, got %q", doc.SelectedFieldID)
	}

	store.RemoveSection("section-1")
	doc = store.Snapshot()
	if len(doc.Sections) != 0 {
		t.Fatalf("expected sections empty")
	}
	if doc.NextSectionCounter != 1 {
		t.Fatalf("expected counter reset to 1, got %d", doc.NextSectionCounter)
	}
	if doc.SelectedFieldID != "" {
		t.Fatalf("expected selection cleared, got %q", doc.SelectedFieldID)
	}
}

func TestStore_DefaultConfigPerKind(t *testing.T) {
	store := newTestStore(t)
	store.AddSection()
	store.AddField("section-1", catalog.KindDropdown)
	store.AddField("section-1", catalog.KindEmail)

	doc := store.Snapshot()
	want := Config{
		"label":       "Dropdown",
		"placeholder": "Enter dropdown here",
		"required":    false,
		"options":     []string{"Option 1", "Option 2", "Option 3"},
	}
	if diff := cmp.Diff(want, doc.Sections[0].Fields[0].Config); diff != "" {
		t.Fatalf("dropdown config mismatch (-want +got):\n%s", diff)
	}

	email := doc.Sections[0].Fields[1].Config
	if _, ok := email["options"]; ok {
		t.Fatalf("non-choice kind must not carry options: %+v", email)
	}
	if email.Placeholder() != "Enter email here" {
		t.Fatalf("placeholder mismatch: %q", email.Placeholder())
	}
}

func TestStore_FieldIDsUniqueAcrossSections(t *testing.T) {
	store := New()
	for i := 0; i < 3; i++ {
		store.AddSection()
	}
	for i := 0; i < 30; i++ {
		sectionID := store.Snapshot().Sections[i%3].ID
		store.AddField(sectionID, catalog.KindNumber)
	}

	seen := map[string]struct{}{}
	for _, section := range store.Snapshot().Sections {
		for _, field := range section.Fields {
			if _, dup := seen[field.ID]; dup {
				t.Fatalf("duplicate field id %q", field.ID)
			}
			seen[field.ID] = struct{}{}
		}
	}
	if len(seen) != 30 {
		t.Fatalf("expected 30 fields, got %d", len(seen))
	}
}

func TestStore_CollidingGeneratorStillUnique(t *testing.T) {
	store := New(WithIDGenerator(IDGeneratorFunc(func() string { return "same" })))
	store.AddSection()
	store.AddField("section-1", catalog.KindTime)
	store.AddField("section-1", catalog.KindTime)
	store.AddField("section-1", catalog.KindTime)

	var ids []string
	for _, field := range store.Snapshot().Sections[0].Fields {
		ids = append(ids, field.ID)
	}
	want := []string{"same", "same-2", "same-3"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_UpdateFieldConfigMerges(t *testing.T) {
	store := newTestStore(t)
	store.AddSection()
	store.AddField("section-1", catalog.KindTextInput)
	fieldID := store.SelectedFieldID()

	store.UpdateFieldConfig("section-1", fieldID, Config{"label": "A", "placeholder": "B"})
	store.UpdateFieldConfig("section-1", fieldID, Config{"required": true})

	field, ok := store.Field("section-1", fieldID)
	if !ok {
		t.Fatalf("field not found")
	}
	want := Config{"label": "A", "placeholder": "B", "required": true}
	if diff := cmp.Diff(want, field.Config); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_UpdateFieldConfigIsolatesCallerValues(t *testing.T) {
	store := newTestStore(t)
	store.AddSection()
	store.AddField("section-1", catalog.KindRadio)
	fieldID := store.SelectedFieldID()

	options := []string{"Yes", "No"}
	store.UpdateFieldConfig("section-1", fieldID, Config{"options": options})
	options[0] = "mutated"

	field, _ := store.Field("section-1", fieldID)
	if got := field.Config.Options(); got[0] != "Yes" {
		t.Fatalf("store aliased caller slice: %v", got)
	}
}

func TestStore_NotFoundOperationsAreNoOps(t *testing.T) {
	store := newTestStore(t)
	store.AddSection()
	store.AddField("section-1", catalog.KindEmail)
	before := store.Snapshot()

	cases := map[string]func() bool{
		"removeSection":      func() bool { return store.RemoveSection("section-9") },
		"updateSectionTitle": func() bool { return store.UpdateSectionTitle("section-9", "X") },
		"addField":           func() bool { return store.AddField("section-9", catalog.KindEmail) },
		"updateFieldConfig":  func() bool { return store.UpdateFieldConfig("section-1", "missing", Config{"label": "x"}) },
		"updateMissingSec":   func() bool { return store.UpdateFieldConfig("section-9", before.SelectedFieldID, Config{"label": "x"}) },
		"removeField":        func() bool { return store.RemoveField("section-9", before.SelectedFieldID) },
		"selectMissing":      func() bool { return store.SelectField("missing") },
	}
	for name, op := range cases {
		if op() {
			t.Fatalf("%s: expected no-op", name)
		}
	}
	if diff := cmp.Diff(before, store.Snapshot()); diff != "" {
		t.Fatalf("document changed (-before +after):\n%s", diff)
	}
}

func TestStore_UpdateSectionTitle(t *testing.T) {
	store := newTestStore(t)
	store.AddSection()

	if store.UpdateSectionTitle("section-1", "   ") {
		t.Fatalf("blank title must be ignored")
	}
	if store.UpdateSectionTitle("section-1", "Section 1") {
		t.Fatalf("unchanged title must be ignored")
	}
	if !store.UpdateSectionTitle("section-1", "  Contact  ") {
		t.Fatalf("expected rename to apply")
	}
	section, _ := store.Section("section-1")
	if section.Title != "Contact" {
		t.Fatalf("expected trimmed title, got %q", section.Title)
	}
	if store.UpdateSectionTitle("section-1", "Contact ") {
		t.Fatalf("title equal after trimming must be ignored")
	}
}

func TestStore_RemoveFieldClearsSelection(t *testing.T) {
	store := newTestStore(t)
	store.AddSection()
	store.AddField("section-1", catalog.KindEmail)
	first := store.SelectedFieldID()
	store.AddField("section-1", catalog.KindURL)
	second := store.SelectedFieldID()

	store.RemoveField("section-1", first)
	if store.SelectedFieldID() != second {
		t.Fatalf("removing an unselected field must keep selection")
	}
	store.RemoveField("section-1", second)
	if store.SelectedFieldID() != "" {
		t.Fatalf("expected selection cleared, got %q", store.SelectedFieldID())
	}
	section, _ := store.Section("section-1")
	if len(section.Fields) != 0 {
		t.Fatalf("expected fields removed, got %d", len(section.Fields))
	}
}

func TestStore_RemoveSectionKeepsForeignSelection(t *testing.T) {
	store := newTestStore(t)
	store.AddSection()
	store.AddSection()
	store.AddField("section-2", catalog.KindColor)
	selected := store.SelectedFieldID()

	store.RemoveSection("section-1")
	if store.SelectedFieldID() != selected {
		t.Fatalf("selection in another section must survive")
	}
	if store.NextSectionCounter() != 3 {
		t.Fatalf("counter must not decrease while sections remain, got %d", store.NextSectionCounter())
	}
	store.AddSection()
	doc := store.Snapshot()
	if doc.Sections[1].ID != "section-3" {
		t.Fatalf("expected section-3, got %q", doc.Sections[1].ID)
	}
}

func TestStore_CounterResetAfterRemovingAll(t *testing.T) {
	store := newTestStore(t)
	store.AddSection()
	store.AddSection()
	store.RemoveSection("section-1")
	store.RemoveSection("section-2")
	store.AddSection()

	doc := store.Snapshot()
	if doc.Sections[0].ID != "section-1" {
		t.Fatalf("expected section-1 after reset, got %q", doc.Sections[0].ID)
	}
}

func TestStore_SelectField(t *testing.T) {
	store := newTestStore(t)
	store.AddSection()
	store.AddField("section-1", catalog.KindEmail)
	fieldID := store.SelectedFieldID()

	if !store.SelectField("") {
		t.Fatalf("clearing selection should apply")
	}
	if !store.SelectField(fieldID) {
		t.Fatalf("selecting existing field should apply")
	}
	if _, field, ok := store.SelectedField(); !ok || field.ID != fieldID {
		t.Fatalf("selected field lookup failed")
	}
}

func TestStore_ToggleFlagsIndependent(t *testing.T) {
	store := newTestStore(t)
	store.TogglePreview()
	store.ToggleJSONView()

	doc := store.Snapshot()
	if !doc.IsPreviewOpen || !doc.IsJSONViewOpen {
		t.Fatalf("both flags should be open: %+v", doc)
	}
	store.TogglePreview()
	doc = store.Snapshot()
	if doc.IsPreviewOpen || !doc.IsJSONViewOpen {
		t.Fatalf("toggling preview must not touch json view: %+v", doc)
	}
}

func TestStore_ObserversNotifiedOnChange(t *testing.T) {
	store := newTestStore(t)
	var ops []Operation
	unsubscribe := store.Subscribe(func(change Change) {
		ops = append(ops, change.Op)
	})

	store.AddSection()
	store.AddField("section-1", catalog.KindRange)
	store.AddField("missing", catalog.KindRange)
	store.TogglePreview()
	unsubscribe()
	store.ToggleJSONView()

	want := []Operation{OpAddSection, OpAddField, OpTogglePreview}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Fatalf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_ObserverReceivesSnapshot(t *testing.T) {
	store := newTestStore(t)
	var seen FormDocument
	store.Subscribe(func(change Change) {
		seen = change.Document
	})
	store.AddSection()
	seen.Sections[0].Title = "tampered"

	section, _ := store.Section("section-1")
	if section.Title != "Section 1" {
		t.Fatalf("observer snapshot aliased store state")
	}
}

func TestStore_SnapshotIsDeepCopy(t *testing.T) {
	store := newTestStore(t)
	store.AddSection()
	store.AddField("section-1", catalog.KindCheckbox)

	snap := store.Snapshot()
	snap.Sections[0].Fields[0].Config["label"] = "changed"
	snap.Sections[0].Fields[0].Config["options"].([]string)[0] = "changed"

	field, _ := store.Field("section-1", snap.Sections[0].Fields[0].ID)
	if field.Config.Label() != "Checkbox" || field.Config.Options()[0] != "Option 1" {
		t.Fatalf("snapshot aliased store: %+v", field.Config)
	}
}

func TestStore_UnknownKindStoredVerbatim(t *testing.T) {
	store := newTestStore(t)
	store.AddSection()
	store.AddField("section-1", catalog.Kind("signature"))

	field := store.Snapshot().Sections[0].Fields[0]
	if field.Kind != "signature" {
		t.Fatalf("kind not stored verbatim: %q", field.Kind)
	}
	if field.Config.Label() != "Signature" {
		t.Fatalf("unexpected label: %q", field.Config.Label())
	}
}
