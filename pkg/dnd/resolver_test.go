package dnd

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdesigner/pkg/catalog"
	"github.com/goliatone/go-formdesigner/pkg/document"
)

func newStore(t *testing.T) *document.Store {
	t.Helper()
	store := document.New(document.WithIDGenerator(&document.SequenceGenerator{}))
	store.AddSection()
	return store
}

func TestApply_DropOnSectionAddsField(t *testing.T) {
	store := newStore(t)
	resolver := NewResolver()

	changed, err := resolver.Apply(store, DragEnd{Active: "dropdown", Over: "section-1"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !changed {
		t.Fatalf("expected mutation")
	}
	section, _ := store.Section("section-1")
	if len(section.Fields) != 1 || section.Fields[0].Kind != catalog.KindDropdown {
		t.Fatalf("unexpected fields: %+v", section.Fields)
	}
	if store.SelectedFieldID() != section.Fields[0].ID {
		t.Fatalf("dropped field should be selected")
	}
}

func TestApply_DropOutsideZoneIsNoOp(t *testing.T) {
	store := newStore(t)
	before := store.Snapshot()

	for _, event := range []DragEnd{
		{Active: "email"},
		{Active: "email", Over: "   "},
		{Active: "", Over: "section-1"},
		{Active: "email", Over: "section-404"},
	} {
		changed, err := NewResolver().Apply(store, event)
		if err != nil || changed {
			t.Fatalf("%+v: expected silent no-op, got changed=%v err=%v", event, changed, err)
		}
	}
	if diff := cmp.Diff(before.Sections, store.Snapshot().Sections); diff != "" {
		t.Fatalf("sections changed (-before +after):\n%s", diff)
	}
}

func TestResolve_KindPolicies(t *testing.T) {
	event := DragEnd{Active: "text-inptu", Over: "section-1"}

	drop, ok, err := NewResolver().Resolve(event)
	if err != nil || !ok || drop.Kind != "text-inptu" {
		t.Fatalf("permissive should keep the kind verbatim: %+v %v %v", drop, ok, err)
	}

	_, ok, err = NewResolver(WithPolicy(PolicyIgnoreUnknown)).Resolve(event)
	if err != nil || ok {
		t.Fatalf("ignore policy should drop silently: ok=%v err=%v", ok, err)
	}

	_, ok, err = NewResolver(WithPolicy(PolicyRejectUnknown)).Resolve(event)
	if !errors.Is(err, ErrUnknownKind) || ok {
		t.Fatalf("reject policy should error: ok=%v err=%v", ok, err)
	}
	if !strings.Contains(err.Error(), `"text-input"`) {
		t.Fatalf("expected suggestion in error: %v", err)
	}
}

func TestResolve_KeepsIdentifiersVerbatim(t *testing.T) {
	drop, ok, err := NewResolver().Resolve(DragEnd{Active: " foo", Over: "section-1"})
	if err != nil || !ok || drop.Kind != " foo" {
		t.Fatalf("expected kind stored verbatim: %+v %v %v", drop, ok, err)
	}

	store := newStore(t)
	before := store.Snapshot()
	changed, err := NewResolver().Apply(store, DragEnd{Active: "email", Over: " section-1 "})
	if err != nil || changed {
		t.Fatalf("padded section id must not match section-1: changed=%v err=%v", changed, err)
	}
	if diff := cmp.Diff(before.Sections, store.Snapshot().Sections); diff != "" {
		t.Fatalf("sections changed (-before +after):\n%s", diff)
	}
}

func TestResolve_SourcePrefix(t *testing.T) {
	resolver := NewResolver(WithSourcePrefix("palette-"), WithPolicy(PolicyRejectUnknown))
	drop, ok, err := resolver.Resolve(DragEnd{Active: "palette-color", Over: "section-2"})
	if err != nil || !ok {
		t.Fatalf("resolve: ok=%v err=%v", ok, err)
	}
	want := Drop{SectionID: "section-2", Kind: catalog.KindColor}
	if diff := cmp.Diff(want, drop); diff != "" {
		t.Fatalf("drop mismatch (-want +got):\n%s", diff)
	}
	if got := drop.Action(); got.Type != document.OpAddField || got.FieldKind != catalog.KindColor {
		t.Fatalf("unexpected action: %+v", got)
	}
}

func TestParsePolicy(t *testing.T) {
	for raw, want := range map[string]KindPolicy{"": PolicyPermissive, "Reject": PolicyRejectUnknown, " ignore ": PolicyIgnoreUnknown} {
		got, err := ParsePolicy(raw)
		if err != nil || got != want {
			t.Fatalf("ParsePolicy(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := ParsePolicy("strict"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
