package catalog

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	got := DefaultConfig(KindTextInput)
	want := map[string]any{
		"label":       "Text-input",
		"placeholder": "Enter text-input here",
		"required":    false,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	for _, kind := range []Kind{KindDropdown, KindRadio, KindCheckbox} {
		cfg := DefaultConfig(kind)
		if diff := cmp.Diff(DefaultOptions, cfg[KeyOptions]); diff != "" {
			t.Fatalf("%s options mismatch (-want +got):\n%s", kind, diff)
		}
	}
}

func TestDefaultConfig_OptionsNotShared(t *testing.T) {
	first := DefaultConfig(KindRadio)
	first[KeyOptions].([]string)[0] = "mutated"
	if DefaultOptions[0] != "Option 1" {
		t.Fatalf("DefaultConfig leaked the shared options slice")
	}
}

func TestDefaultLabel(t *testing.T) {
	cases := map[Kind]string{
		KindPhoneNumber: "Phone-number",
		KindURL:         "Url",
		"":              "",
		"ärger":         "Ärger",
	}
	for kind, want := range cases {
		if got := DefaultLabel(kind); got != want {
			t.Fatalf("DefaultLabel(%q) = %q, want %q", kind, got, want)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	if len(Kinds()) != 15 {
		t.Fatalf("expected 15 kinds, got %d", len(Kinds()))
	}
	for _, kind := range Kinds() {
		if !Known(kind) {
			t.Fatalf("%s should be known", kind)
		}
	}
	if Known("signature") {
		t.Fatalf("signature is not a catalog kind")
	}
	if UsesPlaceholder(KindColor) || UsesPlaceholder(KindRange) || !UsesPlaceholder(KindEmail) {
		t.Fatalf("placeholder predicate mismatch")
	}
	if !IsChoice(KindCheckbox) || IsChoice(KindTextArea) {
		t.Fatalf("choice predicate mismatch")
	}
}

func TestDefaultPaletteCoversEveryKind(t *testing.T) {
	palette := DefaultPalette()
	if palette.Len() != len(Kinds()) {
		t.Fatalf("palette size mismatch: %d", palette.Len())
	}
	for idx, item := range palette.Items() {
		if item.ID != Kinds()[idx] {
			t.Fatalf("palette order mismatch at %d: %s", idx, item.ID)
		}
		if item.Label == "" {
			t.Fatalf("%s has no label", item.ID)
		}
	}
	item, ok := palette.Lookup(KindRange)
	if !ok || item.Label != "Range Slider" {
		t.Fatalf("unexpected range item: %+v", item)
	}
}

func TestPaletteOverlay(t *testing.T) {
	palette, err := DefaultPalette().Overlay(os.DirFS("testdata"), "overlay.yaml")
	if err != nil {
		t.Fatalf("overlay: %v", err)
	}
	email, _ := palette.Lookup(KindEmail)
	if email.Label != "Work Email" || email.Description != "Email Validation Input" {
		t.Fatalf("overlay not applied: %+v", email)
	}

	color, _ := palette.Lookup(KindColor)
	if strings.Contains(color.Icon, "script") || strings.Contains(color.Icon, "onload") {
		t.Fatalf("icon markup not sanitised: %s", color.Icon)
	}
	if !strings.Contains(color.Icon, "<circle") {
		t.Fatalf("expected svg circle kept: %s", color.Icon)
	}

	original, _ := DefaultPalette().Lookup(KindEmail)
	if original.Label != "Email Input" {
		t.Fatalf("overlay mutated the base palette")
	}
}

func TestPaletteOverlay_UnknownKind(t *testing.T) {
	_, err := DefaultPalette().Overlay(os.DirFS("testdata"), "overlay_unknown.json")
	if err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	if !strings.Contains(err.Error(), `did you mean "email"`) {
		t.Fatalf("expected suggestion in error, got %v", err)
	}
}

func TestSuggest(t *testing.T) {
	if got, ok := Suggest("text-inptu"); !ok || got != KindTextInput {
		t.Fatalf("Suggest(text-inptu) = %q, %v", got, ok)
	}
	if got, ok := Suggest("Dropdwn"); !ok || got != KindDropdown {
		t.Fatalf("Suggest(Dropdwn) = %q, %v", got, ok)
	}
	if _, ok := Suggest("x"); ok {
		t.Fatalf("single letters should not produce suggestions")
	}
	if _, ok := Suggest(KindEmail); ok {
		t.Fatalf("known kinds need no suggestion")
	}
	if SuggestionSuffix("zzzzzzzzzzzz") != "" {
		t.Fatalf("distant strings should not suggest")
	}
}
