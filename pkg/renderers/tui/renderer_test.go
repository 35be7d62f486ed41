package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdesigner/pkg/catalog"
	"github.com/goliatone/go-formdesigner/pkg/document"
	"github.com/goliatone/go-formdesigner/pkg/projection"
	"github.com/goliatone/go-formdesigner/pkg/render"
	"github.com/goliatone/go-formdesigner/pkg/testsupport"
	"github.com/goliatone/go-formdesigner/pkg/widgets"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	selectCfgs   []SelectConfig
	inputCfgs    []InputConfig
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.inputCfgs = append(s.inputCfgs, cfg)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	s.selectCfgs = append(s.selectCfgs, cfg)
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestRender_ContactRequiresName(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "Ada"},
		selectIdx: []int{2},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), projection.FromStore(testsupport.ContactStore(t)), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "{\n  \"field-1\": \"Ada\",\n  \"field-2\": \"Option 2\"\n}"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	wantInfo := []string{"== About you", "! Full name is required", "== Section 2"}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if got := driver.selectCfgs[0].Options; got[0] != SkipOption || len(got) != 4 {
		t.Fatalf("optional radio should offer skip first, got %v", got)
	}
	if driver.inputCfgs[0].Message != "Full name *" || driver.inputCfgs[0].Help != "Enter text-input here" {
		t.Fatalf("unexpected input prompt %+v", driver.inputCfgs[0])
	}
}

func TestRender_KitchenSink(t *testing.T) {
	driver := &stubDriver{
		// text, email, number, date, file, color, range (invalid then valid), time, url, phone
		inputs:    []string{"hi", "a@b.co", "3.5", "2024-01-02", "/tmp/cv.pdf", "#ff0000", "150", "75", "09:30", "https://x.io", ""},
		passwords: []string{"hunter22"},
		textAreas: []string{"long text"},
		selectIdx: []int{1, 0},
		multiIdx:  [][]int{{0, 2}},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	_, err = r.Render(context.Background(), projection.FromStore(testsupport.KitchenSinkStore(t)), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if driver.inputPos != len(driver.inputs) || driver.passPos != 1 || driver.textPos != 1 || driver.selectPos != 2 || driver.multiPos != 1 {
		t.Fatalf("prompts not consumed as expected: %+v", driver)
	}
	found := false
	for _, msg := range driver.infoMessages {
		if msg == "! Range must be between 0 and 100" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected range validation message, got %v", driver.infoMessages)
	}
}

func TestRender_KitchenSinkValues(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"hi", "a@b.co", "3.5", "2024-01-02", "/tmp/cv.pdf", "#ff0000", "75", "09:30", "https://x.io", ""},
		passwords: []string{"hunter22"},
		textAreas: []string{"long text"},
		selectIdx: []int{1, 0},
		multiIdx:  [][]int{{0, 2}},
	}
	r, err := New(WithPromptDriver(driver), WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
		want := map[string]any{
			"field-1":  "hi",
			"field-2":  "a@b.co",
			"field-3":  "hunter22",
			"field-4":  3.5,
			"field-5":  "2024-01-02",
			"field-6":  "long text",
			"field-7":  "Option 1",
			"field-9":  []string{"Option 1", "Option 3"},
			"field-10": "/tmp/cv.pdf",
			"field-11": "#ff0000",
			"field-12": 75.0,
			"field-13": "09:30",
			"field-14": "https://x.io",
		}
		if diff := cmp.Diff(want, values); diff != "" {
			t.Fatalf("values mismatch (-want +got):\n%s", diff)
		}
		return values, nil
	}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(context.Background(), projection.FromStore(testsupport.KitchenSinkStore(t)), render.RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := driver.inputCfgs[5].Default; got != catalog.DefaultColorValue {
		t.Fatalf("expected color default %q, got %q", catalog.DefaultColorValue, got)
	}
	if got := driver.inputCfgs[6]; got.Default != "50" || got.Help != "0 to 100" {
		t.Fatalf("unexpected range prompt %+v", got)
	}
}

func TestRender_PrettyOutputAndPrefill(t *testing.T) {
	store := testsupport.NewStore(t)
	store.AddSection()
	store.AddField("section-1", catalog.KindTextInput)
	store.AddField("section-1", catalog.KindDropdown)
	store.UpdateFieldConfig("section-1", "field-1", document.Config{catalog.KeyLabel: "Name"})

	driver := &stubDriver{inputs: []string{"Grace"}, selectIdx: []int{3}}
	r, err := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), projection.FromStore(store), render.RenderOptions{
		Values: map[string]any{"field-1": "Ada", "field-2": "Option 2"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if driver.inputCfgs[0].Default != "Ada" {
		t.Fatalf("expected prefill default, got %q", driver.inputCfgs[0].Default)
	}
	if driver.selectCfgs[0].DefaultIndex != 2 {
		t.Fatalf("expected prefilled option index 2, got %d", driver.selectCfgs[0].DefaultIndex)
	}
	if diff := cmp.Diff("Name: Grace\nDropdown: Option 3\n", string(out)); diff != "" {
		t.Fatalf("pretty output mismatch (-want +got):\n%s", diff)
	}
	if r.ContentType() != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestRender_PropagatesAbort(t *testing.T) {
	driver := &abortDriver{}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	_, err = r.Render(context.Background(), projection.FromStore(testsupport.ContactStore(t)), render.RenderOptions{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, _ := New(WithPromptDriver(&stubDriver{}))
	if _, err := r.Render(ctx, projection.Schema{}, render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type abortDriver struct{ stubDriver }

func (a *abortDriver) Input(context.Context, InputConfig) (string, error) {
	return "", ErrAborted
}

func TestRender_WidgetRegistryOverrides(t *testing.T) {
	registry := widgets.NewRegistry()
	registry.Register("notes", 10, func(field projection.Field) bool {
		return field.Type == catalog.KindTextInput
	}, func(w widgets.Widget) widgets.Widget {
		w.Control, w.InputType = widgets.ControlTextArea, ""
		return w
	})

	driver := &stubDriver{textAreas: []string{"Ada"}, selectIdx: []int{1}}
	r, err := New(WithPromptDriver(driver), WithWidgetRegistry(registry))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), projection.FromStore(testsupport.ContactStore(t)), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "{\n  \"field-1\": \"Ada\",\n  \"field-2\": \"Option 1\"\n}"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if len(driver.inputCfgs) != 0 {
		t.Fatalf("text input should have been prompted as a textarea, got inputs %+v", driver.inputCfgs)
	}
}

func TestStringValidator(t *testing.T) {
	validate := stringValidator(func(s string) error {
		if s == "" {
			return errors.New("required")
		}
		return nil
	})
	if err := validate("Ada"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validate(""); err == nil || err.Error() != "required" {
		t.Fatalf("expected wrapped validator error, got %v", err)
	}
	if err := validate(42); err == nil {
		t.Fatalf("expected non-string answers to be rejected")
	}
}
