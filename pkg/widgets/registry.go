package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formdesigner/pkg/catalog"
	"github.com/goliatone/go-formdesigner/pkg/projection"
)

// HintKey is the config key a field can set to force a control, for example
// {"widget": "radio-group"} on a dropdown.
const HintKey = "widget"

// Matcher decides whether an override should handle the supplied field.
type Matcher func(field projection.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	apply    func(Widget) Widget
	order    int
}

// Registry resolves widgets for fields. Explicit hints in the field config
// win, then registered overrides by priority (ties fall back to
// registration order), then the catalog default from For.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with no overrides.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an override. apply receives the default widget and returns
// the one to draw.
func (r *Registry) Register(name string, priority int, matcher Matcher, apply func(Widget) Widget) {
	if r == nil || matcher == nil || apply == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		apply:    apply,
		order:    len(r.rules),
	})
}

// Resolve returns the widget for field. Unknown kinds report false
// regardless of hints or overrides.
func (r *Registry) Resolve(field projection.Field) (Widget, bool) {
	base, ok := For(field.Type)
	if !ok {
		return Widget{}, false
	}
	if explicit, ok := explicitWidget(field, base); ok {
		return explicit, true
	}
	if r == nil {
		return base, true
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if !entry.match(field) {
			continue
		}
		if got := entry.apply(base); multiValue(got.Control) == multiValue(base.Control) {
			return got, true
		}
		return base, true
	}
	return base, true
}

// explicitWidget honours a control hint only where it keeps the field's
// value shape: single-value choices swap between select and radio-group, and
// text inputs may become a textarea. Checkbox stays a multi-value group.
func explicitWidget(field projection.Field, base Widget) (Widget, bool) {
	hint := Control(strings.TrimSpace(field.Config.String(HintKey)))
	if hint == "" || hint == base.Control {
		return Widget{}, false
	}
	switch {
	case singleChoice(base.Control) && singleChoice(hint):
		base.Control = hint
		return base, true
	case field.Type == catalog.KindTextInput && hint == ControlTextArea:
		base.Control, base.InputType = ControlTextArea, ""
		return base, true
	default:
		return Widget{}, false
	}
}

func singleChoice(control Control) bool {
	return control == ControlSelect || control == ControlRadioGroup
}

// multiValue reports whether the control submits a list of values.
func multiValue(control Control) bool {
	return control == ControlCheckboxGroup
}
