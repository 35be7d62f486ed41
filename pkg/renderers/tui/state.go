package tui

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-formdesigner/pkg/document"
)

// State tracks collected values and pre-existing errors keyed by field id.
type State struct {
	values map[string]any
	errors map[string][]string
	order  []string
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string]any, errs map[string][]string) *State {
	s := &State{
		values: make(map[string]any, len(prefill)),
		errors: make(map[string][]string, len(errs)),
	}
	for key, value := range prefill {
		s.values[key] = value
	}
	for key, messages := range errs {
		s.errors[key] = append([]string(nil), messages...)
	}
	return s
}

// Values returns the collected values (mutable).
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// Answered lists field ids in the order they were set.
func (s *State) Answered() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// ErrorsFor returns the errors attached to a field id.
func (s *State) ErrorsFor(fieldID string) []string {
	if s == nil {
		return nil
	}
	return s.errors[fieldID]
}

// Set stores value for fieldID. A nil value removes the entry.
func (s *State) Set(fieldID string, value any) {
	if s == nil {
		return
	}
	if value == nil {
		delete(s.values, fieldID)
	} else {
		s.values[fieldID] = value
	}
	for _, id := range s.order {
		if id == fieldID {
			return
		}
	}
	s.order = append(s.order, fieldID)
}

// StringDefault renders the current value as prompt default text.
func (s *State) StringDefault(fieldID string) string {
	value, ok := s.values[fieldID]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Choices returns the current value as a list of selected options.
func (s *State) Choices(fieldID string) []string {
	value, ok := s.values[fieldID]
	if !ok {
		return nil
	}
	if single, ok := value.(string); ok && single != "" {
		return []string{single}
	}
	return document.StringSlice(value)
}
