package document

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formdesigner/pkg/catalog"
)

const (
	// DefaultTitle is the form title a new store starts with.
	DefaultTitle = "Form"

	sectionIDPrefix = "section-"

	maxIDAttempts = 8
)

// Observer receives every change that took effect. Observers run
// synchronously on the mutating call, in subscription order.
type Observer func(Change)

// ConfigFactory produces the initial configuration for a dropped field.
type ConfigFactory func(kind catalog.Kind) Config

// Option configures a Store.
type Option func(*Store)

// WithTitle overrides the form title.
func WithTitle(title string) Option {
	return func(s *Store) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			s.doc.Title = trimmed
		}
	}
}

// WithIDGenerator swaps the field id source, mostly for deterministic
// tests.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// WithDefaults replaces the default config rule used by AddField.
func WithDefaults(factory ConfigFactory) Option {
	return func(s *Store) {
		if factory != nil {
			s.defaults = factory
		}
	}
}

// Store owns a FormDocument and is the only place it changes. It is meant to
// be driven from a single event loop; callers sharing a Store across
// goroutines must serialise access themselves.
//
// Every operation is total: references to missing sections or fields are
// silent no-ops and the boolean result reports whether anything changed.
type Store struct {
	doc       FormDocument
	ids       IDGenerator
	defaults  ConfigFactory
	observers []observerEntry
	nextObs   int
}

type observerEntry struct {
	id int
	fn Observer
}

// New constructs an empty store: no sections, counter at 1, nothing
// selected, both views closed.
func New(options ...Option) *Store {
	s := &Store{
		doc: FormDocument{
			Title:              DefaultTitle,
			Sections:           []Section{},
			NextSectionCounter: 1,
		},
		ids:      NewUUIDGenerator(),
		defaults: defaultConfig,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

func defaultConfig(kind catalog.Kind) Config {
	return Config(catalog.DefaultConfig(kind))
}

// Subscribe registers an observer and returns a function that removes it.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.nextObs++
	id := s.nextObs
	s.observers = append(s.observers, observerEntry{id: id, fn: fn})
	return func() {
		for idx, entry := range s.observers {
			if entry.id == id {
				s.observers = append(s.observers[:idx:idx], s.observers[idx+1:]...)
				return
			}
		}
	}
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() FormDocument {
	return s.doc.Clone()
}

// NextSectionCounter reports the number the next added section will use.
func (s *Store) NextSectionCounter() int {
	return s.doc.NextSectionCounter
}

// SelectedFieldID returns the current selection, "" meaning none.
func (s *Store) SelectedFieldID() string {
	return s.doc.SelectedFieldID
}

// AddSection appends an empty section numbered from the counter.
func (s *Store) AddSection() bool {
	n := s.doc.NextSectionCounter
	s.doc.Sections = append(s.doc.Sections, Section{
		ID:     fmt.Sprintf("%s%d", sectionIDPrefix, n),
		Title:  fmt.Sprintf("Section %d", n),
		Fields: []Field{},
	})
	s.doc.NextSectionCounter = n + 1
	s.notify(OpAddSection)
	return true
}

// RemoveSection drops the section and every field inside it. The counter
// resets to 1 once no sections remain.
func (s *Store) RemoveSection(sectionID string) bool {
	idx := s.sectionIndex(sectionID)
	if idx < 0 {
		return false
	}
	removed := s.doc.Sections[idx]
	s.doc.Sections = append(s.doc.Sections[:idx:idx], s.doc.Sections[idx+1:]...)

	if s.doc.SelectedFieldID != "" {
		for _, field := range removed.Fields {
			if field.ID == s.doc.SelectedFieldID {
				s.doc.SelectedFieldID = ""
				break
			}
		}
	}
	if len(s.doc.Sections) == 0 {
		s.doc.NextSectionCounter = 1
	}
	s.notify(OpRemoveSection)
	return true
}

// UpdateSectionTitle sets the trimmed title when it is non-empty and differs
// from the current one.
func (s *Store) UpdateSectionTitle(sectionID, title string) bool {
	idx := s.sectionIndex(sectionID)
	if idx < 0 {
		return false
	}
	trimmed := strings.TrimSpace(title)
	if trimmed == "" || trimmed == s.doc.Sections[idx].Title {
		return false
	}
	s.doc.Sections[idx].Title = trimmed
	s.notify(OpUpdateSectionTitle)
	return true
}

// AddField appends a field of the given kind with its default config and
// selects it. The kind is stored verbatim; validating it is the caller's
// business.
func (s *Store) AddField(sectionID string, kind catalog.Kind) bool {
	idx := s.sectionIndex(sectionID)
	if idx < 0 {
		return false
	}
	field := Field{
		ID:     s.newFieldID(),
		Type:   EntryField,
		Kind:   kind,
		Config: s.defaults(kind).Clone(),
	}
	if field.Config == nil {
		field.Config = Config{}
	}
	s.doc.Sections[idx].Fields = append(s.doc.Sections[idx].Fields, field)
	s.doc.SelectedFieldID = field.ID
	s.notify(OpAddField)
	return true
}

// UpdateFieldConfig shallow-merges partial into the field config. Keys not in
// partial are kept untouched.
func (s *Store) UpdateFieldConfig(sectionID, fieldID string, partial Config) bool {
	sIdx := s.sectionIndex(sectionID)
	if sIdx < 0 {
		return false
	}
	fIdx := fieldIndex(s.doc.Sections[sIdx].Fields, fieldID)
	if fIdx < 0 {
		return false
	}
	field := &s.doc.Sections[sIdx].Fields[fIdx]
	if field.Type != EntryField {
		return false
	}
	if field.Config == nil {
		field.Config = Config{}
	}
	for key, value := range partial {
		field.Config[key] = cloneValue(value)
	}
	s.notify(OpUpdateFieldConfig)
	return true
}

// RemoveField removes the field from the section. The selection is cleared
// when it pointed at fieldID.
func (s *Store) RemoveField(sectionID, fieldID string) bool {
	sIdx := s.sectionIndex(sectionID)
	if sIdx < 0 {
		return false
	}
	changed := false
	fields := s.doc.Sections[sIdx].Fields
	if fIdx := fieldIndex(fields, fieldID); fIdx >= 0 {
		s.doc.Sections[sIdx].Fields = append(fields[:fIdx:fIdx], fields[fIdx+1:]...)
		changed = true
	}
	if fieldID != "" && s.doc.SelectedFieldID == fieldID {
		s.doc.SelectedFieldID = ""
		changed = true
	}
	if changed {
		s.notify(OpRemoveField)
	}
	return changed
}

// SelectField points the selection at fieldID, or clears it for "". An id
// that names no existing field leaves the selection as it was so it can
// never dangle.
func (s *Store) SelectField(fieldID string) bool {
	if fieldID != "" {
		if _, _, ok := s.locate(fieldID); !ok {
			return false
		}
	}
	if s.doc.SelectedFieldID == fieldID {
		return false
	}
	s.doc.SelectedFieldID = fieldID
	s.notify(OpSelectField)
	return true
}

// TogglePreview flips the preview flag. The JSON view flag is independent.
func (s *Store) TogglePreview() bool {
	s.doc.IsPreviewOpen = !s.doc.IsPreviewOpen
	s.notify(OpTogglePreview)
	return true
}

// ToggleJSONView flips the JSON view flag. The preview flag is independent.
func (s *Store) ToggleJSONView() bool {
	s.doc.IsJSONViewOpen = !s.doc.IsJSONViewOpen
	s.notify(OpToggleJSONView)
	return true
}

// Section returns a copy of the section with the given id.
func (s *Store) Section(sectionID string) (Section, bool) {
	idx := s.sectionIndex(sectionID)
	if idx < 0 {
		return Section{}, false
	}
	return s.doc.Sections[idx].Clone(), true
}

// Field returns a copy of the field addressed by section and field id.
func (s *Store) Field(sectionID, fieldID string) (Field, bool) {
	sIdx := s.sectionIndex(sectionID)
	if sIdx < 0 {
		return Field{}, false
	}
	fIdx := fieldIndex(s.doc.Sections[sIdx].Fields, fieldID)
	if fIdx < 0 {
		return Field{}, false
	}
	return s.doc.Sections[sIdx].Fields[fIdx].Clone(), true
}

// FindField searches every section for fieldID and reports the owning
// section id alongside a copy of the field.
func (s *Store) FindField(fieldID string) (sectionID string, field Field, ok bool) {
	sIdx, fIdx, ok := s.locate(fieldID)
	if !ok {
		return "", Field{}, false
	}
	section := s.doc.Sections[sIdx]
	return section.ID, section.Fields[fIdx].Clone(), true
}

// SelectedField resolves the selection to its section and field.
func (s *Store) SelectedField() (sectionID string, field Field, ok bool) {
	if s.doc.SelectedFieldID == "" {
		return "", Field{}, false
	}
	return s.FindField(s.doc.SelectedFieldID)
}

func (s *Store) sectionIndex(sectionID string) int {
	for idx, section := range s.doc.Sections {
		if section.ID == sectionID {
			return idx
		}
	}
	return -1
}

func fieldIndex(fields []Field, fieldID string) int {
	for idx, field := range fields {
		if field.ID == fieldID {
			return idx
		}
	}
	return -1
}

func (s *Store) locate(fieldID string) (int, int, bool) {
	for sIdx, section := range s.doc.Sections {
		if fIdx := fieldIndex(section.Fields, fieldID); fIdx >= 0 {
			return sIdx, fIdx, true
		}
	}
	return -1, -1, false
}

// newFieldID draws ids until one is unused anywhere in the document. A
// generator that keeps colliding gets a numeric suffix instead of looping.
func (s *Store) newFieldID() string {
	var candidate string
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		candidate = s.ids.NewID()
		if candidate == "" {
			continue
		}
		if _, _, taken := s.locate(candidate); !taken {
			return candidate
		}
	}
	if candidate == "" {
		candidate = "field"
	}
	for n := 2; ; n++ {
		suffixed := fmt.Sprintf("%s-%d", candidate, n)
		if _, _, taken := s.locate(suffixed); !taken {
			return suffixed
		}
	}
}

func (s *Store) notify(op Operation) {
	if len(s.observers) == 0 {
		return
	}
	observers := make([]observerEntry, len(s.observers))
	copy(observers, s.observers)
	for _, entry := range observers {
		entry.fn(Change{Op: op, Document: s.doc.Clone()})
	}
}
