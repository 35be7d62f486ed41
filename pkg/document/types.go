package document

import "github.com/goliatone/go-formdesigner/pkg/catalog"

// EntryType tags canvas entries. Every entry the store creates today is a
// field; the projection filters on this tag so future layout entries stay out
// of exports.
type EntryType string

// EntryField tags a form field.
const EntryField EntryType = "field"

// Config is the kind-dependent property bag of a field. Universal keys are
// label, placeholder and required; choice kinds add options, range adds
// min/max/value and color adds value.
type Config map[string]any

// Field is one input placed inside a section.
type Field struct {
	ID     string       `json:"id"`
	Type   EntryType    `json:"type"`
	Kind   catalog.Kind `json:"fieldType"`
	Config Config       `json:"config"`
}

// Section is an ordered, titled group of fields and doubles as a drop zone.
type Section struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// FormDocument is the whole designer state.
type FormDocument struct {
	Title              string    `json:"title"`
	Sections           []Section `json:"sections"`
	NextSectionCounter int       `json:"nextSectionCounter"`
	SelectedFieldID    string    `json:"selectedFieldId,omitempty"`
	IsPreviewOpen      bool      `json:"isPreviewOpen"`
	IsJSONViewOpen     bool      `json:"isJsonViewOpen"`
}

// Operation names one of the store mutations. The values double as the
// wire-level action type.
type Operation string

const (
	OpAddSection         Operation = "addSection"
	OpRemoveSection      Operation = "removeSection"
	OpUpdateSectionTitle Operation = "updateSectionTitle"
	OpAddField           Operation = "addField"
	OpUpdateFieldConfig  Operation = "updateFieldConfig"
	OpRemoveField        Operation = "removeField"
	OpSelectField        Operation = "selectField"
	OpTogglePreview      Operation = "togglePreview"
	OpToggleJSONView     Operation = "toggleJsonView"
)

// Operations lists every mutation in the order they are documented.
func Operations() []Operation {
	return []Operation{
		OpAddSection,
		OpRemoveSection,
		OpUpdateSectionTitle,
		OpAddField,
		OpUpdateFieldConfig,
		OpRemoveField,
		OpSelectField,
		OpTogglePreview,
		OpToggleJSONView,
	}
}

// Change is delivered to observers after a mutation took effect.
type Change struct {
	Op       Operation
	Document FormDocument
}
