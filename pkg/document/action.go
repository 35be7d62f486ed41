package document

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formdesigner/pkg/catalog"
)

// ErrUnknownAction is returned by Dispatch for an action type the store does
// not implement.
var ErrUnknownAction = errors.New("document: unknown action")

// Action is a discrete edit request as dispatched by a presentation layer.
// Type selects the operation; the remaining fields carry its arguments and
// are ignored when the operation does not use them.
type Action struct {
	Type      Operation    `json:"type"`
	SectionID string       `json:"sectionId,omitempty"`
	FieldID   string       `json:"fieldId,omitempty"`
	FieldKind catalog.Kind `json:"fieldKind,omitempty"`
	Title     string       `json:"title,omitempty"`
	Config    Config       `json:"config,omitempty"`
}

// AddSection builds an action appending a new numbered section.
func AddSection() Action { return Action{Type: OpAddSection} }

// RemoveSection builds an action dropping a section and its fields.
func RemoveSection(sectionID string) Action {
	return Action{Type: OpRemoveSection, SectionID: sectionID}
}

// UpdateSectionTitle builds a rename action. The store trims title.
func UpdateSectionTitle(sectionID, title string) Action {
	return Action{Type: OpUpdateSectionTitle, SectionID: sectionID, Title: title}
}

// AddField builds an action appending a field of kind to a section.
func AddField(sectionID string, kind catalog.Kind) Action {
	return Action{Type: OpAddField, SectionID: sectionID, FieldKind: kind}
}

// UpdateFieldConfig builds an action merging partial into a field config.
func UpdateFieldConfig(sectionID, fieldID string, partial Config) Action {
	return Action{Type: OpUpdateFieldConfig, SectionID: sectionID, FieldID: fieldID, Config: partial}
}

// RemoveField builds an action deleting one field from a section.
func RemoveField(sectionID, fieldID string) Action {
	return Action{Type: OpRemoveField, SectionID: sectionID, FieldID: fieldID}
}

// SelectField builds a selection action; pass "" to clear the selection.
func SelectField(fieldID string) Action {
	return Action{Type: OpSelectField, FieldID: fieldID}
}

// TogglePreview builds an action flipping the preview flag.
func TogglePreview() Action { return Action{Type: OpTogglePreview} }

// ToggleJSONView builds an action flipping the JSON view flag.
func ToggleJSONView() Action { return Action{Type: OpToggleJSONView} }

// Dispatch routes the action to its operation. The boolean reports whether
// the document changed; the error is reserved for unknown action types.
func (s *Store) Dispatch(action Action) (bool, error) {
	switch action.Type {
	case OpAddSection:
		return s.AddSection(), nil
	case OpRemoveSection:
		return s.RemoveSection(action.SectionID), nil
	case OpUpdateSectionTitle:
		return s.UpdateSectionTitle(action.SectionID, action.Title), nil
	case OpAddField:
		return s.AddField(action.SectionID, action.FieldKind), nil
	case OpUpdateFieldConfig:
		return s.UpdateFieldConfig(action.SectionID, action.FieldID, action.Config), nil
	case OpRemoveField:
		return s.RemoveField(action.SectionID, action.FieldID), nil
	case OpSelectField:
		return s.SelectField(action.FieldID), nil
	case OpTogglePreview:
		return s.TogglePreview(), nil
	case OpToggleJSONView:
		return s.ToggleJSONView(), nil
	default:
		return false, fmt.Errorf("%w %q", ErrUnknownAction, action.Type)
	}
}
