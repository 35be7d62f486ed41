package widgets

import "github.com/goliatone/go-formdesigner/pkg/catalog"

// Control names the HTML control family a field renders as.
type Control string

const (
	ControlInput         Control = "input"
	ControlTextArea      Control = "textarea"
	ControlSelect        Control = "select"
	ControlRadioGroup    Control = "radio-group"
	ControlCheckboxGroup Control = "checkbox-group"
)

// Widget describes how a field kind is drawn.
type Widget struct {
	Name    string
	Control Control
	// InputType is the type attribute for ControlInput widgets.
	InputType string
	// Choices is set when the widget renders the field's options.
	Choices bool
	// Placeholder is false for controls that cannot show one (color, range,
	// file pickers, choice groups).
	Placeholder bool
}

// For returns the widget for kind. Unknown kinds report false and draw
// nothing.
func For(kind catalog.Kind) (Widget, bool) {
	w := Widget{Name: string(kind), Placeholder: catalog.UsesPlaceholder(kind)}
	switch kind {
	case catalog.KindTextInput:
		w.Control, w.InputType = ControlInput, "text"
	case catalog.KindEmail:
		w.Control, w.InputType = ControlInput, "email"
	case catalog.KindPassword:
		w.Control, w.InputType = ControlInput, "password"
	case catalog.KindNumber:
		w.Control, w.InputType = ControlInput, "number"
	case catalog.KindDatePicker:
		w.Control, w.InputType = ControlInput, "date"
	case catalog.KindTextArea:
		w.Control = ControlTextArea
	case catalog.KindDropdown:
		w.Control, w.Choices = ControlSelect, true
	case catalog.KindCheckbox:
		w.Control, w.Choices = ControlCheckboxGroup, true
	case catalog.KindRadio:
		w.Control, w.Choices = ControlRadioGroup, true
	case catalog.KindFileUpload:
		w.Control, w.InputType = ControlInput, "file"
	case catalog.KindColor:
		w.Control, w.InputType = ControlInput, "color"
	case catalog.KindRange:
		w.Control, w.InputType = ControlInput, "range"
	case catalog.KindTime:
		w.Control, w.InputType = ControlInput, "time"
	case catalog.KindURL:
		w.Control, w.InputType = ControlInput, "url"
	case catalog.KindPhoneNumber:
		w.Control, w.InputType = ControlInput, "tel"
	default:
		return Widget{}, false
	}
	if w.Choices || w.InputType == "file" {
		w.Placeholder = false
	}
	return w, true
}
