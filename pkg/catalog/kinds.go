package catalog

import "strings"

// Kind identifies a field widget the designer can place on the canvas. The
// value doubles as the palette drag source identifier.
type Kind string

const (
	KindTextInput   Kind = "text-input"
	KindEmail       Kind = "email"
	KindPassword    Kind = "password"
	KindNumber      Kind = "number"
	KindDatePicker  Kind = "date-picker"
	KindTextArea    Kind = "text-area"
	KindDropdown    Kind = "dropdown"
	KindRadio       Kind = "radio"
	KindCheckbox    Kind = "checkbox"
	KindFileUpload  Kind = "file-upload"
	KindColor       Kind = "color"
	KindRange       Kind = "range"
	KindTime        Kind = "time"
	KindURL         Kind = "url"
	KindPhoneNumber Kind = "phone-number"
)

// Config keys shared by every field kind plus the kind-specific extras.
const (
	KeyLabel       = "label"
	KeyPlaceholder = "placeholder"
	KeyRequired    = "required"
	KeyOptions     = "options"
	KeyMin         = "min"
	KeyMax         = "max"
	KeyValue       = "value"
)

// Presentation fallbacks applied by renderers when a config key is absent.
const (
	DefaultColorValue = "#000000"
	DefaultRangeMin   = 0.0
	DefaultRangeMax   = 100.0
	DefaultRangeValue = 50.0
)

var orderedKinds = []Kind{
	KindTextInput,
	KindEmail,
	KindPassword,
	KindNumber,
	KindDatePicker,
	KindTextArea,
	KindDropdown,
	KindRadio,
	KindCheckbox,
	KindFileUpload,
	KindColor,
	KindRange,
	KindTime,
	KindURL,
	KindPhoneNumber,
}

var knownKinds = func() map[Kind]struct{} {
	out := make(map[Kind]struct{}, len(orderedKinds))
	for _, kind := range orderedKinds {
		out[kind] = struct{}{}
	}
	return out
}()

// Kinds returns every supported kind in palette order.
func Kinds() []Kind {
	out := make([]Kind, len(orderedKinds))
	copy(out, orderedKinds)
	return out
}

// Known reports whether kind belongs to the closed enumeration.
func Known(kind Kind) bool {
	_, ok := knownKinds[kind]
	return ok
}

// IsChoice reports whether kind carries an options list.
func IsChoice(kind Kind) bool {
	switch kind {
	case KindDropdown, KindRadio, KindCheckbox:
		return true
	default:
		return false
	}
}

// UsesPlaceholder reports whether the placeholder key means anything for the
// kind. Color and range widgets have no text to hint.
func UsesPlaceholder(kind Kind) bool {
	switch kind {
	case KindColor, KindRange:
		return false
	default:
		return true
	}
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}

// ParseKind normalises surrounding whitespace only; it never lowercases or
// validates so unknown kinds survive verbatim.
func ParseKind(raw string) Kind {
	return Kind(strings.TrimSpace(raw))
}
