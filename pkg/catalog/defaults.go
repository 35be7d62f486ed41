package catalog

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// DefaultOptions seeds every choice field created from the palette.
var DefaultOptions = []string{"Option 1", "Option 2", "Option 3"}

// DefaultConfig builds the configuration bag a freshly dropped field starts
// with. The rule only looks at the kind string, so unrecognised kinds still
// receive a label and placeholder.
func DefaultConfig(kind Kind) map[string]any {
	config := map[string]any{
		KeyLabel:       DefaultLabel(kind),
		KeyPlaceholder: fmt.Sprintf("Enter %s here", kind),
		KeyRequired:    false,
	}
	if IsChoice(kind) {
		options := make([]string, len(DefaultOptions))
		copy(options, DefaultOptions)
		config[KeyOptions] = options
	}
	return config
}

// DefaultLabel upper-cases the first character of the kind string and keeps
// the rest untouched ("text-input" becomes "Text-input").
func DefaultLabel(kind Kind) string {
	raw := string(kind)
	if raw == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(raw)
	return string(unicode.ToUpper(first)) + raw[size:]
}
