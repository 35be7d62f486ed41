package render

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/goliatone/go-formdesigner/pkg/catalog"
	"github.com/goliatone/go-formdesigner/pkg/document"
	"github.com/goliatone/go-formdesigner/pkg/projection"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateValues checks preview values against the schema and returns
// messages keyed by field id. Only required flags, numeric bounds, choice
// membership and the obvious format rules are enforced. A nil map means the
// values are acceptable.
func ValidateValues(schema projection.Schema, values map[string]any) map[string][]string {
	out := make(map[string][]string)
	for _, section := range schema.Sections {
		for _, field := range section.Fields {
			if !catalog.Known(field.Type) {
				continue
			}
			if messages := normalizeMessages(validateField(field, values[field.ID])); len(messages) > 0 {
				out[field.ID] = messages
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func validateField(field projection.Field, value any) []string {
	label := field.Config.Label()
	if label == "" {
		label = field.ID
	}
	if isEmpty(value) {
		if field.Config.Required() {
			return []string{fmt.Sprintf("%s is required", label)}
		}
		return nil
	}

	switch field.Type {
	case catalog.KindNumber:
		if _, ok := (document.Config{"v": value}).Number("v"); !ok {
			return []string{fmt.Sprintf("%s must be a number", label)}
		}
	case catalog.KindRange:
		n, ok := (document.Config{"v": value}).Number("v")
		if !ok {
			return []string{fmt.Sprintf("%s must be a number", label)}
		}
		lo, lok := field.Config.Number(catalog.KeyMin)
		if !lok {
			lo = catalog.DefaultRangeMin
		}
		hi, hok := field.Config.Number(catalog.KeyMax)
		if !hok {
			hi = catalog.DefaultRangeMax
		}
		if n < lo || n > hi {
			return []string{fmt.Sprintf("%s must be between %g and %g", label, lo, hi)}
		}
	case catalog.KindEmail:
		if _, err := mail.ParseAddress(fmt.Sprint(value)); err != nil {
			return []string{fmt.Sprintf("%s must be a valid email address", label)}
		}
	case catalog.KindURL:
		parsed, err := url.Parse(fmt.Sprint(value))
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return []string{fmt.Sprintf("%s must be an absolute URL", label)}
		}
	case catalog.KindColor:
		if !hexColor.MatchString(fmt.Sprint(value)) {
			return []string{fmt.Sprintf("%s must be a #rrggbb color", label)}
		}
	case catalog.KindDropdown, catalog.KindRadio:
		if !contains(field.Config.Options(), fmt.Sprint(value)) {
			return []string{fmt.Sprintf("%s must be one of the listed options", label)}
		}
	case catalog.KindCheckbox:
		choices := document.StringSlice(value)
		if single, ok := value.(string); ok {
			choices = []string{single}
		}
		var messages []string
		for _, choice := range choices {
			if !contains(field.Config.Options(), choice) {
				messages = append(messages, fmt.Sprintf("%s: %q is not a listed option", label, choice))
			}
		}
		return messages
	}
	return nil
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
