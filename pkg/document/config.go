package document

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formdesigner/pkg/catalog"
)

// String returns the string stored under key, or "" when absent or not a
// string.
func (c Config) String(key string) string {
	if c == nil {
		return ""
	}
	if value, ok := c[key].(string); ok {
		return value
	}
	return ""
}

// Bool returns the flag stored under key. Strings "true"/"false" are accepted
// since form posts deliver them that way.
func (c Config) Bool(key string) bool {
	if c == nil {
		return false
	}
	switch v := c[key].(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && parsed
	default:
		return false
	}
}

// Number returns the numeric value under key and whether one was present and
// coercible. Numeric strings are accepted; anything else reports false so
// callers can fall back to their own default.
func (c Config) Number(key string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	switch v := c[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// Options returns the choice list. A missing key reads as an empty list;
// JSON-decoded []any values are converted element by element.
func (c Config) Options() []string {
	if c == nil {
		return nil
	}
	return StringSlice(c[catalog.KeyOptions])
}

// Label reads the label key.
func (c Config) Label() string { return c.String(catalog.KeyLabel) }

// Placeholder reads the placeholder key.
func (c Config) Placeholder() string { return c.String(catalog.KeyPlaceholder) }

// Required reports the required key; absent means false.
func (c Config) Required() bool { return c.Bool(catalog.KeyRequired) }

// Clone returns a deep copy of the bag.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for key, value := range c {
		out[key] = cloneValue(value)
	}
	return out
}

// StringSlice converts []string or []any values into a fresh []string.
// Non-string elements are formatted; nil and other types yield nil.
func StringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			switch s := item.(type) {
			case string:
				out = append(out, s)
			case nil:
				out = append(out, "")
			default:
				out = append(out, toString(s))
			}
		}
		return out
	default:
		return nil
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = cloneValue(item)
		}
		return out
	case Config:
		return v.Clone()
	default:
		return v
	}
}
