package vanilla

import (
	"sort"
	"strconv"
	"strings"
)

func fieldControlID(fieldID string) string {
	trimmed := strings.TrimSpace(fieldID)
	if trimmed == "" {
		return ""
	}
	return "fd-" + trimmed
}

func optionControlID(fieldID string, index int) string {
	controlID := fieldControlID(fieldID)
	if controlID == "" {
		return ""
	}
	return controlID + "-" + strconv.Itoa(index+1)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// cssVarsStyle renders custom properties in key order so output is stable.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteByte(';')
	}
	return b.String()
}
