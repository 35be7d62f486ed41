package catalog

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a typo may drift before no suggestion is
// offered. Distances must also stay below the input length so one-letter
// inputs never match.
const maxSuggestDistance = 3

// Suggest returns the known kind closest to the supplied string. ok is false
// when kind is already known or nothing is close enough.
func Suggest(kind Kind) (Kind, bool) {
	if Known(kind) {
		return "", false
	}
	needle := strings.ToLower(strings.TrimSpace(string(kind)))
	if needle == "" {
		return "", false
	}

	best := Kind("")
	bestDist := maxSuggestDistance + 1
	for _, candidate := range orderedKinds {
		dist := levenshtein.ComputeDistance(needle, string(candidate))
		if dist < bestDist && dist < len(needle) {
			best = candidate
			bestDist = dist
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// SuggestionSuffix formats the "did you mean" hint used in error messages.
// It returns an empty string when there is nothing to suggest.
func SuggestionSuffix(kind Kind) string {
	if hint, ok := Suggest(kind); ok {
		return fmt.Sprintf(" (did you mean %q?)", hint)
	}
	return ""
}
