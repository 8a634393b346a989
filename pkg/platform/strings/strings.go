// Package strings provides string manipulation utilities.
package strings

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  SC ", "ST", "SC", "", "  "})
//	// Returns: []string{"SC", "ST"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// SplitAny splits s on any of the separator runes and returns the trimmed,
// non-empty parts.
//
// Example:
//
//	SplitAny("SC / ST| OBC", ",/|")
//	// Returns: []string{"SC", "ST", "OBC"}
func SplitAny(s, seps string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(seps, r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// SnakeToTitle turns a snake_case identifier into Title Case words.
//
// Example:
//
//	SnakeToTitle("land_holding_acres")
//	// Returns: "Land Holding Acres"
func SnakeToTitle(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", " "))
	return cases.Title(language.English).String(strings.Join(strings.Fields(s), " "))
}
