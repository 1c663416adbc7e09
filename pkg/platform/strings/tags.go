// Package strings provides string slice utilities for survey answer tags.
package strings

import "strings"

// NormalizeTags trims whitespace, drops empty entries and removes duplicate
// tags from a slice. Insertion order of the first occurrence is preserved,
// which matters because answer sets round-trip through storage in order.
// A nil or empty input returns nil so optional answers stay "not answered".
func NormalizeTags(values []string) []string {
	if len(values) == 0 {
		return nil
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

	if len(result) == 0 {
		return nil
	}
	return result
}

// ContainsTag reports whether the slice already holds the given tag.
func ContainsTag(values []string, tag string) bool {
	for _, v := range values {
		if v == tag {
			return true
		}
	}
	return false
}

// RemoveTag returns the slice with every occurrence of tag removed.
func RemoveTag(values []string, tag string) []string {
	result := values[:0]
	for _, v := range values {
		if v != tag {
			result = append(result, v)
		}
	}
	return result
}
