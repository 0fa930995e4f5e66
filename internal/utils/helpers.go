// Package utils provides utility functions and helpers for common operations
// used throughout the application: error mapping, responses, logging,
// validation and a few string helpers.
package utils

import (
	"strings"
)

// TruncateString truncates a string to the given maximum length and adds ellipsis if necessary.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// ContainsAny reports whether s contains any of the substrings.
func ContainsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// LookupFold returns the value stored under key, comparing keys case-insensitively.
// An exact match wins over a case-folded one.
func LookupFold(row map[string]interface{}, key string) (interface{}, bool) {
	if v, ok := row[key]; ok {
		return v, true
	}
	for k, v := range row {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// LowerAll returns a lower-cased copy of values.
func LowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
