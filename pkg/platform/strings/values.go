// Package strings holds helpers for the comma separated value lists used by
// list filters and permission tokens.
package strings

import (
	"strings"
)

// Dedupe trims every element and drops empties and repeats, keeping the first
// occurrence order.
func Dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// DedupeUpper is Dedupe with upper-casing, for permission tokens which are
// compared case-insensitively.
func DedupeUpper(values []string) []string {
	upper := make([]string, len(values))
	for i, v := range values {
		upper[i] = strings.ToUpper(v)
	}
	return Dedupe(upper)
}

// SplitList parses "a, b,,a" into [a b].
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return Dedupe(strings.Split(s, ","))
}

// JoinList is the inverse of SplitList. Empty input yields "".
func JoinList(values []string) string {
	return strings.Join(Dedupe(values), ",")
}
