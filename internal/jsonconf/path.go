package jsonconf

import "strings"

// KeyDelimiter separates the segments of a flattened key.
const KeyDelimiter = ":"

// CombineKey joins segments into a key path.
func CombineKey(segments ...string) string {
	return strings.Join(segments, KeyDelimiter)
}

// ParentKey returns the key path without its last segment, or "" for a
// top-level key.
func ParentKey(key string) string {
	i := strings.LastIndex(key, KeyDelimiter)
	if i < 0 {
		return ""
	}
	return key[:i]
}

// SectionName returns the last segment of a key path.
func SectionName(key string) string {
	return key[strings.LastIndex(key, KeyDelimiter)+1:]
}

// NormalizeKey returns the form used for case-insensitive comparison.
func NormalizeKey(key string) string {
	return strings.ToUpper(key)
}
