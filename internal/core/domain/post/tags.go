package post

import "strings"

// Tags are stored as one comma-delimited column. These helpers convert
// between that representation and the list form used everywhere else.

const tagDelimiter = ","

// TagsToList splits a delimited tag string into trimmed, non-empty tags,
// preserving order. An empty input yields an empty (non-nil) slice.
func TagsToList(s string) []string {
	out := []string{}
	if s == "" {
		return out
	}
	for _, part := range strings.Split(s, tagDelimiter) {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// TagsToString joins tags with the storage delimiter. Nil or empty input
// yields the empty string.
func TagsToString(tags []string) string {
	return strings.Join(tags, tagDelimiter)
}
