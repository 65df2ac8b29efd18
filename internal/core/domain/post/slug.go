package post

import (
	"fmt"
	"strings"
	"time"
)

const maxSlugLength = 60

// Slugify builds a URL-safe slug from a title. Latin letters are lowercased;
// Korean syllables and jamo are kept so Korean titles stay readable. Runs of
// any other characters collapse into single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9',
			r >= 0xAC00 && r <= 0xD7A3, // Hangul syllables
			r >= 0x3131 && r <= 0x3163: // Hangul jamo
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if runes := []rune(slug); len(runes) > maxSlugLength {
		slug = strings.Trim(string(runes[:maxSlugLength]), "-")
	}
	if len(slug) < 2 {
		slug = fmt.Sprintf("post-%d", time.Now().UnixMilli())
	}
	return slug
}

// UniqueSlug appends a timestamp suffix when the base slug is already taken.
func UniqueSlug(base string, exists func(string) (bool, error)) (string, error) {
	taken, err := exists(base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}
	return fmt.Sprintf("%s-%d", base, time.Now().UnixMilli()), nil
}
