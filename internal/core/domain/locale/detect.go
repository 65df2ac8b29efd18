package locale

import "unicode"

// hangulRatioThreshold is the share of Hangul syllables above which text is
// classified as Korean. The same rule must be used everywhere text is
// (re)classified; diverging heuristics silently corrupt stored languages.
const hangulRatioThreshold = 0.2

// Detect classifies free text as Korean or English by the ratio of Hangul
// syllables (U+AC00..U+D7A3) to all non-whitespace characters. Empty or
// whitespace-only text yields the default locale.
func Detect(text string) Locale {
	var hangul, total int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if r >= 0xAC00 && r <= 0xD7A3 {
			hangul++
		}
	}
	if total == 0 {
		return Default
	}
	if float64(hangul)/float64(total) > hangulRatioThreshold {
		return Korean
	}
	return English
}
