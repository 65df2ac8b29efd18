package locale

// Locale identifies one of the supported site languages.
type Locale string

const (
	English Locale = "en"
	Korean  Locale = "ko"
)

// Default is the locale used when no preference can be determined.
const Default = English

// Supported lists every locale pages can be served in.
var Supported = []Locale{English, Korean}

func (l Locale) String() string {
	return string(l)
}

// IsValid reports whether s names a supported locale.
func IsValid(s string) bool {
	for _, l := range Supported {
		if string(l) == s {
			return true
		}
	}
	return false
}

// Parse returns the locale named by s, or Default when s is not supported.
func Parse(s string) Locale {
	if IsValid(s) {
		return Locale(s)
	}
	return Default
}
