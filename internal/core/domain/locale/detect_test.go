package locale_test

import (
	"strings"
	"testing"

	"github.com/quillblog/quill/internal/core/domain/locale"
)

func TestDetect_KoreanText(t *testing.T) {
	if got := locale.Detect("개발자를 위한 수면 프로토콜"); got != locale.Korean {
		t.Fatalf("expected ko, got %s", got)
	}
}

func TestDetect_EnglishText(t *testing.T) {
	if got := locale.Detect("A realistic sleep protocol for night-shift developers"); got != locale.English {
		t.Fatalf("expected en, got %s", got)
	}
}

func TestDetect_MixedTextAboveThreshold(t *testing.T) {
	// 5 Hangul syllables out of 12 non-whitespace runes is above 20%.
	if got := locale.Detect("hello 안녕하세요 ok"); got != locale.Korean {
		t.Fatalf("expected ko for mixed text above threshold, got %s", got)
	}
}

func TestDetect_MixedTextBelowThreshold(t *testing.T) {
	// A couple of Korean words inside a long English sentence stay English.
	text := "the word 안녕 appears once in " + strings.Repeat("english ", 5)
	if got := locale.Detect(text); got != locale.English {
		t.Fatalf("expected en for mostly-English text, got %s", got)
	}
}

func TestDetect_EmptyAndWhitespace(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		if got := locale.Detect(text); got != locale.Default {
			t.Fatalf("expected default locale for %q, got %s", text, got)
		}
	}
}

func TestDetect_WhitespaceIgnoredInRatio(t *testing.T) {
	// Padding with spaces must not dilute the Hangul ratio.
	if got := locale.Detect("안녕    하세요        "); got != locale.Korean {
		t.Fatalf("expected ko, got %s", got)
	}
}

func TestParse_FallsBackToDefault(t *testing.T) {
	if got := locale.Parse("fr"); got != locale.Default {
		t.Fatalf("expected default for unsupported locale, got %s", got)
	}
	if got := locale.Parse("ko"); got != locale.Korean {
		t.Fatalf("expected ko, got %s", got)
	}
}
