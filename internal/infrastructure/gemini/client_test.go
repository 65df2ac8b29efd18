package gemini

import "testing"

func TestParsePayload_PlainJSON(t *testing.T) {
	content, err := parsePayload(`{"title":"T","content":"C","tags":["a","b"],"seoTitle":"S"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content.Title != "T" || content.Content != "C" || content.SEOTitle != "S" {
		t.Fatalf("unexpected payload: %+v", content)
	}
	if len(content.Tags) != 2 {
		t.Fatalf("unexpected tags: %v", content.Tags)
	}
}

func TestParsePayload_StripsCodeFences(t *testing.T) {
	for _, raw := range []string{
		"```json\n{\"title\":\"T\",\"content\":\"C\"}\n```",
		"```\n{\"title\":\"T\",\"content\":\"C\"}\n```",
		"  {\"title\":\"T\",\"content\":\"C\"}  ",
	} {
		content, err := parsePayload(raw)
		if err != nil {
			t.Fatalf("parsePayload(%q) error: %v", raw, err)
		}
		if content.Title != "T" {
			t.Fatalf("parsePayload(%q) title = %q", raw, content.Title)
		}
	}
}

func TestParsePayload_RejectsNonJSON(t *testing.T) {
	if _, err := parsePayload("just some prose, no JSON here"); err == nil {
		t.Fatal("expected error for non-JSON text")
	}
}
