package post_test

import (
	"testing"

	"github.com/quillblog/quill/internal/core/domain/post"
)

func TestTagsToList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"go", []string{"go"}},
		{"go,redis,postgres", []string{"go", "redis", "postgres"}},
		{" go , redis ", []string{"go", "redis"}},
		{"go,,redis,", []string{"go", "redis"}},
		{",,,", []string{}},
	}
	for _, c := range cases {
		got := post.TagsToList(c.in)
		if got == nil {
			t.Fatalf("TagsToList(%q) returned nil, want non-nil slice", c.in)
		}
		if len(got) != len(c.want) {
			t.Fatalf("TagsToList(%q) = %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("TagsToList(%q) = %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func TestTagsToString(t *testing.T) {
	if got := post.TagsToString([]string{"go", "redis"}); got != "go,redis" {
		t.Fatalf("got %q", got)
	}
	if got := post.TagsToString(nil); got != "" {
		t.Fatalf("got %q for nil tags", got)
	}
}

func TestTagsRoundTripKeepsKorean(t *testing.T) {
	in := "개발,디자인"
	list := post.TagsToList(in)
	if len(list) != 2 || list[0] != "개발" || list[1] != "디자인" {
		t.Fatalf("unexpected list %v", list)
	}
	if got := post.TagsToString(list); got != in {
		t.Fatalf("round trip mismatch: %q", got)
	}
}
