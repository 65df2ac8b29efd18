package services

import (
	"fmt"
	"strings"
)

// masterSystemPrompt frames every generation call. The response contract is a
// single JSON object so the gateway can normalize it without scraping prose.
const masterSystemPrompt = `You are the staff writer of a bilingual (English/Korean) technology and lifestyle blog.
Write in a direct, personal voice grounded in hands-on experience. Prefer concrete
examples over platitudes. Markdown is allowed inside the content field.

Respond with a single JSON object and nothing else, using exactly these keys:
{
  "title": "post title",
  "content": "full post body in markdown, at least 800 words",
  "excerpt": "one- or two-sentence hook, max 160 characters",
  "tags": ["3-6 short tags"],
  "seoTitle": "search-optimized title, max 70 characters",
  "seoDescription": "search-optimized description, max 160 characters"
}`

func buildGenerationPrompt(topic string, keywords []string) string {
	var b strings.Builder
	b.WriteString(masterSystemPrompt)
	b.WriteString("\n\n------\n\nWrite a blog post about: ")
	b.WriteString(topic)
	if len(keywords) > 0 {
		fmt.Fprintf(&b, "\n\nTarget keywords: %s", strings.Join(keywords, ", "))
	}
	b.WriteString("\n\nMatch the language of the topic: a Korean topic gets a Korean post, an English topic an English post.")
	return b.String()
}

func buildVideoPrompt(title, channel, transcript string) string {
	var b strings.Builder
	b.WriteString(masterSystemPrompt)
	b.WriteString("\n\n------\n\nTurn the following video into a standalone blog post. ")
	b.WriteString("Do not refer to it as a video or transcript; rewrite the ideas as an article.\n\n")
	fmt.Fprintf(&b, "Video title: %s\nChannel: %s\n\nTranscript:\n%s", title, channel, transcript)
	return b.String()
}
