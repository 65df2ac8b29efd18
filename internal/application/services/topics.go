package services

import (
	"math/rand"
	"strings"
)

// Topic is one entry of the scheduled-generation pool.
type Topic struct {
	Prompt   string
	Keywords []string
	Category string
}

// Weighted category shares for daily picks.
var topicCategoryWeights = map[string]int{
	"product":    40,
	"design":     20,
	"biohacking": 20,
	"general":    20,
}

var topicPool = []Topic{
	{Category: "product", Prompt: "How to run a useful weekly metrics review without drowning the team in dashboards", Keywords: []string{"product management", "metrics", "team rituals"}},
	{Category: "product", Prompt: "Writing product specs an AI pair-writer can actually help with", Keywords: []string{"product specs", "AI tools", "writing"}},
	{Category: "product", Prompt: "Saying no to stakeholders: scripts that keep the roadmap honest", Keywords: []string{"roadmap", "stakeholders", "prioritization"}},
	{Category: "product", Prompt: "What shipping a failed feature taught me about discovery", Keywords: []string{"product discovery", "failure", "lessons"}},
	{Category: "design", Prompt: "Design systems for one-designer teams: what to standardize first", Keywords: []string{"design systems", "startup", "UI"}},
	{Category: "design", Prompt: "Prototyping with AI image tools without losing your visual voice", Keywords: []string{"prototyping", "AI", "design process"}},
	{Category: "design", Prompt: "Accessibility debt: cheap fixes that move the needle this sprint", Keywords: []string{"accessibility", "frontend", "checklist"}},
	{Category: "biohacking", Prompt: "A realistic sleep protocol for people who ship software at midnight", Keywords: []string{"sleep", "biohacking", "focus"}},
	{Category: "biohacking", Prompt: "Caffeine cycling: what two months of tracking actually changed", Keywords: []string{"caffeine", "tracking", "energy"}},
	{Category: "biohacking", Prompt: "Desk ergonomics experiments that survived contact with a real budget", Keywords: []string{"ergonomics", "health", "remote work"}},
	{Category: "general", Prompt: "Reading queues instead of reading lists: managing input overload", Keywords: []string{"reading", "productivity", "knowledge"}},
	{Category: "general", Prompt: "Side projects as career insurance: picking ones you'll finish", Keywords: []string{"side projects", "career", "learning"}},
	{Category: "general", Prompt: "What a year of writing in two languages did to my thinking", Keywords: []string{"writing", "bilingual", "blogging"}},
}

// PickTopics selects n topics with weighted categories, skipping prompts that
// already appear among recent post titles.
func PickTopics(n int, recentTitles []string) []Topic {
	recent := make(map[string]bool, len(recentTitles))
	for _, t := range recentTitles {
		recent[strings.ToLower(strings.TrimSpace(t))] = true
	}

	byCategory := map[string][]Topic{}
	for _, t := range topicPool {
		if recent[strings.ToLower(t.Prompt)] {
			continue
		}
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}

	totalWeight := 0
	for _, w := range topicCategoryWeights {
		totalWeight += w
	}

	picked := make([]Topic, 0, n)
	for len(picked) < n {
		remaining := 0
		for _, ts := range byCategory {
			remaining += len(ts)
		}
		if remaining == 0 {
			break
		}
		r := rand.Intn(totalWeight)
		for cat, w := range topicCategoryWeights {
			if r -= w; r < 0 {
				if ts := byCategory[cat]; len(ts) > 0 {
					i := rand.Intn(len(ts))
					picked = append(picked, ts[i])
					byCategory[cat] = append(ts[:i], ts[i+1:]...)
				}
				break
			}
		}
	}
	return picked
}
