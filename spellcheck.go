package main

import (
	"sort"
	"strings"
)

// Suggestion support for unrecognized input: a similarity scan over the
// registered command names, merged with the resolver's pattern hints and
// ranked by recorded usage.

const similarityThreshold = 0.6
const maxSuggestions = 3

// levenshteinDistance is the classic edit distance between two strings.
func levenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min3(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// commandSimilarity scores two names in [0, 1]; 1 means identical.
func commandSimilarity(a, b string) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshteinDistance(a, b))/float64(longest)
}

// suggestFor proposes likely commands for an input line the dispatcher could
// not resolve. The first token is compared against registered names; the
// whole line additionally runs through the resolver's suggestion tables.
func (c *CLI) suggestFor(line string) []string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(words) == 0 {
		return nil
	}
	first := words[0]

	scores := make(map[string]float64)
	for _, name := range c.registry.Names() {
		if score := commandSimilarity(first, name); score >= similarityThreshold {
			scores[name] = score
		}
	}

	// Resolver hints count too, at a flat score, but only for commands that
	// are actually registered.
	for _, name := range c.resolver.Suggest(line) {
		if _, ok := c.registry.Lookup(name); !ok {
			continue
		}
		if scores[name] < similarityThreshold {
			scores[name] = similarityThreshold
		}
	}

	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}

	// Higher similarity first; usage count breaks ties, then name.
	sort.Slice(names, func(i, j int) bool {
		if scores[names[i]] != scores[names[j]] {
			return scores[names[i]] > scores[names[j]]
		}
		ci, cj := c.usage.Count(names[i]), c.usage.Count(names[j])
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})

	if len(names) > maxSuggestions {
		names = names[:maxSuggestions]
	}
	return names
}
