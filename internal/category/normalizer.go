package category

import "strings"

// DefaultBucket is the canonical category used when nothing else matches.
// Default-bucket tickets are load-balanced across the on-duty generalists.
const DefaultBucket = "Level 1"

// keywordGroup maps substring keywords to a canonical category. Groups are
// evaluated in order; the first hit wins.
type keywordGroup struct {
	keywords []string
	category string
}

var defaultGroups = []keywordGroup{
	{keywords: []string{"account", "billing"}, category: "Account Management"},
	{keywords: []string{"software", "application"}, category: "Software"},
	{keywords: []string{"hardware", "printer"}, category: "Hardware"},
	{keywords: []string{"network", "wifi", "internet"}, category: "Network"},
	{keywords: []string{"server", "cloud"}, category: "Server"},
	{keywords: []string{"security", "password"}, category: "Security"},
}

// Normalizer maps raw ticket category labels to canonical categories. An
// override table from the roster takes precedence over keyword matching.
type Normalizer struct {
	overrides map[string]string
	groups    []keywordGroup
}

// NewNormalizer creates a normalizer with the given override table. A nil
// table disables overrides.
func NewNormalizer(overrides map[string]string) *Normalizer {
	return &Normalizer{
		overrides: overrides,
		groups:    defaultGroups,
	}
}

// Normalize returns the canonical category for a raw label. Overrides apply
// to the raw label before keyword matching; empty or unmatched input falls
// into the default bucket.
func (n *Normalizer) Normalize(raw string) string {
	if mapped, ok := n.overrides[raw]; ok {
		return mapped
	}

	lowered := strings.ToLower(raw)
	for _, group := range n.groups {
		for _, keyword := range group.keywords {
			if strings.Contains(lowered, keyword) {
				return group.category
			}
		}
	}
	return DefaultBucket
}
