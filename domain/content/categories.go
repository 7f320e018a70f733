package content

import "strings"

// CategoryRule forces one display category per language onto every product
// whose content_id equals or starts with the family name. Historical rows
// carry inconsistent category strings; the rule is applied on every read path
// and never persisted.
type CategoryRule struct {
	Family string
	Labels map[Language]string
}

var categoryRules = []CategoryRule{
	{
		Family: "mvpulse",
		Labels: map[Language]string{
			LanguageDE: "Machine Vision Lasermodule",
			LanguageEN: "Machine Vision Laser Modules",
		},
	},
	{
		Family: "machine-vision",
		Labels: map[Language]string{
			LanguageDE: "Machine Vision Lasermodule",
			LanguageEN: "Machine Vision Laser Modules",
		},
	},
	{
		Family: "linemark",
		Labels: map[Language]string{
			LanguageDE: "Linienlaser",
			LanguageEN: "Line Lasers",
		},
	},
}

// CanonicalCategory returns the forced category for a content_id, if any.
// Matching is case-insensitive on equality or prefix.
func CanonicalCategory(contentID string, lang Language) (string, bool) {
	id := strings.ToLower(strings.TrimSpace(contentID))
	for _, rule := range categoryRules {
		if id == rule.Family || strings.HasPrefix(id, rule.Family) {
			if label, ok := rule.Labels[lang]; ok {
				return label, true
			}
		}
	}
	return "", false
}

// CanonicalizeCategory applies the rule table to a stored category value.
// Unmatched ids pass through unchanged. Idempotent.
func CanonicalizeCategory(contentID string, lang Language, category string) string {
	if label, ok := CanonicalCategory(contentID, lang); ok {
		return label
	}
	return category
}
