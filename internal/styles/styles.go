// Package styles holds the catalog of show styles and their tone guides.
package styles

import "sort"

// Default is the style used when a request names none or an unknown one.
const Default = "conversational"

var guides = map[string]string{
	"conversational": "Friendly, casual, like two friends chatting. Use colloquialisms, ask rhetorical questions, keep it light but informative.",
	"documentary":    "Formal, authoritative, journalistic. Focus on facts, timeline, verified sources. Narration-heavy, educational.",
	"investigative":  "Probing, curious, skeptical. Ask hard questions, explore controversies, dig deeper. Build suspense and intrigue.",
	"educational":    "Clear, structured, pedagogical. Define terms upfront, build from basics to complex. Think: teaching a student.",
	"storytelling":   "Narrative-driven, emotional, personal. Use anecdotes, character development, dramatic tension. Arc-based.",
}

// Resolve returns the effective style id and its guide. Unknown or empty ids
// resolve to Default.
func Resolve(id string) (string, string) {
	if guide, ok := guides[id]; ok {
		return id, guide
	}
	return Default, guides[Default]
}

// Guide returns the tone guide for id, falling back to the default guide.
func Guide(id string) string {
	_, guide := Resolve(id)
	return guide
}

// Known reports whether id is in the catalog.
func Known(id string) bool {
	_, ok := guides[id]
	return ok
}

// IDs returns every style id in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(guides))
	for id := range guides {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
