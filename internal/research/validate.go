package research

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"podcaster/internal/core"
	"podcaster/internal/jsonrepair"
	"podcaster/internal/styles"
)

const (
	defaultDurationMinutes = 10
	defaultConfidence      = 0.5
	fallbackSegmentCount   = 3
)

// Normalize turns an arbitrary decoded value into a ResearchOutput. Missing or
// malformed fields are replaced with defaults derived from req, lists are
// truncated to their bounds and confidences are clamped. It never fails; a
// raw value that is not an object is treated as an empty one.
func Normalize(raw jsonrepair.Raw, req core.ResearchRequest) core.ResearchOutput {
	obj, ok := raw.Object()
	if !ok || obj == nil {
		obj = map[string]any{}
	}

	defaultMinutes := req.DurationMinutes
	if defaultMinutes <= 0 {
		defaultMinutes = defaultDurationMinutes
	}
	defaultTone := req.Style
	if defaultTone == "" {
		defaultTone = styles.Default
	}

	out := core.ResearchOutput{
		Topic:                    stringField(obj, "topic", req.Topic),
		Language:                 stringField(obj, "language", req.EffectiveLanguage()),
		EstimatedDurationMinutes: intField(obj, "estimatedDurationMinutes", defaultMinutes),
		ShortSummary:             stringField(obj, "shortSummary", fmt.Sprintf("An exploration of %s", req.Topic)),
		EpisodeOutline:           core.EpisodeOutline{Segments: []core.Segment{}},
		KeyFacts:                 []core.KeyFact{},
		ImportantTerms:           []core.ImportantTerm{},
		NotablePeopleOrEntities:  []core.NotablePerson{},
		RecommendedSources:       []core.RecommendedSource{},
		SuggestedHooks:           []string{},
		SuggestedTone:            stringField(obj, "suggestedTone", defaultTone),
		ScriptNotesForSpeaker:    []string{},
	}

	if outline, ok := obj["episodeOutline"].(map[string]any); ok {
		out.EpisodeOutline.Segments = normalizeSegments(outline["segments"], out.EstimatedDurationMinutes*60)
	}

	for _, item := range listField(obj, "keyFacts", core.MaxKeyFacts) {
		f := asObject(item)
		out.KeyFacts = append(out.KeyFacts, core.KeyFact{
			Fact:       stringField(f, "fact", ""),
			Source:     optionalString(f["source"]),
			Confidence: clamp01(floatField(f, "confidence", defaultConfidence)),
		})
	}

	for _, item := range listField(obj, "importantTerms", core.MaxImportantTerms) {
		t := asObject(item)
		out.ImportantTerms = append(out.ImportantTerms, core.ImportantTerm{
			Term:       stringField(t, "term", ""),
			Definition: stringField(t, "definition", ""),
		})
	}

	for _, item := range listField(obj, "notablePeopleOrEntities", core.MaxNotablePeople) {
		p := asObject(item)
		out.NotablePeopleOrEntities = append(out.NotablePeopleOrEntities, core.NotablePerson{
			Name:        stringField(p, "name", ""),
			WhyRelevant: stringField(p, "whyRelevant", ""),
			ShortQuote:  optionalString(p["shortQuote"]),
		})
	}

	for _, item := range listField(obj, "recommendedSources", core.MaxRecommendedLinks) {
		s := asObject(item)
		out.RecommendedSources = append(out.RecommendedSources, core.RecommendedSource{
			Title: stringField(s, "title", ""),
			URL:   optionalString(s["url"]),
			Type:  optionalString(s["type"]),
		})
	}

	out.SuggestedHooks = stringList(listField(obj, "suggestedHooks", core.MaxSuggestedHooks))
	out.ScriptNotesForSpeaker = stringList(listField(obj, "scriptNotesForSpeaker", core.MaxScriptNotes))

	return out
}

func normalizeSegments(v any, totalSeconds int) []core.Segment {
	items, _ := v.([]any)
	if len(items) > core.MaxSegments {
		items = items[:core.MaxSegments]
	}
	segments := make([]core.Segment, 0, len(items))

	count := len(items)
	if count == 0 {
		count = fallbackSegmentCount
	}
	perSegment := int(math.Round(float64(totalSeconds) / float64(count)))

	for i, item := range items {
		s := asObject(item)
		segments = append(segments, core.Segment{
			ID:                    stringField(s, "id", fmt.Sprintf("s%d", i+1)),
			Title:                 stringField(s, "title", fmt.Sprintf("Segment %d", i+1)),
			Purpose:               stringField(s, "purpose", ""),
			ApproxDurationSeconds: intField(s, "approxDurationSeconds", perSegment),
			Bullets:               stringList(listField(s, "bullets", core.MaxSegmentBullets)),
		})
	}
	return segments
}

// asObject returns v as an object, or an empty one when it is anything else.
func asObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// listField returns obj[key] truncated to limit, or nil when it is not a list.
func listField(obj map[string]any, key string, limit int) []any {
	items, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func stringList(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, stringify(item))
	}
	return out
}

// stringField reads a scalar as a string. Objects, arrays and null fall back
// to def.
func stringField(obj map[string]any, key, def string) string {
	switch v := obj[key].(type) {
	case string:
		return v
	case float64, bool, json.Number:
		return stringify(v)
	default:
		return def
	}
}

func intField(obj map[string]any, key string, def int) int {
	f, ok := toFloat(obj[key])
	if !ok {
		return def
	}
	return int(f)
}

func floatField(obj map[string]any, key string, def float64) float64 {
	f, ok := toFloat(obj[key])
	if !ok {
		return def
	}
	return f
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// clamp01 clamps f into [0,1]; NaN becomes 0.
func clamp01(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return math.Min(1, math.Max(0, f))
}

// optionalString returns the string form of v when v is truthy, otherwise "".
func optionalString(v any) string {
	if !truthy(v) {
		return ""
	}
	return stringify(v)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
