package core

import (
	"errors"
	"fmt"
	"strings"
)

// Speakers recognized in a dialogue.
const (
	SpeakerHost  = "Host"
	SpeakerGuest = "Guest"
)

// Collection bounds enforced during validation.
const (
	MaxSegments         = 10
	MaxSegmentBullets   = 8
	MaxKeyFacts         = 12
	MaxImportantTerms   = 10
	MaxNotablePeople    = 10
	MaxRecommendedLinks = 10
	MaxSuggestedHooks   = 8
	MaxScriptNotes      = 12
)

// DefaultLanguage is used when a request does not name one.
const DefaultLanguage = "English"

// ErrInvalidRequest is returned when a ResearchRequest is missing required fields.
var ErrInvalidRequest = errors.New("invalid research request")

// ResearchRequest describes the episode the caller wants.
type ResearchRequest struct {
	Topic           string `json:"topic"`              // Subject of the episode (required)
	DurationMinutes int    `json:"durationMinutes"`    // Target length in minutes (required, > 0)
	Style           string `json:"style,omitempty"`    // Style id from the catalog, empty means default
	Language        string `json:"language,omitempty"` // Output language, empty means English
}

// Validate checks the required fields.
func (r ResearchRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Topic) == "" {
		missing = append(missing, "topic")
	}
	if r.DurationMinutes <= 0 {
		missing = append(missing, "durationMinutes")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing or invalid fields: %s", ErrInvalidRequest, strings.Join(missing, ", "))
	}
	return nil
}

// EffectiveLanguage returns the requested language or the default.
func (r ResearchRequest) EffectiveLanguage() string {
	if r.Language == "" {
		return DefaultLanguage
	}
	return r.Language
}

// Segment is one section of the episode outline.
type Segment struct {
	ID                    string   `json:"id"`
	Title                 string   `json:"title"`
	Purpose               string   `json:"purpose"`
	ApproxDurationSeconds int      `json:"approxDurationSeconds"`
	Bullets               []string `json:"bullets"` // Talking points for the host
}

// EpisodeOutline holds the ordered segments.
type EpisodeOutline struct {
	Segments []Segment `json:"segments"`
}

// KeyFact is a single fact or statistic asserted by the model.
type KeyFact struct {
	Fact       string  `json:"fact"`
	Source     string  `json:"source,omitempty"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
}

// ImportantTerm is a jargon term with its definition.
type ImportantTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// NotablePerson is a person or entity relevant to the topic.
type NotablePerson struct {
	Name        string `json:"name"`
	WhyRelevant string `json:"whyRelevant"`
	ShortQuote  string `json:"shortQuote,omitempty"`
}

// RecommendedSource is further reading suggested by the model.
type RecommendedSource struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	Type  string `json:"type,omitempty"`
}

// ResearchOutput is the validated research brief that drives script generation.
// After validation every slice field is non-nil.
type ResearchOutput struct {
	Topic                    string              `json:"topic"`
	Language                 string              `json:"language"`
	EstimatedDurationMinutes int                 `json:"estimatedDurationMinutes"`
	ShortSummary             string              `json:"shortSummary"`
	EpisodeOutline           EpisodeOutline      `json:"episodeOutline"`
	KeyFacts                 []KeyFact           `json:"keyFacts"`
	ImportantTerms           []ImportantTerm     `json:"importantTerms"`
	NotablePeopleOrEntities  []NotablePerson     `json:"notablePeopleOrEntities"`
	RecommendedSources       []RecommendedSource `json:"recommendedSources"`
	SuggestedHooks           []string            `json:"suggestedHooks"`
	SuggestedTone            string              `json:"suggestedTone"`
	ScriptNotesForSpeaker    []string            `json:"scriptNotesForSpeaker"`
}

// Clone returns a deep copy of the brief.
func (o ResearchOutput) Clone() ResearchOutput {
	out := o
	out.EpisodeOutline.Segments = make([]Segment, len(o.EpisodeOutline.Segments))
	for i, s := range o.EpisodeOutline.Segments {
		s.Bullets = cloneStrings(s.Bullets)
		out.EpisodeOutline.Segments[i] = s
	}
	out.KeyFacts = append(make([]KeyFact, 0, len(o.KeyFacts)), o.KeyFacts...)
	out.ImportantTerms = append(make([]ImportantTerm, 0, len(o.ImportantTerms)), o.ImportantTerms...)
	out.NotablePeopleOrEntities = append(make([]NotablePerson, 0, len(o.NotablePeopleOrEntities)), o.NotablePeopleOrEntities...)
	out.RecommendedSources = append(make([]RecommendedSource, 0, len(o.RecommendedSources)), o.RecommendedSources...)
	out.SuggestedHooks = cloneStrings(o.SuggestedHooks)
	out.ScriptNotesForSpeaker = cloneStrings(o.ScriptNotesForSpeaker)
	return out
}

func cloneStrings(in []string) []string {
	return append(make([]string, 0, len(in)), in...)
}

// DialogueLine is a single spoken line of the final script.
type DialogueLine struct {
	Speaker     string `json:"speaker"` // SpeakerHost or SpeakerGuest
	Text        string `json:"text"`
	AudioEffect string `json:"audioEffect,omitempty"` // e.g. "fade_in"
}
