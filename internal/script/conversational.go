package script

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"podcaster/internal/core"
	"podcaster/internal/jsonrepair"
	"podcaster/internal/llm"
	"podcaster/internal/styles"
)

// Limits on how much of the brief is summarized into the dialogue prompt.
const (
	promptFacts          = 8
	promptTerms          = 5
	promptSegmentBullets = 3
	minDialogueLines     = 15
	linesPerMinute       = 3
)

var (
	errNoArray       = errors.New("could not find JSON array in response")
	errUnparseable   = errors.New("dialogue array could not be parsed")
	errEmptyDialogue = errors.New("dialogue array is empty")
)

const dialoguePromptTemplate = `You are writing a podcast script for a %[1]d-minute episode about "%[2]s".

CRITICAL: Output ONLY a valid JSON array. No markdown, no explanation, no backticks. Start with [ and end with ].

STYLE: %[3]s

CHARACTERS:
- Host: The main presenter who guides the conversation, asks probing questions, and keeps things on track. Knowledgeable but curious.
- Guest: An expert or enthusiastic co-host who brings additional insights, personal anecdotes, different perspectives, and sometimes challenges or builds on what the Host says. NOT a passive listener.

CONVERSATION RULES:
1. BOTH speakers should contribute substantive content and knowledge
2. The Guest should share facts, opinions, and ask their own questions - NOT just react with "wow" or "interesting"
3. Include natural interruptions, agreements, disagreements, and building on each other's points
4. Use casual language, filler words occasionally (like "you know", "I mean", "right?")
5. Have moments where they laugh, express surprise genuinely, or get excited
6. The Guest can correct the Host or add nuance
7. Include rhetorical questions and direct address to listeners occasionally
8. Vary the length of responses - some short reactions, some longer explanations

RESEARCH TO INCORPORATE:
Key Facts:
%[4]s

Key Terms:
%[5]s

Topics to Cover:
%[6]s

Summary: %[7]s

OUTPUT FORMAT - Array of dialogue lines:
[
  {"speaker": "Host", "text": "...", "audioEffect": "fade_in"},
  {"speaker": "Guest", "text": "...", "audioEffect": null},
  ...
]

Generate approximately %[8]d dialogue exchanges for a %[1]d-minute episode.
Each line should be 1-4 sentences. Make it feel like a REAL conversation between two knowledgeable friends.

NOW OUTPUT THE JSON ARRAY:`

// Conversational asks the model for a natural dialogue and falls back to
// Templated on any failure.
type Conversational struct {
	llm llm.Completer
	log *slog.Logger
}

// NewConversational creates a renderer that uses completer for the dialogue call.
func NewConversational(completer llm.Completer, log *slog.Logger) *Conversational {
	if log == nil {
		log = slog.Default()
	}
	return &Conversational{llm: completer, log: log}
}

// Render returns the model's dialogue for research, or Templated(research)
// if the call, extraction, parsing or shape check fails. It never returns an
// empty script.
func (c *Conversational) Render(ctx context.Context, research core.ResearchOutput, req core.ResearchRequest) []core.DialogueLine {
	lines, err := c.render(ctx, research, req)
	if err != nil {
		c.log.Warn("Conversational script failed, using templated script",
			"topic", research.Topic,
			"error", err.Error(),
		)
		return Templated(research)
	}
	return lines
}

func (c *Conversational) render(ctx context.Context, research core.ResearchOutput, req core.ResearchRequest) ([]core.DialogueLine, error) {
	raw, err := c.llm.Complete(ctx, BuildDialoguePrompt(research, req))
	if err != nil {
		return nil, fmt.Errorf("dialogue completion: %w", err)
	}

	candidate, ok := jsonrepair.ExtractArray(raw)
	if !ok {
		return nil, errNoArray
	}
	parsed, ok := jsonrepair.SafeParse(candidate)
	if !ok {
		return nil, errUnparseable
	}
	return normalizeDialogue(parsed)
}

// BuildDialoguePrompt renders the prompt for the conversational script.
func BuildDialoguePrompt(research core.ResearchOutput, req core.ResearchRequest) string {
	var facts []string
	for _, f := range head(research.KeyFacts, promptFacts) {
		facts = append(facts, "- "+f.Fact)
	}

	var terms []string
	for _, t := range head(research.ImportantTerms, promptTerms) {
		terms = append(terms, fmt.Sprintf("- %s: %s", t.Term, t.Definition))
	}

	var topics []string
	for _, s := range research.EpisodeOutline.Segments {
		topics = append(topics, fmt.Sprintf("- %s: %s", s.Title, strings.Join(head(s.Bullets, promptSegmentBullets), ", ")))
	}

	return fmt.Sprintf(dialoguePromptTemplate,
		req.DurationMinutes,
		research.Topic,
		styles.Guide(req.Style),
		strings.Join(facts, "\n"),
		strings.Join(terms, "\n"),
		strings.Join(topics, "\n"),
		research.ShortSummary,
		TargetLines(req.DurationMinutes),
	)
}

// TargetLines is the approximate dialogue length requested for a duration.
func TargetLines(durationMinutes int) int {
	return max(minDialogueLines, durationMinutes*linesPerMinute)
}

func normalizeDialogue(parsed jsonrepair.Raw) ([]core.DialogueLine, error) {
	items, ok := parsed.Array()
	if !ok {
		return nil, fmt.Errorf("expected dialogue array, got %s", parsed.Kind())
	}
	if len(items) == 0 {
		return nil, errEmptyDialogue
	}

	lines := make([]core.DialogueLine, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("dialogue line %d is not an object", i)
		}

		line := core.DialogueLine{
			Speaker: speakerFor(obj, i),
			Text:    textOf(obj["text"]),
		}
		if i == 0 {
			if effect, ok := obj["audioEffect"].(string); ok {
				line.AudioEffect = effect
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// speakerFor keeps a valid speaker, defaults a missing one to Host and
// alternates Host/Guest by position for anything else.
func speakerFor(obj map[string]any, i int) string {
	v, present := obj["speaker"]
	if !present {
		return core.SpeakerHost
	}
	if s, ok := v.(string); ok && (s == core.SpeakerHost || s == core.SpeakerGuest) {
		return s
	}
	if i%2 == 0 {
		return core.SpeakerHost
	}
	return core.SpeakerGuest
}

func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
