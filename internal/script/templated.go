// Package script renders a research brief into a two-speaker dialogue.
package script

import (
	"fmt"

	"podcaster/internal/core"
)

// Fixed lines used by the templated renderer.
const (
	GuestFollowUp = "That's interesting. Can you elaborate on that?"
	GuestReaction = "Wow, I didn't know that."
	SignOff       = "Thanks for listening. See you next time."
	FadeIn        = "fade_in"
)

// Templated expands a brief into a dialogue using fixed turn-taking rules.
// It never calls the model and always returns at least two lines.
func Templated(research core.ResearchOutput) []core.DialogueLine {
	var lines []core.DialogueLine

	opening := fmt.Sprintf("Let's talk about %s", research.Topic)
	if len(research.SuggestedHooks) > 0 {
		opening = research.SuggestedHooks[0]
	}
	lines = append(lines, core.DialogueLine{Speaker: core.SpeakerHost, Text: opening, AudioEffect: FadeIn})

	for _, segment := range research.EpisodeOutline.Segments {
		intro := segment.Title
		if len(segment.Bullets) > 0 {
			intro = segment.Bullets[0]
		}
		lines = append(lines,
			core.DialogueLine{Speaker: core.SpeakerHost, Text: intro},
			core.DialogueLine{Speaker: core.SpeakerGuest, Text: GuestFollowUp},
		)

		if len(segment.Bullets) > 1 {
			for _, bullet := range segment.Bullets[1:] {
				lines = append(lines, core.DialogueLine{Speaker: core.SpeakerHost, Text: bullet})
			}
			lines = append(lines, core.DialogueLine{Speaker: core.SpeakerGuest, Text: GuestReaction})
		}
	}

	if n := len(research.ScriptNotesForSpeaker); n > 0 {
		lines = append(lines, core.DialogueLine{Speaker: core.SpeakerHost, Text: research.ScriptNotesForSpeaker[n-1]})
	}
	lines = append(lines, core.DialogueLine{Speaker: core.SpeakerHost, Text: SignOff})

	return lines
}
