package research

import (
	"fmt"

	"podcaster/internal/core"
	"podcaster/internal/styles"
)

// ResearchSchema is the literal JSON shape the model is asked to emit.
const ResearchSchema = `{
  "topic": string,
  "language": string,
  "estimatedDurationMinutes": number,
  "shortSummary": string (1-2 sentences, compelling hook),
  "episodeOutline": {
    "segments": [
      {
        "id": string (s1, s2, etc),
        "title": string (segment name matching the style),
        "purpose": string (why this segment exists),
        "approxDurationSeconds": number,
        "bullets": string[] (3-8 talking points the host can speak)
      }
    ]
  },
  "keyFacts": [
    {
      "fact": string (single fact or statistic),
      "source": string or null (URL if available),
      "confidence": number (0-1, 1.0 = verified)
    }
  ],
  "importantTerms": [
    { "term": string, "definition": string }
  ],
  "notablePeopleOrEntities": [
    { "name": string, "whyRelevant": string, "shortQuote": string (optional) }
  ],
  "recommendedSources": [
    { "title": string, "url": string (optional), "type": string (optional) }
  ],
  "suggestedHooks": string[] (4-6 opening lines, each ≤20 words),
  "suggestedTone": string (one phrase describing how the host should sound),
  "scriptNotesForSpeaker": string[] (6-10 actionable notes for pacing, emotion, SFX)
}`

const researchPromptTemplate = `You are an expert podcast research assistant. Your job is to generate a structured research brief for a %[1]d-minute podcast episode.

CRITICAL: Output ONLY valid JSON. No markdown, no explanation, no backticks. Start with { and end with }.

STYLE & TONE:
%[2]s

TARGET DURATION: %[1]d minutes (%[3]d total seconds)

SCHEMA (output exactly these fields):
%[4]s

REQUIREMENTS:
1. Create 3-6 segments. Total duration should sum to ~%[3]d seconds.
2. Segments MUST follow the %[5]s style guide above. Titles and bullets should reflect that style.
3. Provide 6-12 key facts with credible sources when possible. If uncertain, set source=null and confidence low.
4. Provide 4-6 hooks that grab attention and tease the episode's core value.
5. Script notes should include: pacing cues, where to pause, emotional beats, sound effect opportunities, rhetorical questions.
6. Bullets are for the HOST TO SPEAK. They should be conversational, not robotic. Make them natural talking points.
7. Important terms should define jargon the listener might not know.
8. Notable people/entities should have a short reason why they matter (not just a quote).

RESEARCH TOPIC: %[6]s
OUTPUT LANGUAGE: %[7]s

NOW OUTPUT THE JSON:`

const repairPromptTemplate = `You must output ONLY valid JSON. No explanation, no markdown.

Topic: %s
Style: %s

Output the complete research JSON matching this schema:
%s

Start with { and end with }. Valid JSON only.`

// BuildPrompt renders the research prompt for req. It is a pure function of
// its input.
func BuildPrompt(req core.ResearchRequest) string {
	style, guide := styles.Resolve(req.Style)
	return fmt.Sprintf(researchPromptTemplate,
		req.DurationMinutes,
		guide,
		req.DurationMinutes*60,
		ResearchSchema,
		style,
		req.Topic,
		req.EffectiveLanguage(),
	)
}

// BuildRepairPrompt renders the simplified prompt used when the first
// response could not be parsed.
func BuildRepairPrompt(req core.ResearchRequest) string {
	style, _ := styles.Resolve(req.Style)
	return fmt.Sprintf(repairPromptTemplate, req.Topic, style, ResearchSchema)
}
