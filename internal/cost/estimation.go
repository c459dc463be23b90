package cost

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// GeminiPricing holds per-token pricing for a Gemini model
type GeminiPricing struct {
	Model                 string
	InputCostPer1MTokens  float64 // USD per 1M input tokens
	OutputCostPer1MTokens float64 // USD per 1M output tokens
}

// PricingTable contains Gemini list prices. Aliases share the price of the
// model they point at.
var PricingTable = map[string]GeminiPricing{
	"gemini-flash-lite-latest": {
		Model:                 "gemini-flash-lite-latest",
		InputCostPer1MTokens:  0.10,
		OutputCostPer1MTokens: 0.40,
	},
	"gemini-2.5-flash-lite": {
		Model:                 "gemini-2.5-flash-lite",
		InputCostPer1MTokens:  0.10,
		OutputCostPer1MTokens: 0.40,
	},
	"gemini-flash-latest": {
		Model:                 "gemini-flash-latest",
		InputCostPer1MTokens:  0.30,
		OutputCostPer1MTokens: 2.50,
	},
	"gemini-2.5-flash": {
		Model:                 "gemini-2.5-flash",
		InputCostPer1MTokens:  0.30,
		OutputCostPer1MTokens: 2.50,
	},
	"gemini-2.5-pro": {
		Model:                 "gemini-2.5-pro",
		InputCostPer1MTokens:  1.25,
		OutputCostPer1MTokens: 10.00,
	},
	"gemini-2.0-flash": {
		Model:                 "gemini-2.0-flash",
		InputCostPer1MTokens:  0.10,
		OutputCostPer1MTokens: 0.40,
	},
}

// EstimateTokenCount provides a rough estimation of token count for text.
// Roughly one token per 3.5 characters, rounded up.
func EstimateTokenCount(text string) int {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\n", " ")

	charCount := utf8.RuneCountInString(text)
	return int(math.Ceil(float64(charCount) / 3.5))
}

// CallEstimate is the estimated usage of a single completion call
type CallEstimate struct {
	Model        string
	InputTokens  int
	OutputTokens int
	InputCost    float64
	OutputCost   float64
	TotalCost    float64
	Priced       bool // false when the model is missing from PricingTable
}

// EstimateCall estimates tokens and cost for one prompt/completion pair.
// Unknown models still get token counts with zero cost.
func EstimateCall(model, prompt, completion string) CallEstimate {
	estimate := CallEstimate{
		Model:        model,
		InputTokens:  EstimateTokenCount(prompt),
		OutputTokens: EstimateTokenCount(completion),
	}

	pricing, ok := PricingTable[model]
	if !ok {
		return estimate
	}

	estimate.Priced = true
	estimate.InputCost = float64(estimate.InputTokens) / 1_000_000 * pricing.InputCostPer1MTokens
	estimate.OutputCost = float64(estimate.OutputTokens) / 1_000_000 * pricing.OutputCostPer1MTokens
	estimate.TotalCost = estimate.InputCost + estimate.OutputCost
	return estimate
}

// String formats the estimate for logs and terminal output
func (e CallEstimate) String() string {
	if !e.Priced {
		return fmt.Sprintf("%s: ~%d in / ~%d out tokens (no pricing)", e.Model, e.InputTokens, e.OutputTokens)
	}
	return fmt.Sprintf("%s: ~%d in / ~%d out tokens, ~$%.6f", e.Model, e.InputTokens, e.OutputTokens, e.TotalCost)
}
