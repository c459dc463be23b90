package llm

import (
	"context"
	"log/slog"
	"time"

	"podcaster/internal/cost"
)

// LoggingCompleter wraps a Completer and logs every call with its latency and
// estimated token usage and cost.
type LoggingCompleter struct {
	next  Completer
	model string
	log   *slog.Logger
}

// NewLoggingCompleter decorates next. model selects the pricing used for the
// cost estimate.
func NewLoggingCompleter(next Completer, model string, log *slog.Logger) *LoggingCompleter {
	if log == nil {
		log = slog.Default()
	}
	return &LoggingCompleter{next: next, model: model, log: log}
}

// Complete forwards to the wrapped Completer.
func (lc *LoggingCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	result, err := lc.next.Complete(ctx, prompt)
	latency := time.Since(start)

	estimate := cost.EstimateCall(lc.model, prompt, result)
	attrs := []any{
		"model", lc.model,
		"latency_ms", latency.Milliseconds(),
		"prompt_chars", len(prompt),
		"completion_chars", len(result),
		"estimated_input_tokens", estimate.InputTokens,
		"estimated_output_tokens", estimate.OutputTokens,
	}
	if estimate.Priced {
		attrs = append(attrs, "estimated_cost_usd", estimate.TotalCost)
	}
	if err != nil {
		lc.log.Warn("LLM completion failed", append(attrs, "error", err.Error())...)
		return "", err
	}

	lc.log.Debug("LLM completion", attrs...)
	return result, nil
}
