package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"podcaster/internal/cache"
	"podcaster/internal/core"
	"podcaster/internal/jsonrepair"
	"podcaster/internal/llm"
	"podcaster/internal/research"
	"podcaster/internal/script"
)

var (
	// ErrGenerationFailed is returned when every research attempt failed.
	ErrGenerationFailed = errors.New("research generation failed")
	// ErrMalformedResponse is returned when neither the research response
	// nor the repaired response parses as a JSON object.
	ErrMalformedResponse = errors.New("research response is not valid JSON")
)

// Options tunes the research loop and the script stage.
type Options struct {
	MaxAttempts int
	RetryDelay  time.Duration
	// ConversationalOnCacheHit renders cached briefs with the model instead
	// of the templated script.
	ConversationalOnCacheHit bool
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{
		MaxAttempts: 3,
		RetryDelay:  500 * time.Millisecond,
	}
}

// Pipeline turns a research request into a two-speaker script.
type Pipeline struct {
	llm     llm.Completer
	cache   *cache.Cache
	scripts *script.Conversational
	opts    Options
	log     *slog.Logger

	// wait blocks for d or until ctx is done.
	wait func(ctx context.Context, d time.Duration) error
}

// New wires a pipeline. A nil cache gets a default one-hour cache.
func New(completer llm.Completer, c *cache.Cache, opts Options, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	if c == nil {
		c = cache.New(cache.DefaultTTL, nil)
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.RetryDelay < 0 {
		opts.RetryDelay = 0
	}
	return &Pipeline{
		llm:     completer,
		cache:   c,
		scripts: script.NewConversational(completer, log),
		opts:    opts,
		log:     log,
		wait:    sleepContext,
	}
}

// Generate validates req, produces (or reuses) the research brief and renders
// the dialogue.
func (p *Pipeline) Generate(ctx context.Context, req core.ResearchRequest) ([]core.DialogueLine, error) {
	log := p.log.With("run_id", uuid.NewString(), "topic", req.Topic)
	start := time.Now()

	brief, cached, err := p.research(ctx, log, req)
	if err != nil {
		return nil, err
	}

	var lines []core.DialogueLine
	if cached && !p.opts.ConversationalOnCacheHit {
		lines = script.Templated(brief)
	} else {
		lines = p.scripts.Render(ctx, brief, req)
	}

	log.Info("Script generated",
		"cached", cached,
		"lines", len(lines),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return lines, nil
}

// Research returns the normalized brief for req and whether it came from
// the cache.
func (p *Pipeline) Research(ctx context.Context, req core.ResearchRequest) (core.ResearchOutput, bool, error) {
	return p.research(ctx, p.log.With("run_id", uuid.NewString(), "topic", req.Topic), req)
}

func (p *Pipeline) research(ctx context.Context, log *slog.Logger, req core.ResearchRequest) (core.ResearchOutput, bool, error) {
	if err := req.Validate(); err != nil {
		return core.ResearchOutput{}, false, err
	}

	key := cache.Key(req)
	if brief, ok := p.cache.Get(key); ok {
		log.Debug("Research cache hit")
		return brief, true, nil
	}

	text, err := p.completeWithRetry(ctx, log, research.BuildPrompt(req))
	if err != nil {
		return core.ResearchOutput{}, false, err
	}

	raw, err := p.parseBrief(ctx, log, req, text)
	if err != nil {
		return core.ResearchOutput{}, false, err
	}

	brief := research.Normalize(raw, req)
	p.cache.Set(key, brief)
	log.Info("Research brief ready",
		"segments", len(brief.EpisodeOutline.Segments),
		"key_facts", len(brief.KeyFacts),
	)
	return brief, false, nil
}

func (p *Pipeline) completeWithRetry(ctx context.Context, log *slog.Logger, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= p.opts.MaxAttempts; attempt++ {
		text, err := p.llm.Complete(ctx, prompt)
		if err == nil {
			return text, nil
		}
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return "", err
		}
		lastErr = err
		log.Warn("Research attempt failed",
			"attempt", attempt,
			"max_attempts", p.opts.MaxAttempts,
			"error", err.Error(),
		)

		if attempt == p.opts.MaxAttempts {
			break
		}
		if err := p.wait(ctx, p.opts.RetryDelay*time.Duration(attempt)); err != nil {
			return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
		}
	}
	return "", fmt.Errorf("%w after %d attempts: %w", ErrGenerationFailed, p.opts.MaxAttempts, lastErr)
}

// parseBrief extracts the research object from text, spending one repair
// round trip if the first response does not parse as an object.
func (p *Pipeline) parseBrief(ctx context.Context, log *slog.Logger, req core.ResearchRequest, text string) (jsonrepair.Raw, error) {
	if raw, ok := parseObject(text); ok {
		return raw, nil
	}

	log.Warn("Research response did not parse, requesting repair", "response_chars", len(text))
	repaired, err := p.llm.Complete(ctx, research.BuildRepairPrompt(req))
	if err != nil {
		return jsonrepair.Raw{}, fmt.Errorf("%w: repair request: %w", ErrMalformedResponse, err)
	}
	if raw, ok := parseObject(repaired); ok {
		return raw, nil
	}
	return jsonrepair.Raw{}, ErrMalformedResponse
}

func parseObject(text string) (jsonrepair.Raw, bool) {
	candidate, ok := jsonrepair.ExtractObject(text)
	if !ok {
		candidate = text
	}
	raw, ok := jsonrepair.SafeParse(candidate)
	if !ok || raw.Kind() != jsonrepair.KindObject {
		return jsonrepair.Raw{}, false
	}
	return raw, true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
