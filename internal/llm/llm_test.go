package llm

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, name := range apiKeyEnvVars {
		t.Setenv(name, "")
	}
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}, Role: "model"},
		}},
	}
}

func TestNewClient_Defaults(t *testing.T) {
	clearKeyEnv(t)
	client := NewClient(Options{})

	if client.modelName != DefaultModel {
		t.Errorf("Expected model %q, got %q", DefaultModel, client.modelName)
	}
	if client.maxTokens != DefaultMaxTokens {
		t.Errorf("Expected max tokens %d, got %d", DefaultMaxTokens, client.maxTokens)
	}
}

func TestNewClient_KeyFromEnvironment(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GOOGLE_AI_API_KEY", "from-env")

	client := NewClient(Options{})
	if client.apiKey != "from-env" {
		t.Errorf("Expected key from environment, got %q", client.apiKey)
	}

	explicit := NewClient(Options{APIKey: "explicit"})
	if explicit.apiKey != "explicit" {
		t.Errorf("Expected explicit key to win, got %q", explicit.apiKey)
	}
}

func TestComplete_MissingAPIKey(t *testing.T) {
	clearKeyEnv(t)
	client := NewClient(Options{})

	_, err := client.Complete(context.Background(), "hello")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("Expected ErrMissingAPIKey, got %v", err)
	}
}

func TestComplete_EmptyPrompt(t *testing.T) {
	client := NewClient(Options{APIKey: "k"})
	if _, err := client.Complete(context.Background(), ""); err == nil {
		t.Error("Expected error for empty prompt")
	}
}

func TestComplete_SendsSingleRequest(t *testing.T) {
	client := NewClient(Options{APIKey: "k", Model: "test-model"})

	calls := 0
	client.generate = func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		calls++
		if model != "test-model" {
			t.Errorf("Expected model test-model, got %q", model)
		}
		if config.MaxOutputTokens != DefaultMaxTokens {
			t.Errorf("Expected token budget %d, got %d", DefaultMaxTokens, config.MaxOutputTokens)
		}
		if len(contents) != 1 || contents[0].Role != "user" || contents[0].Parts[0].Text != "hello" {
			t.Errorf("Unexpected contents: %+v", contents)
		}
		return textResponse("world"), nil
	}

	got, err := client.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "world" {
		t.Errorf("Expected \"world\", got %q", got)
	}
	if calls != 1 {
		t.Errorf("Expected exactly 1 provider call, got %d", calls)
	}
}

func TestComplete_ProviderErrors(t *testing.T) {
	client := NewClient(Options{APIKey: "k"})
	providerErr := errors.New("503 unavailable")

	client.generate = func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return nil, providerErr
	}
	if _, err := client.Complete(context.Background(), "p"); !errors.Is(err, providerErr) {
		t.Errorf("Expected provider error to be wrapped, got %v", err)
	}

	client.generate = func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return &genai.GenerateContentResponse{}, nil
	}
	if _, err := client.Complete(context.Background(), "p"); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse, got %v", err)
	}
}

func TestComplete_Integration(t *testing.T) {
	if os.Getenv("GEMINI_API_KEY") == "" {
		t.Skip("GEMINI_API_KEY not set, skipping integration test")
	}

	client := NewClient(Options{})
	got, err := client.Complete(context.Background(), "Reply with the single word: pong")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got == "" {
		t.Error("Expected non-empty completion")
	}
}

type stubCompleter struct {
	text string
	err  error
}

func (s stubCompleter) Complete(context.Context, string) (string, error) {
	return s.text, s.err
}

func TestLoggingCompleter(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	lc := NewLoggingCompleter(stubCompleter{text: "answer"}, "gemini-2.5-flash", log)
	got, err := lc.Complete(context.Background(), "question")
	if err != nil || got != "answer" {
		t.Fatalf("Expected passthrough, got %q, %v", got, err)
	}
	for _, want := range []string{`"estimated_input_tokens":3`, `"estimated_output_tokens":2`, `"estimated_cost_usd":`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Expected %s in log, got %s", want, buf.String())
		}
	}

	buf.Reset()
	failing := NewLoggingCompleter(stubCompleter{err: ErrEmptyResponse}, "m", log)
	if _, err := failing.Complete(context.Background(), "q"); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Expected error passthrough, got %v", err)
	}
	if !strings.Contains(buf.String(), "LLM completion failed") {
		t.Errorf("Expected failure to be logged, got %s", buf.String())
	}
	if strings.Contains(buf.String(), "estimated_cost_usd") {
		t.Errorf("Unpriced model should not log a cost, got %s", buf.String())
	}
}
