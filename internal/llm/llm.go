package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"google.golang.org/genai"
)

const (
	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-flash-lite-latest"
	// DefaultMaxTokens is the completion token budget per call.
	DefaultMaxTokens = int32(2000)
)

var (
	// ErrMissingAPIKey is returned when no API credential could be resolved.
	// It is a configuration error and is never worth retrying.
	ErrMissingAPIKey = errors.New("gemini API key is required: set GEMINI_API_KEY or ai.gemini.api_key")
	// ErrEmptyResponse is returned when the provider answers without usable text.
	ErrEmptyResponse = errors.New("empty response from model")
)

// apiKeyEnvVars are checked in order when no key is passed explicitly.
var apiKeyEnvVars = []string{"GEMINI_API_KEY", "GOOGLE_GEMINI_API_KEY", "GOOGLE_AI_API_KEY"}

// Completer sends a prompt to a text-completion model and returns the raw text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Options configures a Client.
type Options struct {
	APIKey      string  // Falls back to the environment when empty
	Model       string  // Defaults to DefaultModel
	MaxTokens   int32   // Defaults to DefaultMaxTokens
	Temperature float32 // 0 leaves the provider default
}

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Client is a Completer backed by the Gemini API. Each Complete call is
// exactly one round trip; retries belong to the caller.
type Client struct {
	apiKey      string
	modelName   string
	maxTokens   int32
	temperature float32

	mu       sync.Mutex
	generate generateFunc
}

// NewClient creates a client. A missing API key is not an error here; it is
// reported by Complete so a server can start without one.
func NewClient(opts Options) *Client {
	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = apiKeyFromEnv()
	}
	modelName := opts.Model
	if modelName == "" {
		modelName = DefaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	return &Client{
		apiKey:      apiKey,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: opts.Temperature,
	}
}

func apiKeyFromEnv() string {
	for _, name := range apiKeyEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ModelName returns the model identifier used for completions.
func (c *Client) ModelName() string {
	return c.modelName
}

// Complete sends prompt as a single user turn and returns the response text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	generate, err := c.generator(ctx)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	config := &genai.GenerateContentConfig{MaxOutputTokens: c.maxTokens}
	if c.temperature > 0 {
		temp := c.temperature
		config.Temperature = &temp
	}

	resp, err := generate(ctx, c.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}

// generator lazily creates the underlying genai client.
func (c *Client) generator(ctx context.Context) (generateFunc, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generate != nil {
		return c.generate, nil
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c.generate = gClient.Models.GenerateContent
	return c.generate, nil
}
