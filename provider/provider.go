package provider

import (
	"context"
	"errors"
	"os"
	"time"

	openai_provider "github.com/nmh2003/shopchat/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI    Client = "openai"
	Anthropic Client = "anthropic"
	Gemini    Client = "gemini"
)

// Provider is the interface that all LLM implementations must satisfy
type Provider interface {
	Completion(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Options configures a provider instance.
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// NewProvider creates a new LLM client based on the provided configuration
func NewProvider(client Client, opts Options) (Provider, error) {
	switch client {
	case OpenAI:
		apiKey := opts.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, errors.New("openai api key not configured (llm.api_key or OPENAI_API_KEY)")
		}
		model := opts.Model
		if model == "" {
			model = "gpt-4o-mini"
		}
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		return openai_provider.NewClient(apiKey, opts.BaseURL, model, opts.Temperature, opts.MaxTokens, timeout), nil
	case Anthropic:
		return nil, errors.New("anthropic client not implemented yet")
	case Gemini:
		return nil, errors.New("gemini client not implemented yet")
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
