package generativeAI

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultGroqModel   = "llama-3.1-8b-instant"
)

type GroqConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
	// MaxRetries is passed to the client; zero disables retries.
	MaxRetries int
}

// GroqGenerator talks to Groq through its OpenAI-compatible chat completions API.
type GroqGenerator struct {
	client      openai.Client
	model       string
	temperature float32
}

func NewGroqGenerator(cfg GroqConfig) *GroqGenerator {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultGroqBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGroqModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GroqGenerator{
		client: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(base+"/"),
			option.WithHTTPClient(&http.Client{Timeout: timeout}),
			option.WithMaxRetries(cfg.MaxRetries),
		),
		model:       model,
		temperature: cfg.Temperature,
	}
}

func (g *GroqGenerator) Model() string {
	return g.model
}

func (g *GroqGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(float64(g.temperature)),
	})
	if err != nil {
		return "", fmt.Errorf("groq: chat completion: %w", err)
	}
	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return completion.Choices[0].Message.Content, nil
}
