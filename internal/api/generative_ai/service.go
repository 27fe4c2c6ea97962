package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// ErrEmptyResponse is returned when the backend answered without any text.
var ErrEmptyResponse = errors.New("generation backend returned an empty response")

// Generator turns a prompt into raw model text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	// BaseURL overrides the Gemini endpoint, mostly for tests.
	BaseURL string
}

func (c GeminiConfig) clientConfig() *genai.ClientConfig {
	cc := &genai.ClientConfig{
		APIKey:  c.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.BaseURL}
	}
	return cc
}

func (c GeminiConfig) model() string {
	if c.Model == "" {
		return DefaultGeminiModel
	}
	return c.Model
}

type GeminiGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, cfg.clientConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &GeminiGenerator{
		client:      client,
		model:       cfg.model(),
		temperature: cfg.Temperature,
	}, nil
}

func (g *GeminiGenerator) Model() string {
	return g.model
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
