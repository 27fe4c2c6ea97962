//go:build integration

package generativeAI

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiGenerator_Integration(t *testing.T) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GOOGLE_GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	g, err := NewGeminiGenerator(ctx, GeminiConfig{APIKey: apiKey, Temperature: 0.1})
	require.NoError(t, err)

	response, err := g.Generate(ctx, `Reply with only this JSON and nothing else: {"city":"Goa"}`)
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(response), "goa")
}

func TestGroqGenerator_Integration(t *testing.T) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GROQ_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	response, err := NewGroqGenerator(GroqConfig{APIKey: apiKey, Temperature: 0.1}).
		Generate(ctx, "What is the capital of Portugal? Answer in one word.")
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(response), "lisbon")
}
