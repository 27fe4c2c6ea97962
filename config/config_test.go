package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_LoadsFileAndEnv(t *testing.T) {
	t.Setenv("GOOGLE_GEMINI_API_KEY", "gemini-test-key")
	t.Setenv("PLANNER_MAXDAYS", "10")

	cfg, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, BackendGemini, cfg.LLM.Backend)
	assert.Equal(t, "gemini-test-key", cfg.LLM.GeminiAPIKey)
	assert.InDelta(t, 0.1, cfg.LLM.Temperature, 0.0001)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLM.GroqModel)
	assert.Equal(t, 3, cfg.Providers.ForecastDays)
	assert.Equal(t, 5*time.Second, cfg.Providers.WeatherTimeout)
	assert.Equal(t, 10, cfg.Planner.MaxDays)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
		anyErr  bool
	}{
		{
			name:    "gemini without key",
			mutate:  func(c *Config) { c.LLM.Backend = BackendGemini },
			wantErr: ErrMissingAPIKey,
		},
		{
			name: "groq with key",
			mutate: func(c *Config) {
				c.LLM.Backend = BackendGroq
				c.LLM.GroqAPIKey = "gsk-test"
			},
		},
		{
			name: "groq ignores gemini key",
			mutate: func(c *Config) {
				c.LLM.Backend = BackendGroq
				c.LLM.GeminiAPIKey = "gemini-test"
			},
			wantErr: ErrMissingAPIKey,
		},
		{
			name: "agent uses gemini key",
			mutate: func(c *Config) {
				c.LLM.Backend = BackendAgent
				c.LLM.GeminiAPIKey = "gemini-test"
			},
		},
		{
			name:   "unknown backend",
			mutate: func(c *Config) { c.LLM.Backend = "openai" },
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.applyDefaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.LLM.Backend = "GROQ"
	cfg.applyDefaults()

	assert.Equal(t, BackendGroq, cfg.LLM.Backend)
	assert.Equal(t, 6, cfg.LLM.MaxAgentSteps)
	assert.Equal(t, 15, cfg.Planner.MaxDays)
	assert.Equal(t, 60*time.Second, cfg.Server.Timeout)
}
