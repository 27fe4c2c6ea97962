package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

// ErrMissingAPIKey is returned by Validate when the selected generation backend has no credential.
var ErrMissingAPIKey = errors.New("generation backend API key is not configured")

const (
	BackendGemini = "gemini"
	BackendGroq   = "groq"
	BackendAgent  = "agent"
)

type Config struct {
	Mode     string `mapstructure:"mode"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	LLM struct {
		Backend         string  `mapstructure:"backend"`
		Model           string  `mapstructure:"model"`
		Temperature     float32 `mapstructure:"temperature"`
		MaxAgentSteps   int     `mapstructure:"maxAgentSteps"`
		AllowMissingKey bool    `mapstructure:"allowMissingKey"`
		GeminiAPIKey    string  `mapstructure:"geminiAPIKey"`
		GroqAPIKey      string  `mapstructure:"groqAPIKey"`
		GroqBaseURL     string  `mapstructure:"groqBaseURL"`
		GroqModel       string  `mapstructure:"groqModel"`
	} `mapstructure:"llm"`
	Providers struct {
		WeatherBaseURL string        `mapstructure:"weatherBaseURL"`
		WeatherTimeout time.Duration `mapstructure:"weatherTimeout"`
		ForecastDays   int           `mapstructure:"forecastDays"`
		RandomSeed     int64         `mapstructure:"randomSeed"`
		MapsAPIKey     string        `mapstructure:"mapsAPIKey"`
	} `mapstructure:"providers"`
	Planner struct {
		MaxDays int `mapstructure:"maxDays"`
	} `mapstructure:"planner"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
	RateLimit struct {
		RequestsPerMinute int `mapstructure:"requestsPerMinute"`
		Burst             int `mapstructure:"burst"`
	} `mapstructure:"rateLimit"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")
	v.AddConfigPath("/usr/local/bin")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// secrets only come from the environment
	_ = v.BindEnv("llm.geminiAPIKey", "GOOGLE_GEMINI_API_KEY")
	_ = v.BindEnv("llm.groqAPIKey", "GROQ_API_KEY")
	_ = v.BindEnv("providers.mapsAPIKey", "GOOGLE_MAPS_API_KEY")
	_ = v.BindEnv("server.HTTPPort", "PORT")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.applyDefaults()
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.LLM.Backend == "" {
		c.LLM.Backend = BackendGemini
	}
	c.LLM.Backend = strings.ToLower(c.LLM.Backend)
	if c.LLM.MaxAgentSteps <= 0 {
		c.LLM.MaxAgentSteps = 6
	}
	if c.Providers.ForecastDays <= 0 {
		c.Providers.ForecastDays = 3
	}
	if c.Providers.WeatherTimeout <= 0 {
		c.Providers.WeatherTimeout = 5 * time.Second
	}
	if c.Planner.MaxDays <= 0 {
		c.Planner.MaxDays = 15
	}
	if c.Server.Timeout <= 0 {
		c.Server.Timeout = 60 * time.Second
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
}

// APIKey returns the credential of the configured backend.
func (c Config) APIKey() string {
	if c.LLM.Backend == BackendGroq {
		return c.LLM.GroqAPIKey
	}
	return c.LLM.GeminiAPIKey
}

// Validate checks the settings the server cannot run without.
func (c Config) Validate() error {
	switch c.LLM.Backend {
	case BackendGemini, BackendGroq, BackendAgent:
	default:
		return fmt.Errorf("unknown llm backend %q", c.LLM.Backend)
	}
	if strings.TrimSpace(c.APIKey()) == "" {
		return fmt.Errorf("%w: backend %s", ErrMissingAPIKey, c.LLM.Backend)
	}
	return nil
}
