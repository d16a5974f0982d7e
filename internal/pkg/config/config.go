package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8000"`
	AdminAddr  string `env:"ADMIN_ADDR" envDefault:":9091"`

	// Collaborator backend.
	LLMBackend      string        `env:"LLM_BACKEND" envDefault:"ollama"` // ollama or openai
	LLMModel        string        `env:"LLM_MODEL"`
	OllamaURL       string        `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string        `env:"OPENAI_BASE_URL"`
	GenerateTimeout time.Duration `env:"GENERATE_TIMEOUT" envDefault:"3m"`

	// Pipeline tuning.
	ClusterWindow  int `env:"CLUSTER_WINDOW" envDefault:"8"`
	ContextLines   int `env:"CONTEXT_LINES" envDefault:"5"`
	MaxSections    int `env:"MAX_SECTIONS" envDefault:"10"`
	MaxPromptChars int `env:"MAX_PROMPT_CHARS" envDefault:"12000"`

	// Collaborator services.
	GitHubWebhookSecret string `env:"GITHUB_WEBHOOK_SECRET,required"`
	GitHubToken         string `env:"GITHUB_TOKEN"`
	SlackBotToken       string `env:"SLACK_BOT_TOKEN,required"`
	SlackDefaultChannel string `env:"SLACK_DEFAULT_CHANNEL,required"`

	// Optional persistence. Usage tracking and delivery dedup are skipped
	// when the corresponding address is empty.
	PostgresURL      string        `env:"POSTGRES_URL"`
	RedisAddr        string        `env:"REDIS_ADDR"`
	DeliveryDedupTTL time.Duration `env:"DELIVERY_DEDUP_TTL" envDefault:"24h"`

	// HTTP limits.
	WebhookRPS   float64 `env:"WEBHOOK_RPS" envDefault:"5"`
	WebhookBurst int     `env:"WEBHOOK_BURST" envDefault:"10"`
	MaxBodySize  int64   `env:"MAX_BODY_SIZE_BYTES" envDefault:"10485760"` // 10MB
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
