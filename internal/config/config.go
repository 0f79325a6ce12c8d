package config

import (
	"flag"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// DefaultModel используется для задач генерации без явно указанной модели.
const DefaultModel = "openrouter/opus-mixtral-8x22b"

type Config struct {
	// Server-side settings
	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`

	// Generation engine settings
	OpenRouterAPIKey  string `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string `env:"OPENROUTER_BASE_URL"`
	GenerationModel   string `env:"GENERATION_MODEL"`
	EngineWorkers     int    `env:"ENGINE_WORKERS"`
	EngineQueueSize   int    `env:"ENGINE_QUEUE_SIZE"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	// Engine flags
	flag.StringVar(&cfg.OpenRouterAPIKey, "openrouter-key", cfg.OpenRouterAPIKey, "API key for OpenRouter (empty: mock generator)")
	flag.StringVar(&cfg.OpenRouterBaseURL, "openrouter-url", cfg.OpenRouterBaseURL, "base URL of the OpenRouter-compatible API")
	flag.StringVar(&cfg.GenerationModel, "model", cfg.GenerationModel, "default LLM used for generation tasks")
	flag.IntVar(&cfg.EngineWorkers, "engine-workers", cfg.EngineWorkers, "number of generation engine workers")
	flag.IntVar(&cfg.EngineQueueSize, "engine-queue", cfg.EngineQueueSize, "generation engine queue capacity")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the cards server (may be host:port or full URL)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.OpenRouterBaseURL == "" {
		cfg.OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.GenerationModel == "" {
		cfg.GenerationModel = DefaultModel
	}
	if cfg.EngineWorkers <= 0 {
		cfg.EngineWorkers = 2
	}
	if cfg.EngineQueueSize <= 0 {
		cfg.EngineQueueSize = 64
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	return cfg
}
