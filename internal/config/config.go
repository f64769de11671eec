package config

import (
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"lesson-server/internal/logger"
)

// Config holds the whole application configuration.
type Config struct {
	AppEnv string `env:"APP_ENV" env-default:"development"`
	Port   string `env:"PORT" env-default:"3001"`
	Logger logger.Config

	AI         AIConfig
	Rasterizer RasterizerConfig

	AssetsDir  string `env:"ASSETS_DIR" env-default:"assets"`
	OutputDir  string `env:"OUTPUT_DIR" env-default:"output"`
	PromptsDir string `env:"PROMPTS_DIR" env-default:"prompts"`
	ThemesFile string `env:"THEMES_FILE" env-default:"themes.yaml"`

	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:""`
}

// GetAllowedOrigins splits the comma-separated CORS origin list.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// AIConfig configures the OpenAI-compatible content generator.
type AIConfig struct {
	APIKey         string        `env:"OPENAI_API_KEY" env-required:"true"`
	BaseURL        string        `env:"OPENAI_BASE_URL" env-default:""`
	Model          string        `env:"OPENAI_MODEL" env-default:"gpt-4o"`
	Timeout        time.Duration `env:"AI_TIMEOUT" env-default:"120s"`
	MaxAttempts    int           `env:"AI_MAX_ATTEMPTS" env-default:"3"`
	BaseRetryDelay time.Duration `env:"AI_BASE_RETRY_DELAY" env-default:"2s"`
}

// RasterizerConfig configures the headless-browser screenshot pool.
type RasterizerConfig struct {
	Concurrency int64         `env:"RASTER_CONCURRENCY" env-default:"2"`
	Timeout     time.Duration `env:"RASTER_TIMEOUT" env-default:"60s"`
	ChromePath  string        `env:"CHROME_PATH" env-default:""`
}

// Load reads configuration from environment variables and an optional
// .env file. Missing required values are fatal.
func Load() *Config {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	return &cfg
}
