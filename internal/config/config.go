package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL"`

	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"models/gemini-2.0-flash"`

	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	LLMProvider  string `envconfig:"LLM_PROVIDER" default:"gemini"`

	TMDBAPIKey string `envconfig:"TMDB_API_KEY"`

	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`

	SheetsCredentialsPath string `envconfig:"SHEETS_CREDENTIALS_PATH"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"loom-snapshots"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	MemoryPath   string `envconfig:"MEMORY_PATH" default:"loom-memory"`
	ProfilesPath string `envconfig:"PROFILES_PATH" default:"config/profiles.yaml"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("LOOM", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasGemini() bool {
	return c.GeminiAPIKey != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

func (c *Config) HasTMDB() bool {
	return c.TMDBAPIKey != ""
}

func (c *Config) HasTelegram() bool {
	return c.TelegramBotToken != ""
}

func (c *Config) HasSheets() bool {
	return c.SheetsCredentialsPath != ""
}

func (c *Config) HasRedis() bool {
	return c.RedisAddr != ""
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}
