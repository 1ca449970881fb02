package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds application configuration
type Config struct {
	Port             string
	LogLevel         string
	JWTSecret        string
	TokenTTL         time.Duration
	DBConn           string
	TextModelURL     string
	SpeechModelURL   string
	VisionModelURL   string
	InferenceTimeout time.Duration
	WarmupSchedule   string
	FFmpegPath       string
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	SenderEmail      string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	inferenceTimeout, err := time.ParseDuration(getEnv("INFERENCE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid INFERENCE_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8010"),
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:        getEnv("JWT_SECRET", "temporary_secret_key"),
		TokenTTL:         tokenTTL,
		DBConn:           getEnv("DB_CONN", ""),
		TextModelURL:     getEnv("TEXT_MODEL_URL", "http://localhost:8001"),
		SpeechModelURL:   getEnv("SPEECH_MODEL_URL", "http://localhost:8002"),
		VisionModelURL:   getEnv("VISION_MODEL_URL", "http://localhost:8003"),
		InferenceTimeout: inferenceTimeout,
		WarmupSchedule:   getEnv("WARMUP_SCHEDULE", "@every 5m"),
		FFmpegPath:       getEnv("FFMPEG_PATH", "ffmpeg"),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		SenderEmail:      getEnv("SENDER_EMAIL", "noreply@moodlens.local"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}
	if cfg.InferenceTimeout <= 0 {
		return nil, fmt.Errorf("INFERENCE_TIMEOUT must be positive")
	}

	return cfg, nil
}

// MailEnabled reports whether SMTP is configured for the welcome email.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUsername != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
