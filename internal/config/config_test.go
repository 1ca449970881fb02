package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable NewConfig reads so tests see only what
// they set themselves; originals are restored on cleanup.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT", "LOG_LEVEL", "JWT_SECRET", "TOKEN_TTL", "DB_CONN",
		"TEXT_MODEL_URL", "SPEECH_MODEL_URL", "VISION_MODEL_URL",
		"INFERENCE_TIMEOUT", "WARMUP_SCHEDULE", "FFMPEG_PATH",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SENDER_EMAIL",
	}
	for _, key := range keys {
		if value, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, value) })
			os.Unsetenv(key)
		}
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewConfig()
	require.NoError(t, err)

	require.Equal(t, "8010", cfg.Port)
	require.Equal(t, "temporary_secret_key", cfg.JWTSecret)
	require.Equal(t, 30*time.Minute, cfg.TokenTTL)
	require.Equal(t, 30*time.Second, cfg.InferenceTimeout)
	require.Empty(t, cfg.DBConn)
	require.Equal(t, "ffmpeg", cfg.FFmpegPath)
	require.False(t, cfg.MailEnabled())
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "real-secret")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("INFERENCE_TIMEOUT", "5s")
	t.Setenv("TEXT_MODEL_URL", "http://models:9001")

	cfg, err := NewConfig()
	require.NoError(t, err)

	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, "real-secret", cfg.JWTSecret)
	require.Equal(t, 15*time.Minute, cfg.TokenTTL)
	require.Equal(t, 5*time.Second, cfg.InferenceTimeout)
	require.Equal(t, "http://models:9001", cfg.TextModelURL)
}

func TestNewConfig_InvalidDurations(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_TTL", "sometimes")

	_, err := NewConfig()
	require.Error(t, err)
}

func TestNewConfig_NonPositiveTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_TTL", "-5m")

	_, err := NewConfig()
	require.Error(t, err)
}

func TestMailEnabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USERNAME", "mailer")

	cfg, err := NewConfig()
	require.NoError(t, err)
	require.True(t, cfg.MailEnabled())
}
