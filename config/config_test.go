package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_ADDR", "TELEGRAM_TOKEN", "DETECTOR", "FACEFINDER_CASCADE", "PUPLOC_CASCADE",
		"DLIB_MODEL_DIR", "COMPOSITOR", "MAX_UPLOAD_BYTES", "MAX_CONCURRENCY",
		"MIN_DETECTION_SCORE", "CORS_ORIGINS", "LOG_LEVEL", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8000", cfg.HTTPAddr)
	require.Equal(t, "pigo", cfg.Detector)
	require.Equal(t, "native", cfg.Compositor)
	require.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	require.Equal(t, int64(4), cfg.MaxConcurrency)
	require.Equal(t, 5.0, cfg.MinDetectionScore)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
	require.Empty(t, cfg.TelegramToken)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DETECTOR", "dlib")
	t.Setenv("COMPOSITOR", "gocv")
	t.Setenv("MAX_CONCURRENCY", "1")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "dlib", cfg.Detector)
	require.Equal(t, "gocv", cfg.Compositor)
	require.Equal(t, int64(1), cfg.MaxConcurrency)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("DETECTOR", "mediapipe")
	_, err := Load()
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("MAX_UPLOAD_BYTES", "lots")
	_, err = Load()
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("MAX_CONCURRENCY", "0")
	_, err = Load()
	require.Error(t, err)
}
