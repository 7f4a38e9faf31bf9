package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr      string `validate:"required"`
	TelegramToken string

	Detector          string `validate:"oneof=pigo dlib"`
	FacefinderCascade string `validate:"required_if=Detector pigo"`
	PuplocCascade     string
	MinDetectionScore float64 `validate:"gte=0"`
	DlibModelDir      string  `validate:"required_if=Detector dlib"`

	Compositor     string `validate:"oneof=native gocv"`
	MaxUploadBytes int64  `validate:"gt=0"`
	MaxConcurrency int64  `validate:"gt=0"`

	CORSOrigins []string `validate:"min=1"`
	LogLevel    string
	LogFile     string
}

func Load() (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8000"),
		TelegramToken:     os.Getenv("TELEGRAM_TOKEN"),
		Detector:          getEnv("DETECTOR", "pigo"),
		FacefinderCascade: getEnv("FACEFINDER_CASCADE", "cascade/facefinder"),
		PuplocCascade:     os.Getenv("PUPLOC_CASCADE"),
		DlibModelDir:      getEnv("DLIB_MODEL_DIR", "models"),
		Compositor:        getEnv("COMPOSITOR", "native"),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           os.Getenv("LOG_FILE"),
	}

	var err error
	if cfg.MaxUploadBytes, err = getInt("MAX_UPLOAD_BYTES", 10<<20); err != nil {
		return nil, err
	}
	if cfg.MaxConcurrency, err = getInt("MAX_CONCURRENCY", 4); err != nil {
		return nil, err
	}
	if cfg.MinDetectionScore, err = getFloat("MIN_DETECTION_SCORE", 5.0); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int64) (int64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
