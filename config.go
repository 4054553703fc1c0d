package main

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBUrl          string
	GoogleApiKey   string
	LLMBackend     string
	LLMModel       string
	LLMTimeout     time.Duration
	MaxUploadBytes int64

	RabbitMQUrl string
	WorkerCount int
	R2          *R2Config
}

// LoadConfig reads the environment, loading a .env file first when one exists.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:           getEnv("PORT", "5000"),
		DBUrl:          os.Getenv("DB_URL"),
		GoogleApiKey:   os.Getenv("GOOGLE_API_KEY"),
		LLMBackend:     strings.ToLower(getEnv("LLM_BACKEND", "agent")),
		LLMModel:       getEnv("LLM_MODEL", "gemini-2.5-flash"),
		LLMTimeout:     getEnvDuration("LLM_TIMEOUT", 60*time.Second),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_MB", 5)) << 20,
		RabbitMQUrl:    os.Getenv("RABBITMQ_URL"),
		WorkerCount:    getEnvInt("WORKER_COUNT", 3),
	}

	if cfg.DBUrl == "" {
		return cfg, errors.New("empty DB_URL in environment")
	}
	if cfg.GoogleApiKey == "" {
		return cfg, errors.New("empty GOOGLE_API_KEY in environment")
	}
	if cfg.LLMBackend != "agent" && cfg.LLMBackend != "gemini" {
		return cfg, errors.New("LLM_BACKEND must be agent or gemini")
	}

	// the queue worker downloads uploads from R2, so it needs both
	if cfg.RabbitMQUrl != "" {
		r2 := R2Config{
			AccountID: os.Getenv("R2_ACCOUNT_ID"),
			Bucket:    os.Getenv("R2_BUCKET"),
			AccessKey: os.Getenv("R2_ACCESS_KEY"),
			SecretKey: os.Getenv("R2_SECRET_KEY"),
		}
		if r2.AccountID == "" || r2.Bucket == "" || r2.AccessKey == "" || r2.SecretKey == "" {
			return cfg, errors.New("RABBITMQ_URL is set but R2_ACCOUNT_ID, R2_BUCKET, R2_ACCESS_KEY or R2_SECRET_KEY is empty")
		}
		cfg.R2 = &r2
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
