package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server      ServerConfig
	Sheets      SheetsConfig
	GigFeed     GigFeedConfig
	Cache       CacheConfig
	Logging     LoggingConfig
	Tracing     TracingConfig
	RosterPath  string
	Environment string
}

type ServerConfig struct {
	Host string
	Port int
}

type SheetsConfig struct {
	// CredentialsFile points at the Google service account key (JSON).
	CredentialsFile string
	InquirySheetID  string
	InquiryRange    string
	PaceSheetID     string
	PaceRange       string
}

type GigFeedConfig struct {
	// BaseURL of the FileMaker gig database; empty disables the
	// upcoming-events strip.
	BaseURL       string
	LookaheadDays int
}

type CacheConfig struct {
	TTL time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

type TracingConfig struct {
	Enabled      bool
	Exporter     string
	ServiceName  string
	OTLPEndpoint string
	SampleRate   float64
}

func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Sheets: SheetsConfig{
			CredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", ""),
			InquirySheetID:  getEnv("SHEETS_INQUIRY_ID", ""),
			InquiryRange:    getEnv("SHEETS_INQUIRY_RANGE", "Master View"),
			PaceSheetID:     getEnv("SHEETS_PACE_ID", ""),
			PaceRange:       getEnv("SHEETS_PACE_RANGE", "Year Comparison"),
		},
		GigFeed: GigFeedConfig{
			BaseURL:       getEnv("GIGFEED_BASE_URL", ""),
			LookaheadDays: getEnvInt("GIGFEED_LOOKAHEAD_DAYS", 14),
		},
		Cache: CacheConfig{
			TTL: time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvBool("TRACING_ENABLED", false),
			Exporter:     getEnv("TRACING_EXPORTER", "stdout"),
			ServiceName:  getEnv("TRACING_SERVICE_NAME", "opsboard"),
			OTLPEndpoint: getEnv("TRACING_OTLP_ENDPOINT", "localhost:4317"),
			SampleRate:   getEnvFloat("TRACING_SAMPLE_RATE", 1.0),
		},
		RosterPath:  getEnv("ROSTER_FILE", ""),
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if cfg.Sheets.InquirySheetID == "" {
		return Config{}, fmt.Errorf("SHEETS_INQUIRY_ID is required")
	}
	if cfg.Sheets.PaceSheetID == "" {
		return Config{}, fmt.Errorf("SHEETS_PACE_ID is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
