package config

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Generation GenerationConfig
	Database   DatabaseConfig
	Load       LoadConfig
	Log        LogConfig
	Reports    ReportsConfig
}

// GenerationConfig controls the decade simulation run.
type GenerationConfig struct {
	Seed            int64
	BaselineYear    int    `validate:"gte=2000,lte=2100"`
	StartYear       int    `validate:"gte=2000,lte=2100"`
	EndYear         int    `validate:"gtefield=StartYear"`
	BaselineDir     string `validate:"required"`
	OutputDir       string `validate:"required"`
	ConsolidatedDir string `validate:"required"`
}

type DatabaseConfig struct {
	Driver       string `validate:"oneof=postgres sqlite"`
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	Path         string
	MaxOpenConns int
	MaxIdleConns int
}

// LoadConfig tunes the batched database upload.
type LoadConfig struct {
	BatchSize    int `validate:"gt=0"`
	MaxRetries   int `validate:"gte=0"`
	RetryBackoff time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// ReportsConfig controls where validation reports land.
type ReportsConfig struct {
	Dir string `validate:"required"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Generation = GenerationConfig{
		Seed:            v.GetInt64("GENERATION_SEED"),
		BaselineYear:    v.GetInt("BASELINE_YEAR"),
		StartYear:       v.GetInt("START_YEAR"),
		EndYear:         v.GetInt("END_YEAR"),
		BaselineDir:     v.GetString("BASELINE_DIR"),
		OutputDir:       v.GetString("OUTPUT_DIR"),
		ConsolidatedDir: v.GetString("CONSOLIDATED_DIR"),
	}

	cfg.Database = DatabaseConfig{
		Driver:       v.GetString("DB_DRIVER"),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		Path:         v.GetString("DB_PATH"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Load = LoadConfig{
		BatchSize:    v.GetInt("LOAD_BATCH_SIZE"),
		MaxRetries:   v.GetInt("LOAD_MAX_RETRIES"),
		RetryBackoff: parseDuration(v.GetString("LOAD_RETRY_BACKOFF"), 2*time.Second),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Reports = ReportsConfig{
		Dir: v.GetString("REPORTS_DIR"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("GENERATION_SEED", 42)
	v.SetDefault("BASELINE_YEAR", 2015)
	v.SetDefault("START_YEAR", 2016)
	v.SetDefault("END_YEAR", 2025)
	v.SetDefault("BASELINE_DIR", "./data/baseline")
	v.SetDefault("OUTPUT_DIR", "./data/decade")
	v.SetDefault("CONSOLIDATED_DIR", "./data/consolidated")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "luminosity")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_PATH", "./data/luminosity.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("LOAD_BATCH_SIZE", 500)
	v.SetDefault("LOAD_MAX_RETRIES", 3)
	v.SetDefault("LOAD_RETRY_BACKOFF", "2s")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("REPORTS_DIR", "./reports")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
