package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Log     LogConfig
	DB      DBConfig
	Seed    SeedConfig
	CORS    CORSConfig
	Booking BookingConfig
}

type AppConfig struct {
	Port            string
	Env             string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level string
}

type DBConfig struct {
	DSN      string // SQLite data source, in-memory by default
	LogLevel string // gorm log level: silent, error, warn, info
}

type SeedConfig struct {
	File string // empty uses the embedded seed
}

type CORSConfig struct {
	AllowedOrigins []string
}

type BookingConfig struct {
	LockIdleTimeout time.Duration
}

// LoadConfig reads an optional .env file in the working directory, then the environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

func LoadConfigFrom(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DSN", ":memory:")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOCK_IDLE_TIMEOUT", "10m")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	lockIdleTimeout, err := time.ParseDuration(v.GetString("LOCK_IDLE_TIMEOUT"))
	if err != nil {
		lockIdleTimeout = 10 * time.Minute
	}

	shutdownTimeout, err := time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil {
		shutdownTimeout = 10 * time.Second
	}

	port := strings.TrimSpace(v.GetString("PORT"))
	if port == "" {
		port = "3000"
	}

	config := &Config{
		App: AppConfig{
			Port:            port,
			Env:             v.GetString("APP_ENV"),
			ShutdownTimeout: shutdownTimeout,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			DSN:      v.GetString("DB_DSN"),
			LogLevel: v.GetString("DB_LOG_LEVEL"),
		},
		Seed: SeedConfig{
			File: v.GetString("SEED_FILE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Booking: BookingConfig{
			LockIdleTimeout: lockIdleTimeout,
		},
	}

	return config, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
