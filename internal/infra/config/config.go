package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is built once at startup and passed by reference into every
// component that needs it. It is never mutated afterwards; in particular the
// JWT secret and algorithm are fixed for the lifetime of the process.
type Config struct {
	DatabaseURL string

	JWTSecret      string
	AccessTokenTTL time.Duration

	HTTPAddress string

	ModelURL            string
	ModelTimeout        time.Duration
	ConfidenceThreshold float64

	AllowedOrigins   []string
	AllowCredentials bool
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	for _, key := range []string{
		"DATABASE_URL", "JWT_SECRET", "ACCESS_TOKEN_TTL",
		"HTTP_ADDRESS", "MODEL_URL", "MODEL_TIMEOUT",
		"CONFIDENCE_THRESHOLD", "ALLOWED_ORIGINS", "ALLOW_CREDENTIALS",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.SetDefault("ACCESS_TOKEN_TTL", "30m")
	v.SetDefault("HTTP_ADDRESS", ":8000")
	v.SetDefault("MODEL_TIMEOUT", "10s")
	v.SetDefault("CONFIDENCE_THRESHOLD", 0.75)
	v.SetDefault("ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("ALLOW_CREDENTIALS", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:         v.GetString("DATABASE_URL"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		AccessTokenTTL:      v.GetDuration("ACCESS_TOKEN_TTL"),
		HTTPAddress:         v.GetString("HTTP_ADDRESS"),
		ModelURL:            v.GetString("MODEL_URL"),
		ModelTimeout:        v.GetDuration("MODEL_TIMEOUT"),
		ConfidenceThreshold: v.GetFloat64("CONFIDENCE_THRESHOLD"),
		AllowedOrigins:      v.GetStringSlice("ALLOWED_ORIGINS"),
		AllowCredentials:    v.GetBool("ALLOW_CREDENTIALS"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		return nil, fmt.Errorf("CONFIDENCE_THRESHOLD must be within [0, 1]")
	}

	return cfg, nil
}
