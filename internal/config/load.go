package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and an optional config.yaml
// in the working directory. Environment variables take precedence over values
// from the config file. Returns a populated Config struct or an error if
// loading/validation fails.
//
// All settings except the vendor API key have working defaults, so the
// minimal viable environment is a single exported GEMINI_API_KEY.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("llm.model_name", "gemini-2.5-flash")
	v.SetDefault("llm.upload_base_url", "https://generativelanguage.googleapis.com/upload/v1beta")
	v.SetDefault("llm.api_base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("llm.poll_interval_seconds", 5)
	v.SetDefault("llm.poll_max_attempts", 60)
	v.SetDefault("llm.request_timeout_seconds", 30)
	v.SetDefault("llm.upload_timeout_seconds", 300)
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_base_delay_seconds", 1)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("cors.allowed_methods", []string{"POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "Authorization"})

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults plus environment cover everything.
	}

	v.SetEnvPrefix("VIDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The vendor key is conventionally exported without the service prefix,
	// so bind both spellings; the bare one wins.
	if err := v.BindEnv("llm.gemini_api_key", "GEMINI_API_KEY", "VIDOC_LLM_GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind API key environment variable: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
