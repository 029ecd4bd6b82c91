package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
	CORS   CORSConfig   `mapstructure:"cors"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains all vendor API integration settings: credentials,
// endpoints, the polling cadence for uploaded-file processing, and the retry
// policy for transient upstream failures.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`

	// UploadBaseURL and APIBaseURL point at the vendor's resumable upload
	// and regular API roots. Overridable so tests can stand in a fake vendor.
	UploadBaseURL string `mapstructure:"upload_base_url" validate:"required,url"`
	APIBaseURL    string `mapstructure:"api_base_url"    validate:"required,url"`

	PollIntervalSeconds int `mapstructure:"poll_interval_seconds" validate:"required,gte=1"`
	PollMaxAttempts     int `mapstructure:"poll_max_attempts"     validate:"required,gte=1"`

	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"required,gte=1"`
	UploadTimeoutSeconds  int `mapstructure:"upload_timeout_seconds"  validate:"required,gte=1"`

	MaxRetries            int `mapstructure:"max_retries"              validate:"gte=0"`
	RetryBaseDelaySeconds int `mapstructure:"retry_base_delay_seconds" validate:"required,gte=1"`
}

// CORSConfig contains the cross-origin policy for browser clients.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"required,min=1"`
	AllowedMethods []string `mapstructure:"allowed_methods" validate:"required,min=1"`
	AllowedHeaders []string `mapstructure:"allowed_headers" validate:"required,min=1"`
}
