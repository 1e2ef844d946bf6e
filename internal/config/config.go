// Package config provides application configuration management.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (./config.yaml, optional)
//  3. Default values
//
// Main configuration categories:
//   - Server: host, port, debug mode, CORS origins
//   - Documents: data directory, chunk size, chunk overlap
//   - Models: Hugging Face token and model identifiers, request timeout
//   - Chat: response token limit, history bound, retrieval top-K
//   - Logging: level and optional log file
//
// Error Handling:
//   - Sentinel errors for Go-idiomatic checking with errors.Is()
//   - Wrapped with context using fmt.Errorf("%w: details", ErrXxx)
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidPort indicates the port is outside the valid range.
	ErrInvalidPort = errors.New("invalid port")

	// ErrInvalidChunkSize indicates the chunk size is not positive.
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrInvalidChunkOverlap indicates the chunk overlap is negative or
	// not smaller than the chunk size.
	ErrInvalidChunkOverlap = errors.New("invalid chunk overlap")

	// ErrInvalidMaxTokens indicates the max tokens value is not positive.
	ErrInvalidMaxTokens = errors.New("invalid max tokens")

	// ErrInvalidTopK indicates the retrieval top-K is not positive.
	ErrInvalidTopK = errors.New("invalid top k")

	// ErrMissingDataDirectory indicates the data directory is empty.
	ErrMissingDataDirectory = errors.New("missing data directory")
)

// Defaults mirror the service's documented environment contract.
const (
	DefaultHost               = "localhost"
	DefaultPort               = 8001
	DefaultDataDirectory      = "data"
	DefaultChunkSize          = 500
	DefaultChunkOverlap       = 20
	DefaultMaxTokens          = 150
	DefaultMaxHistoryMessages = 10
	DefaultTopK               = 3
	DefaultRequestTimeout     = 60 * time.Second
	DefaultHFBaseURL          = "https://api-inference.huggingface.co"
)

// Config stores application configuration.
// The HuggingFace token is sensitive and must never be logged.
type Config struct {
	// Server configuration
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Debug          bool     `mapstructure:"debug"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// Document configuration
	DataDirectory string `mapstructure:"data_directory"`
	ChunkSize     int    `mapstructure:"chunk_size"`
	ChunkOverlap  int    `mapstructure:"chunk_overlap"`

	// Hugging Face configuration
	HuggingFaceToken           string        `mapstructure:"huggingface_token"` // SENSITIVE: never log
	HuggingFaceEmbeddingsModel string        `mapstructure:"huggingface_embeddings_model"`
	HuggingFaceChatModel       string        `mapstructure:"huggingface_chat_model"`
	HFBaseURL                  string        `mapstructure:"hf_base_url"`
	RequestTimeout             time.Duration `mapstructure:"request_timeout"`

	// Chat configuration
	MaxTokens          int `mapstructure:"max_tokens"`
	MaxHistoryMessages int `mapstructure:"max_history_messages"`
	TopK               int `mapstructure:"top_k"`

	// Logging configuration
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

// Load loads configuration.
// Priority: Environment variables > configuration file > default values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)
	bindEnvVariables(v)

	// The config file is optional; env + defaults are a complete source.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers default values for all configuration keys.
func setDefaults(v *viper.Viper) {
	v.SetDefault("host", DefaultHost)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("debug", false)
	v.SetDefault("allowed_origins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})

	v.SetDefault("data_directory", DefaultDataDirectory)
	v.SetDefault("chunk_size", DefaultChunkSize)
	v.SetDefault("chunk_overlap", DefaultChunkOverlap)

	v.SetDefault("huggingface_token", "")
	v.SetDefault("huggingface_embeddings_model", "")
	v.SetDefault("huggingface_chat_model", "")
	v.SetDefault("hf_base_url", DefaultHFBaseURL)
	v.SetDefault("request_timeout", DefaultRequestTimeout)

	v.SetDefault("max_tokens", DefaultMaxTokens)
	v.SetDefault("max_history_messages", DefaultMaxHistoryMessages)
	v.SetDefault("top_k", DefaultTopK)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
}

// bindEnvVariables binds environment variables to configuration keys.
// Explicit binding keeps the env surface documented in one place.
func bindEnvVariables(v *viper.Viper) {
	envBindings := map[string]string{
		"host":                         "HOST",
		"port":                         "PORT",
		"debug":                        "DEBUG",
		"allowed_origins":              "ALLOWED_ORIGINS",
		"data_directory":               "DATA_DIRECTORY",
		"chunk_size":                   "CHUNK_SIZE",
		"chunk_overlap":                "CHUNK_OVERLAP",
		"huggingface_token":            "HUGGINGFACE_TOKEN",
		"huggingface_embeddings_model": "HUGGINGFACE_EMBEDDINGS_MODEL",
		"huggingface_chat_model":       "HUGGINGFACE_CHAT_MODEL",
		"hf_base_url":                  "HF_BASE_URL",
		"request_timeout":              "REQUEST_TIMEOUT",
		"max_tokens":                   "MAX_TOKENS",
		"max_history_messages":         "MAX_HISTORY_MESSAGES",
		"top_k":                        "TOP_K",
		"log_level":                    "LOG_LEVEL",
		"log_file":                     "LOG_FILE",
	}

	for key, env := range envBindings {
		// BindEnv only errors on an empty key, which cannot happen here.
		_ = v.BindEnv(key, env)
	}
}

// Validate checks the configuration for out-of-range values.
// Chunk overlap must be strictly smaller than chunk size; equal or larger
// overlap would make the chunker loop without advancing.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d (must be 1-65535)", ErrInvalidPort, c.Port)
	}
	if c.DataDirectory == "" {
		return ErrMissingDataDirectory
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: %d (must be positive)", ErrInvalidChunkSize, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("%w: %d (must not be negative)", ErrInvalidChunkOverlap, c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: overlap %d must be smaller than chunk size %d",
			ErrInvalidChunkOverlap, c.ChunkOverlap, c.ChunkSize)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("%w: %d (must be positive)", ErrInvalidMaxTokens, c.MaxTokens)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("%w: %d (must be positive)", ErrInvalidTopK, c.TopK)
	}
	if c.MaxHistoryMessages <= 0 {
		c.MaxHistoryMessages = DefaultMaxHistoryMessages
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	return nil
}

// HuggingFaceConfigured reports whether the Hugging Face credentials and
// model identifiers are complete. The server starts either way; chat
// degrades with a warning when they are missing, matching the documented
// startup behavior.
func (c *Config) HuggingFaceConfigured() bool {
	return c.HuggingFaceToken != "" &&
		c.HuggingFaceEmbeddingsModel != "" &&
		c.HuggingFaceChatModel != ""
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
