package model

import "time"

// Config is the full runtime configuration. It is built once (defaults,
// then config file, then env, then flags) and passed explicitly into the
// components that need it; there is no global configuration state.
type Config struct {
	API   APIConfig   `yaml:"api" mapstructure:"api"`
	Cache CacheConfig `yaml:"cache" mapstructure:"cache"`
	Store StoreConfig `yaml:"store" mapstructure:"store"`
	Vocab VocabConfig `yaml:"vocab" mapstructure:"vocab"`

	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
}

// APIConfig configures the remote registry client.
type APIConfig struct {
	BaseURL           string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxRetries        int           `yaml:"max_retries" mapstructure:"max_retries"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig configures the in-memory parse-result cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// StoreConfig configures the local sqlite store for fetched entries and
// company snapshots.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// VocabConfig points at an optional vocabulary override file; empty means
// the embedded default table.
type VocabConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ConcurrencyConfig sizes the worker pool used for batch parsing.
type ConcurrencyConfig struct {
	ParseWorkers int `yaml:"parse_workers" mapstructure:"parse_workers"`
}

// OutputConfig controls diagnostics and rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// LLMConfig configures the optional report summarizer. It never affects
// extraction output.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	TimeoutS  int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           "https://api.libreborme.net/api/v1",
			Timeout:           30 * time.Second,
			UserAgent:         "bormex/0.1 (+https://github.com/bormex/bormex)",
			MaxRetries:        3,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Store: StoreConfig{
			Enabled: false,
			Path:    "", // defaults to ~/.bormex/bormex.db when enabled
		},
		Concurrency: ConcurrencyConfig{
			ParseWorkers: 4,
		},
		LLM: LLMConfig{
			Provider:  "",
			MaxTokens: 1000,
			TimeoutS:  30,
		},
	}
}
