package model

import "time"

// Config is the effective configuration of absa
type Config struct {
	Locale      string            `yaml:"locale" mapstructure:"locale"`
	Input       InputConfig       `yaml:"input" mapstructure:"input"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// InputConfig limits what is read from review files
type InputConfig struct {
	MaxBytes int64 `yaml:"max_bytes" mapstructure:"max_bytes"`
}

// OutputConfig controls which artifacts are written
type OutputConfig struct {
	Dir           string `yaml:"dir" mapstructure:"dir"`
	JSON          bool   `yaml:"json" mapstructure:"json"`
	Markdown      bool   `yaml:"markdown" mapstructure:"markdown"`
	Table         bool   `yaml:"table" mapstructure:"table"`
	IncludeFooter bool   `yaml:"include_footer" mapstructure:"include_footer"`
	Verbose       bool   `yaml:"-" mapstructure:"-"`
}

// ConcurrencyConfig bounds the batch worker pool
type ConcurrencyConfig struct {
	Workers       int     `yaml:"workers" mapstructure:"workers"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"` // 0 disables throttling
	Burst         int     `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig controls the in-memory dataset cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// LLMConfig configures the optional narrative summary
type LLMConfig struct {
	Provider   string `yaml:"provider" mapstructure:"provider"` // "openai", "ollama" or "" (disabled)
	Model      string `yaml:"model" mapstructure:"model"`
	APIKey     string `yaml:"-" mapstructure:"api_key"`
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`
	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`   // overrides HTTP_PROXY
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"` // overrides HTTPS_PROXY
	Timeout    int    `yaml:"timeout" mapstructure:"timeout"`         // seconds
	MaxTokens  int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// LogConfig configures the zerolog logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // console or json
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Locale: string(LocaleID),
		Input: InputConfig{
			MaxBytes: 256 << 20,
		},
		Output: OutputConfig{
			Dir:           ".",
			JSON:          true,
			Markdown:      false,
			Table:         false,
			IncludeFooter: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers:       4,
			RatePerSecond: 0,
			Burst:         1,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Minute,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 600,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
