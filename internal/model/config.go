package model

import "time"

// Config holds the complete runtime configuration
type Config struct {
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	Engine  EngineConfig  `yaml:"engine" mapstructure:"engine"`
	Verdict VerdictConfig `yaml:"verdict" mapstructure:"verdict"`
	Asset   AssetConfig   `yaml:"asset" mapstructure:"asset"`
	Extract ExtractConfig `yaml:"extract" mapstructure:"extract"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls outbound page fetches
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	RatePerSecond float64       `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst     int           `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// EngineConfig configures the verdict engine (Gemini)
type EngineConfig struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	Model  string `yaml:"model" mapstructure:"model"`
}

// VerdictConfig selects the verdict checker used for the final claim check.
// Provider is one of "gemini", "openai", "perplexity".
type VerdictConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"`
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`

	// Proxy URLs for the provider's HTTP client; empty values fall back to
	// the standard environment variables
	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
}

// AssetConfig bounds the remote asset readiness wait
type AssetConfig struct {
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
	MaxWait      time.Duration `yaml:"max_wait" mapstructure:"max_wait"`
	FFmpegPath   string        `yaml:"ffmpeg_path" mapstructure:"ffmpeg_path"`
}

// ExtractConfig tunes article extraction thresholds
type ExtractConfig struct {
	MinArticleChars  int `yaml:"min_article_chars" mapstructure:"min_article_chars"`
	CandidateChars   int `yaml:"candidate_chars" mapstructure:"candidate_chars"`
	ClaimPromptChars int `yaml:"claim_prompt_chars" mapstructure:"claim_prompt_chars"`
}

// CacheConfig controls URL extraction caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// StoreConfig configures the claim repository. An empty DSN disables
// persistence entirely.
type StoreConfig struct {
	DSN string `yaml:"dsn" mapstructure:"dsn"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr           string `yaml:"addr" mapstructure:"addr"`
	FrontendOrigin string `yaml:"frontend_origin" mapstructure:"frontend_origin"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	JSON    bool `yaml:"json" mapstructure:"json"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       20 * time.Second,
			UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			MaxBodyBytes:  4_000_000,
			RespectRobots: true,
			RatePerSecond: 1.0,
			RateBurst:     3,
		},
		Engine: EngineConfig{
			Model: "gemini-2.0-flash",
		},
		Verdict: VerdictConfig{
			Provider:  "gemini",
			Timeout:   60,
			MaxTokens: 1500,
		},
		Asset: AssetConfig{
			PollInterval: 2 * time.Second,
			MaxWait:      300 * time.Second,
			FFmpegPath:   "ffmpeg",
		},
		Extract: ExtractConfig{
			MinArticleChars:  100,
			CandidateChars:   200,
			ClaimPromptChars: 5000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     1 * time.Hour,
		},
		Server: ServerConfig{
			Addr:           ":8000",
			FrontendOrigin: "http://localhost:3000",
			MaxUploadBytes: 64_000_000,
		},
	}
}
