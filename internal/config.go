package internal

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/lrstanley/go-ytdlp"
	"github.com/spf13/viper"
)

// Provider names accepted by the "provider" setting.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Source names accepted by the "sources" setting.
const (
	SourceNameCaptions  = "captions"
	SourceNameSubtitles = "subtitles"
	SourceNameAudio     = "audio"
)

// WhisperLimit is the maximum file size accepted by OpenAI's Whisper API (25 MiB).
const WhisperLimit int64 = 25 << 20

// Config holds application settings.
type Config struct {
	// Generative provider selection
	Provider     string
	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string
	MaxTokens    int64

	// Transcript acquisition
	Languages     []string
	Sources       []string
	ProxyURL      string
	ProxyUsername string
	ProxyPassword string

	// Timeouts applied at each external call boundary
	RequestTimeout time.Duration
	SummaryTimeout time.Duration
	WhisperTimeout time.Duration

	// HTTP server
	Addr string

	Verbose bool
	Quiet   bool

	// Fixed XDG paths (not configurable)
	ConfigDir    string
	DataDir      string
	CacheDir     string
	ScratchDir   string
	DatabasePath string
}

//go:embed config.toml
var defaultFS embed.FS

// EnsureDefaultConfig checks if a config file exists in the XDG config directory
// and creates it from the embedded default if it doesn't exist.
func EnsureDefaultConfig(configDir string) error {
	filePath := filepath.Join(configDir, "config.toml")
	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile("config.toml")
	if err != nil {
		return fmt.Errorf("reading embedded default configuration: %w", err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default configuration: %w", err)
	}

	fmt.Printf("Created default configuration at %s\n", filePath)
	return nil
}

// InitConfig initializes Viper and loads configuration.
func InitConfig() *Config {
	// Ensure yt-dlp is installed
	ytdlp.MustInstall(context.Background(), nil)

	// XDG standard directories
	configDir := filepath.Join(xdg.ConfigHome, "ytblog")
	dataDir := filepath.Join(xdg.DataHome, "ytblog")
	cacheDir := filepath.Join(xdg.CacheHome, "ytblog")
	scratchDir := filepath.Join(cacheDir, "audio")

	v := viper.New()

	v.SetDefault("provider", ProviderOpenAI)
	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("max_tokens", 1000)
	v.SetDefault("languages", []string{"en", "es"})
	v.SetDefault("sources", []string{SourceNameCaptions, SourceNameSubtitles, SourceNameAudio})
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("summary_timeout", 2*time.Minute)
	v.SetDefault("whisper_timeout", 10*time.Minute)
	v.SetDefault("addr", ":8000")
	v.SetDefault("verbose", false)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetEnvPrefix("YTBLOG")
	v.AutomaticEnv()

	// API keys are also accepted via the well-known environment variables.
	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	config := &Config{
		Provider:     v.GetString("provider"),
		OpenAIAPIKey: v.GetString("openai_api_key"),
		OpenAIModel:  v.GetString("openai_model"),
		GeminiAPIKey: v.GetString("gemini_api_key"),
		GeminiModel:  v.GetString("gemini_model"),
		MaxTokens:    v.GetInt64("max_tokens"),

		Languages:     v.GetStringSlice("languages"),
		Sources:       v.GetStringSlice("sources"),
		ProxyURL:      v.GetString("proxy_url"),
		ProxyUsername: v.GetString("proxy_username"),
		ProxyPassword: v.GetString("proxy_password"),

		RequestTimeout: v.GetDuration("request_timeout"),
		SummaryTimeout: v.GetDuration("summary_timeout"),
		WhisperTimeout: v.GetDuration("whisper_timeout"),

		Addr:    v.GetString("addr"),
		Verbose: v.GetBool("verbose"),

		ConfigDir:    configDir,
		DataDir:      dataDir,
		CacheDir:     cacheDir,
		ScratchDir:   scratchDir,
		DatabasePath: filepath.Join(dataDir, "articles.db"),
	}

	return config
}

// Validate checks that the configuration names a usable provider and
// a well-formed transcript source list.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("openai provider selected but no API key set - use config or OPENAI_API_KEY")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("gemini provider selected but no API key set - use config or GEMINI_API_KEY")
		}
	default:
		return fmt.Errorf("unsupported provider: %q (supported: %s, %s)", c.Provider, ProviderOpenAI, ProviderGemini)
	}

	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}

	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one transcript source is required")
	}
	valid := []string{SourceNameCaptions, SourceNameSubtitles, SourceNameAudio}
	for _, name := range c.Sources {
		if !slices.Contains(valid, name) {
			return fmt.Errorf("unknown transcript source: %q (valid: %s)", name, strings.Join(valid, ", "))
		}
	}

	// Whisper transcription goes through OpenAI regardless of the
	// summary provider.
	if slices.Contains(c.Sources, SourceNameAudio) && c.OpenAIAPIKey == "" {
		return fmt.Errorf("the %q source requires an OpenAI API key for Whisper", SourceNameAudio)
	}

	if len(c.Languages) == 0 {
		return fmt.Errorf("at least one caption language is required")
	}

	return nil
}
