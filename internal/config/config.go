// Package config loads the htmlform CLI configuration with Viper: built-in
// defaults, then an optional YAML file, then HTMLFORM_* environment variables,
// then explicit overrides from command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "htmlform"
	// EnvPrefix prefixes every environment variable, e.g. HTMLFORM_SERVER_ADDR.
	EnvPrefix = "HTMLFORM"
)

// Keys understood by Load.
const (
	KeyLogLevel         = "log.level"
	KeyRenderTheme      = "render.theme"
	KeyRenderVariant    = "render.variant"
	KeyRenderThemeDir   = "render.theme_dir"
	KeyEscapeAttributes = "render.escape_attributes"
	KeySanitizeHTML     = "render.sanitize_html"
	KeyServerAddr       = "server.addr"
	KeyPromptAttempts   = "prompt.max_attempts"
)

var (
	// ErrConfigNotFound is returned when an explicit config file is missing.
	ErrConfigNotFound = errors.New("config: file not found")
	// ErrInvalid wraps value errors found after loading.
	ErrInvalid = errors.New("config: invalid value")
)

type (
	// Config is the resolved CLI configuration.
	Config struct {
		Log    LogConfig    `mapstructure:"log"`
		Render RenderConfig `mapstructure:"render"`
		Server ServerConfig `mapstructure:"server"`
		Prompt PromptConfig `mapstructure:"prompt"`
	}

	// LogConfig controls the CLI logger.
	LogConfig struct {
		Level string `mapstructure:"level"`
	}

	// RenderConfig controls how forms are rendered.
	RenderConfig struct {
		Theme            string `mapstructure:"theme"`
		Variant          string `mapstructure:"variant"`
		ThemeDir         string `mapstructure:"theme_dir"`
		EscapeAttributes bool   `mapstructure:"escape_attributes"`
		SanitizeHTML     bool   `mapstructure:"sanitize_html"`
	}

	// ServerConfig controls `htmlform serve`.
	ServerConfig struct {
		Addr string `mapstructure:"addr"`
	}

	// PromptConfig controls `htmlform fill`.
	PromptConfig struct {
		MaxAttempts int `mapstructure:"max_attempts"`
	}

	// LoadOptions selects the config file and flag overrides.
	LoadOptions struct {
		// ConfigFile is used exclusively when set; it must exist.
		ConfigFile string
		// Overrides are applied last, keyed like KeyServerAddr.
		Overrides map[string]any
	}
)

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		Log:    LogConfig{Level: "info"},
		Render: RenderConfig{},
		Server: ServerConfig{Addr: ":8080"},
		Prompt: PromptConfig{MaxAttempts: 3},
	}
}

// Load resolves the configuration. Without an explicit file it looks for
// htmlform.yaml in the working directory and silently uses defaults when
// there is none.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault(KeyLogLevel, defaults.Log.Level)
	v.SetDefault(KeyRenderTheme, defaults.Render.Theme)
	v.SetDefault(KeyRenderVariant, defaults.Render.Variant)
	v.SetDefault(KeyRenderThemeDir, defaults.Render.ThemeDir)
	v.SetDefault(KeyEscapeAttributes, defaults.Render.EscapeAttributes)
	v.SetDefault(KeySanitizeHTML, defaults.Render.SanitizeHTML)
	v.SetDefault(KeyServerAddr, defaults.Server.Addr)
	v.SetDefault(KeyPromptAttempts, defaults.Prompt.MaxAttempts)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, opts.ConfigFile)
		}
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName(AppName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read: %w", err)
			}
		}
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the decoder cannot.
func (c Config) Validate() error {
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Prompt.MaxAttempts < 1 {
		return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalid, KeyPromptAttempts, c.Prompt.MaxAttempts)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalid, KeyServerAddr)
	}
	return nil
}

// SlogLevel maps the configured level name onto a slog level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalid, KeyLogLevel, c.Level)
	}
	return level, nil
}
