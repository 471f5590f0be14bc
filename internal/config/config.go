// Package config provides configuration management for the viewer core
// using Viper for flexible configuration loading from files and
// environment variables.
//
// Configuration is read from an optional neurovis.yml file with
// NEUROVIS_ environment variable overrides. It covers the storage
// location, the default display language, logging, and the optional
// content-generation endpoint.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/allenzhu312/Brain/internal/types"
)

type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	Viewer     ViewerConfig     `yaml:"viewer"`
	Generation GenerationConfig `yaml:"generation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type StorageConfig struct {
	// Path is the directory for the durable store.
	Path string `yaml:"path"`
	// InMemory disables disk persistence (privacy mode); edits survive
	// the session but not a restart.
	InMemory bool `yaml:"in_memory"`
}

type ViewerConfig struct {
	// Language is the startup display language ("en" or "zh").
	Language string `yaml:"language"`
}

type GenerationConfig struct {
	// Enabled turns the remote content-generation collaborator on.
	Enabled bool `yaml:"enabled"`
	// Model is the chat model name.
	Model string `yaml:"model"`
	// BaseURL points at an OpenAI-compatible endpoint; empty means the
	// default API.
	BaseURL string `yaml:"base_url"`
	// APIKeyEnv names the environment variable holding the API key. The
	// key itself never appears in config files.
	APIKeyEnv string `yaml:"api_key_env"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

const envPrefix = "NEUROVIS"

// Load reads configuration from neurovis.yml (if present in the working
// directory) and NEUROVIS_ environment variables, applies defaults, and
// validates the result.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("neurovis")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Missing config file is fine; defaults and env apply.
	}

	cfg := &Config{
		Storage: StorageConfig{
			Path:     v.GetString("storage.path"),
			InMemory: v.GetBool("storage.in_memory"),
		},
		Viewer: ViewerConfig{
			Language: v.GetString("viewer.language"),
		},
		Generation: GenerationConfig{
			Enabled:   v.GetBool("generation.enabled"),
			Model:     v.GetString("generation.model"),
			BaseURL:   v.GetString("generation.base_url"),
			APIKeyEnv: v.GetString("generation.api_key_env"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every known key so file, env, and default values
// resolve through one lookup path.
func setDefaults(v *viper.Viper) {
	home, _ := os.UserHomeDir()
	path := ".neurovis/data"
	if home != "" {
		path = home + "/.neurovis/data"
	}

	v.SetDefault("storage.path", path)
	v.SetDefault("storage.in_memory", false)
	v.SetDefault("viewer.language", string(types.LangZh))
	v.SetDefault("generation.enabled", false)
	v.SetDefault("generation.model", "gpt-4o-mini")
	v.SetDefault("generation.base_url", "")
	v.SetDefault("generation.api_key_env", "NEUROVIS_API_KEY")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// APIKey resolves the generation API key from the configured environment
// variable.
func (g GenerationConfig) APIKey() string {
	if g.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(g.APIKeyEnv)
}

// Validate checks a configuration for inconsistencies.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if !cfg.Storage.InMemory && cfg.Storage.Path == "" {
		return fmt.Errorf("storage.path is required unless storage.in_memory is set")
	}
	if lang := types.Language(cfg.Viewer.Language); !lang.IsValid() {
		return fmt.Errorf("viewer.language must be %q or %q, got %q",
			types.LangEn, types.LangZh, cfg.Viewer.Language)
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json")
	}
	if cfg.Generation.Enabled && cfg.Generation.Model == "" {
		return fmt.Errorf("generation.model is required when generation is enabled")
	}
	return nil
}
