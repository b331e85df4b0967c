// Package config assembles runtime configuration from built-in defaults,
// an optional YAML file, an optional .env file, environment variables and
// command-line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/grimoire/internal/content"
	"github.com/abhisek/grimoire/internal/llm"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	LLM     llm.Config     `yaml:"llm"`
	Content content.Config `yaml:"content"`
	Store   StoreConfig    `yaml:"store"`
	Log     LogConfig      `yaml:"log"`

	// Model overrides the model of whichever provider ends up selected.
	Model string `yaml:"model" env:"GRIMOIRE_LLM_MODEL"`
}

// StoreConfig locates the LLM event log database.
type StoreConfig struct {
	// Path is the SQLite file. Empty uses store.DefaultDBPath.
	Path string `yaml:"path" env:"GRIMOIRE_DB"`
}

// LogConfig controls the log file.
type LogConfig struct {
	// Path is the log file. Empty uses logging.DefaultPath.
	Path  string `yaml:"path" env:"GRIMOIRE_LOG_FILE"`
	Level string `yaml:"level" env:"GRIMOIRE_LOG_LEVEL"`
}

// Overrides carries command-line flag values. Empty fields are ignored.
type Overrides struct {
	Provider string
	Model    string
	DBPath   string
	LogLevel string
}

// Options controls Load.
type Options struct {
	// File is an explicit config file. It must exist when set. When empty,
	// DefaultPath is read if present.
	File string

	// EnvFile is a dotenv file whose variables apply unless the
	// environment already sets them.
	EnvFile string

	// Environ replaces the process environment when non-nil.
	Environ map[string]string

	Overrides Overrides
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		LLM:     llm.DefaultConfig(),
		Content: content.DefaultConfig(),
		Log:     LogConfig{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/grimoire/config.yaml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "grimoire", "config.yaml"), nil
}

// Load layers the configuration sources and picks a provider. It does not
// validate the result; call Validate before creating a provider.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	if err := loadFile(&cfg, opts.File); err != nil {
		return nil, err
	}

	environ, err := environment(opts)
	if err != nil {
		return nil, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.apply(opts.Overrides)

	cfg.LLM.Discover()
	if cfg.Model != "" {
		cfg.LLM.SetModel(cfg.Model)
	}
	if cfg.Content.Validators == nil {
		cfg.Content.Validators = content.DefaultValidators()
	}

	return &cfg, nil
}

func loadFile(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// environment merges the dotenv file under the process (or given)
// environment.
func environment(opts Options) (map[string]string, error) {
	environ := opts.Environ
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}
	if opts.EnvFile == "" {
		return environ, nil
	}

	vars, err := godotenv.Read(opts.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("read env file: %w", err)
	}
	merged := make(map[string]string, len(environ)+len(vars))
	for k, v := range vars {
		merged[k] = v
	}
	for k, v := range environ {
		merged[k] = v
	}
	return merged, nil
}

func (c *Config) apply(o Overrides) {
	if o.Provider != "" {
		c.LLM.Provider = strings.ToLower(o.Provider)
	}
	if o.Model != "" {
		c.Model = o.Model
	}
	if o.DBPath != "" {
		c.Store.Path = o.DBPath
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
}

// Validate checks the LLM settings.
func (c *Config) Validate() error {
	return c.LLM.Validate()
}
