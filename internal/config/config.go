// Package config resolves where and how tusk stores its data.
//
// Sources, lowest precedence first: built-in defaults, the YAML config file
// (~/.tusk/config.yaml or $TUSK_CONFIG), TUSK_* environment variables, and
// command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	KeyDataPath    = "data_path"
	KeyBackend     = "backend"
	KeyLockTimeout = "lock_timeout"

	envPrefix          = "TUSK"
	defaultBackend     = "json"
	defaultLockTimeout = 5 * time.Second
)

// Config is the effective configuration for one invocation.
type Config struct {
	DataPath    string        `mapstructure:"data_path"`
	Backend     string        `mapstructure:"backend"`
	LockTimeout time.Duration `mapstructure:"lock_timeout"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"data":         KeyDataPath,
	"backend":      KeyBackend,
	"lock-timeout": KeyLockTimeout,
}

// Dir returns the directory holding the default config and data files.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tusk"
	}
	return filepath.Join(home, ".tusk")
}

// FilePath returns the config file location, honoring TUSK_CONFIG.
func FilePath() string {
	if p := os.Getenv(envPrefix + "_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultDataPath returns the data file used when none is configured.
func DefaultDataPath(backend string) string {
	ext := map[string]string{"json": ".json", "yaml": ".yaml", "sqlite": ".db"}[backend]
	if ext == "" {
		ext = ".json"
	}
	return filepath.Join(Dir(), "tasks"+ext)
}

// Load resolves the configuration. flags may be nil; only flags that were
// set on the command line override the other sources.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyDataPath, "")
	v.SetDefault(KeyBackend, defaultBackend)
	v.SetDefault(KeyLockTimeout, defaultLockTimeout)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfgFile := FilePath()
	if err := loadFile(v, cfgFile); err != nil {
		return nil, err
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if v.ConfigFileUsed() != "" {
		cfg.File = v.ConfigFileUsed()
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.DataPath == "" {
		cfg.DataPath = DefaultDataPath(cfg.Backend)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile reads the YAML config file if it exists.
func loadFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	switch c.Backend {
	case "json", "yaml", "sqlite":
	default:
		return fmt.Errorf("backend must be 'json', 'yaml', or 'sqlite', got %q", c.Backend)
	}

	if strings.TrimSpace(c.DataPath) == "" {
		return fmt.Errorf("data_path is required")
	}

	if c.LockTimeout < 0 {
		return fmt.Errorf("lock_timeout must not be negative")
	}

	return nil
}

// YAML renders the configuration in the config file format.
func (c *Config) YAML() ([]byte, error) {
	view := struct {
		DataPath    string `yaml:"data_path"`
		Backend     string `yaml:"backend"`
		LockTimeout string `yaml:"lock_timeout"`
	}{
		DataPath:    c.DataPath,
		Backend:     c.Backend,
		LockTimeout: c.LockTimeout.String(),
	}
	return yaml.Marshal(view)
}
