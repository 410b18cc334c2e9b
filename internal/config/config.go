// Package config handles the configuration directory, the config file and
// environment overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	"tasklist/internal/backend/sqlitestore"
	"tasklist/internal/controller"
	"tasklist/internal/view"
)

const (
	// AppName is the application directory name.
	AppName = "tasklist"

	// ConfigFile is the config filename inside the config directory.
	ConfigFile = "config.json"

	// DefaultAddr is the listen address of the web UI.
	DefaultAddr = "127.0.0.1:8080"
)

// Environment variables read by Load.
const (
	EnvDB     = "TASKLIST_DB"
	EnvPolicy = "TASKLIST_DUPLICATE_POLICY"
	EnvStyle  = "TASKLIST_STYLE"
	EnvAddr   = "TASKLIST_ADDR"
)

var (
	// ErrConfigInvalid is returned when the config file cannot be parsed
	// or holds invalid values.
	ErrConfigInvalid = errors.New("invalid config")
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// DBPath is the store file.
	DBPath string

	// Policy is the duplicate-title policy for create.
	Policy controller.DuplicatePolicy

	// Style is the page style preset.
	Style string

	// Addr is the web UI listen address.
	Addr string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Level is the log level shared by every logger built from this config.
	Level *slog.LevelVar

	// Source is the config file that was loaded, if any.
	Source string
}

// fileConfig is the serialized form of config.json.
type fileConfig struct {
	DBPath string `json:"db_path,omitempty"`
	Policy string `json:"duplicate_policy,omitempty"`
	Style  string `json:"style,omitempty"`
	Addr   string `json:"addr,omitempty"`
}

// New creates a new Config with defaults for the default or specified config
// directory. If configDir is empty, uses XDG_CONFIG_HOME/tasklist or
// $HOME/.config/tasklist.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:    dir,
		DBPath: filepath.Join(dir, sqlitestore.StoreName+".db"),
		Policy: controller.DefaultPolicy,
		Style:  view.DefaultStyle,
		Addr:   DefaultAddr,
		Level:  new(slog.LevelVar),
	}, nil
}

// LoadInput holds the inputs for Load. Empty overrides mean "not set".
type LoadInput struct {
	Dir    string // --config flag value
	DBPath string // --db flag value
	Policy string // --policy flag value
	Env    map[string]string
}

// Load builds the configuration with the following precedence (highest wins):
// 1. Defaults
// 2. config.json in the config directory (JSONC, optional)
// 3. Environment variables
// 4. Flag overrides.
func Load(in LoadInput) (*Config, error) {
	cfg, err := New(in.Dir)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(cfg.Dir, ConfigFile)
	fc, loaded, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	if loaded {
		cfg.Source = path
		cfg.merge(fc, cfg.Dir)
	}

	cfg.merge(fileConfig{
		DBPath: in.Env[EnvDB],
		Policy: in.Env[EnvPolicy],
		Style:  in.Env[EnvStyle],
		Addr:   in.Env[EnvAddr],
	}, "")
	cfg.merge(fileConfig{DBPath: in.DBPath, Policy: in.Policy}, "")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge applies the non-empty values of fc. Relative store paths from the
// config file are resolved against base.
func (c *Config) merge(fc fileConfig, base string) {
	if fc.DBPath != "" {
		p := fc.DBPath
		if base != "" && p != sqlitestore.Memory && !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		c.DBPath = p
	}
	if fc.Policy != "" {
		c.Policy = controller.DuplicatePolicy(fc.Policy)
	}
	if fc.Style != "" {
		c.Style = fc.Style
	}
	if fc.Addr != "" {
		c.Addr = fc.Addr
	}
}

// Validate checks the policy and style names.
func (c *Config) Validate() error {
	if _, err := controller.ParsePolicy(string(c.Policy)); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	if _, err := view.LookupStyle(c.Style); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	return nil
}

// loadFile reads a JSONC config file. A missing file is not an error.
func loadFile(path string) (fileConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileConfig{}, false, nil
		}
		return fileConfig{}, false, fmt.Errorf("read config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: invalid JSONC: %w", ErrConfigInvalid, path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(standardized, &fc); err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}
	return fc, true, nil
}

// EnvMap converts os.Environ-style entries to a map.
func EnvMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			env[k] = v
		}
	}
	return env
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// EnsureDir creates the directory holding the store file if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	if c.DBPath == sqlitestore.Memory {
		return nil
	}
	return os.MkdirAll(filepath.Dir(c.DBPath), 0700)
}

// SetLogLevel derives the log level from the Quiet and Debug switches.
// Long-running commands pass slog.LevelInfo as base; others slog.LevelWarn.
func (c *Config) SetLogLevel(base slog.Level) {
	if c.Level == nil {
		c.Level = new(slog.LevelVar)
	}
	switch {
	case c.Debug:
		c.Level.Set(slog.LevelDebug)
	case c.Quiet:
		c.Level.Set(slog.LevelError)
	default:
		c.Level.Set(base)
	}
}
