package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshattr/pkg/attr"
)

// ErrInvalidConfig wraps every validation failure reported by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Load resolves the configuration from defaults, then the config file, then
// flags, and validates the result.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks kind names, the expansion epsilon and the log level. All
// problems are reported together.
func (c *Config) Validate() error {
	var errs error
	for _, k := range []struct{ key, name string }{
		{"translate.uv_kind", c.Translate.UVKind},
		{"translate.color_kind", c.Translate.ColorKind},
		{"translate.default_kind", c.Translate.DefaultKind},
	} {
		if _, ok := attr.ParseKind(k.name); !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidConfig, k.key, k.name))
		}
	}
	if c.Translate.Epsilon < 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: translate.epsilon must not be negative, got %g", ErrInvalidConfig, c.Translate.Epsilon))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error", "":
	default:
		errs = multierr.Append(errs, fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level))
	}
	return errs
}

// findConfigFile returns the first existing config among ./meshattr.yaml
// and ConfigDir()/config.yaml.
func findConfigFile() string {
	for _, p := range []string{"meshattr.yaml", filepath.Join(ConfigDir(), "config.yaml")} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "meshattr")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "meshattr")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "meshattr")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "meshattr")
	}
}

// loadFromFile merges a YAML file over cfg. Keys missing from the file keep
// their current values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}
	return nil
}
