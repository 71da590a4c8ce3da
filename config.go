package framez

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project settings file guards look for in the
// working directory. The file is optional; when absent, built-in defaults
// apply (strict=false, allow_empty=true).
const ConfigFileName = ".framez.yaml"

// Config holds project-wide validation defaults read from .framez.yaml.
// Nil fields mean "not configured" and fall through to the built-in
// defaults; an explicit setting on a guard always wins over either.
//
// Example .framez.yaml:
//
//	strict: true
//	allow_empty: false
type Config struct {
	Strict     *bool `yaml:"strict"`
	AllowEmpty *bool `yaml:"allow_empty"`
}

// LoadConfig reads validation defaults from the given file. A missing file
// is not an error and yields an empty Config; malformed YAML or a
// non-boolean value for a boolean key is a configuration error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("framez: reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("framez: parsing %s: %w", path, err)
	}
	return &cfg, nil
}

var configCache struct {
	mu   sync.Mutex
	once *sync.Once
	cfg  *Config
	err  error
}

// DefaultConfig loads .framez.yaml from the working directory, once per
// process, and returns the cached result thereafter. The error is cached
// alongside the config so a malformed file keeps failing loudly instead of
// silently degrading to defaults.
func DefaultConfig() (*Config, error) {
	configCache.mu.Lock()
	if configCache.once == nil {
		configCache.once = new(sync.Once)
	}
	once := configCache.once
	configCache.mu.Unlock()

	once.Do(func() {
		cfg, err := LoadConfig(ConfigFileName)
		configCache.mu.Lock()
		configCache.cfg, configCache.err = cfg, err
		configCache.mu.Unlock()
	})

	configCache.mu.Lock()
	defer configCache.mu.Unlock()
	return configCache.cfg, configCache.err
}

// ClearConfigCache discards the cached project config so the next
// DefaultConfig call re-reads the file. Primarily for testing.
func ClearConfigCache() {
	configCache.mu.Lock()
	defer configCache.mu.Unlock()
	configCache.once = nil
	configCache.cfg = nil
	configCache.err = nil
}

// resolveStrict resolves the effective strict mode: explicit setting,
// else project default, else false.
func resolveStrict(param, configDefault *bool) bool {
	if param != nil {
		return *param
	}
	if configDefault != nil {
		return *configDefault
	}
	return false
}

// resolveAllowEmpty resolves the effective allow-empty mode: explicit
// setting, else project default, else true.
func resolveAllowEmpty(param, configDefault *bool) bool {
	if param != nil {
		return *param
	}
	if configDefault != nil {
		return *configDefault
	}
	return true
}
