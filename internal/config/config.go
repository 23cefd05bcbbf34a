package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/AndreyAkinshin/aspect/internal/schema"
)

// FileNames lists the config file names Find looks for, in order.
var FileNames = []string{"aspect.yaml", "aspect.yml", "aspect.json"}

// Find returns the first config file from FileNames present in dir, or ""
// when there is none.
func Find(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// read returns a viper instance loaded from path and overlaid with ASPECT_*
// environment variables. An empty path reads the environment only.
func read(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range knownKeys() {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	if path == "" {
		return v, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return v, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// Load reads a configuration file without applying defaults.
func Load(path string) (*Config, error) {
	v, err := read(path)
	if err != nil {
		return nil, err
	}
	return decode(v)
}

// LoadWithDefaults reads a config file and applies default values.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	ApplyDefaults(cfg)
	return cfg, nil
}

// LoadAndValidate reads a config file, applies defaults, validates it against
// the config schema and the semantic rules, and returns warnings.
func LoadAndValidate(path string) (*Config, []string, error) {
	v, err := read(path)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := decode(v)
	if err != nil {
		return nil, nil, err
	}

	unknownWarnings := detectUnknownFields(v.AllSettings())

	ApplyDefaults(cfg)

	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, unknownWarnings, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := schema.ValidateConfig(data); err != nil {
		return nil, unknownWarnings, err
	}

	validationWarnings, err := Validate(cfg)

	// Combine warnings from both sources.
	allWarnings := make([]string, 0, len(unknownWarnings)+len(validationWarnings))
	allWarnings = append(allWarnings, unknownWarnings...)
	allWarnings = append(allWarnings, validationWarnings...)

	if err != nil {
		return nil, allWarnings, err
	}

	return cfg, allWarnings, nil
}
