// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/typeracer/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig      `toml:"practice"`
	Web      WebConfig           `toml:"web"`
	Log      LogConfig           `toml:"log"`
	Prompts  map[string][]string `toml:"prompts"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Level       *int  `toml:"level"`
	FreshPrompt *bool `toml:"fresh-prompt"`
}

// WebConfig maps browser server settings.
type WebConfig struct {
	Addr           *string  `toml:"addr"`
	AllowedOrigins []string `toml:"allowed-origins"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// PromptPools converts the [prompts] table into level pools. Keys that are not
// positive integers are reported as an error.
func (c FileConfig) PromptPools() (map[model.Level][]string, error) {
	pools := make(map[model.Level][]string, len(c.Prompts))
	for key, prompts := range c.Prompts {
		level := model.ParseLevel(key)
		if level.String() != key {
			return nil, fmt.Errorf("invalid prompt level %q", key)
		}
		pools[level] = append(pools[level], prompts...)
	}
	return pools, nil
}
