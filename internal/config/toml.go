// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Server ServerConfig `toml:"server"`
	Prover ProverConfig `toml:"prover"`
	Client ClientConfig `toml:"client"`
}

// ServerConfig maps relay server settings. Nil fields defer to flag or
// built-in defaults so a partial file only overrides what it names.
type ServerConfig struct {
	Host           *string `toml:"host"`
	Port           *int    `toml:"port"`
	RateLimit      *int    `toml:"rate-limit"`
	MaxPromptChars *int    `toml:"max-prompt-chars"`
	MaxEvents      *int    `toml:"max-events"`
	MaxBodyBytes   *int64  `toml:"max-body-bytes"`
	MaxSealBytes   *int    `toml:"max-seal-bytes"`
	DBPath         *string `toml:"db-path"`
}

// ProverConfig maps proving collaborator settings.
type ProverConfig struct {
	Mode      *string `toml:"mode"` // "local" or "exec"
	Binary    *string `toml:"binary"`
	ImageID   *string `toml:"image-id"`
	TimeoutMs *int64  `toml:"timeout-ms"`
}

// ClientConfig maps the recorder/submitter settings.
type ClientConfig struct {
	ServerURL    *string `toml:"server-url"`
	Player       *string `toml:"player"`
	WordListPath *string `toml:"wordlist"`
	Words        *int    `toml:"words"`
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
