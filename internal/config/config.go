// Package config holds the persistent application configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/text/language"
)

// Config is the application configuration, stored as JSON in the user's
// home directory. Every field has a working default so a missing or partial
// file is fine.
type Config struct {
	// PhoneColumn is the input column holding the phone number.
	PhoneColumn string `json:"phone_column"`

	// PageSize is the initial visible-window size, also the show-more step.
	PageSize int `json:"page_size"`

	// ExportDir is where exported files are written.
	ExportDir string `json:"export_dir"`

	// Locale drives country display names and sort collation.
	Locale string `json:"locale"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PhoneColumn: "Numéro",
		PageSize:    50,
		ExportDir:   ".",
		Locale:      "fr",
	}
}

// Path returns the config file location.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".geophone", "config.json"), nil
}

// Load reads the config file, falling back to defaults when the file is
// missing or unreadable. Fields left empty in the file keep their defaults.
func Load() *Config {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return cfg
	}
	if loaded.PhoneColumn != "" {
		cfg.PhoneColumn = loaded.PhoneColumn
	}
	if loaded.PageSize > 0 {
		cfg.PageSize = loaded.PageSize
	}
	if loaded.ExportDir != "" {
		cfg.ExportDir = loaded.ExportDir
	}
	if loaded.Locale != "" {
		cfg.Locale = loaded.Locale
	}
	return cfg
}

// Save writes the config file, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LocaleTag parses the configured locale, falling back to French - the one
// target locale of the enrichment pipeline - when the value is invalid.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.French
	}
	return tag
}
