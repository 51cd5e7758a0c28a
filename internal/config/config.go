// Package config handles configuration loading and validation for photoflow.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/TsoliasPN/photo-library-workflow/internal/audit"
)

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	FileNotFound    ConfigErrorType = "FILE_NOT_FOUND"
	InvalidJSON     ConfigErrorType = "INVALID_JSON"
	ValidationError ConfigErrorType = "VALIDATION_ERROR"
)

// ConfigError represents an error that occurred during configuration loading.
type ConfigError struct {
	Type    ConfigErrorType
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case FileNotFound:
		return fmt.Sprintf("configuration file not found: %s", e.Path)
	case InvalidJSON:
		return fmt.Sprintf("invalid JSON in configuration file: %s", e.Message)
	case ValidationError:
		return fmt.Sprintf("configuration validation error: %s", e.Message)
	default:
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

// WatchConfig holds watch-mode settings.
type WatchConfig struct {
	DebounceSeconds int      `json:"debounceSeconds,omitempty"`
	IgnorePatterns  []string `json:"ignorePatterns,omitempty"`
}

// Configuration holds all settings for photoflow.
type Configuration struct {
	LibraryRoot        string        `json:"libraryRoot"`
	Locale             string        `json:"locale,omitempty"`
	DateLayouts        []string      `json:"dateLayouts,omitempty"`
	MetadataExtensions []string      `json:"metadataExtensions,omitempty"`
	Audit              *audit.Config `json:"audit,omitempty"`
	Watch              *WatchConfig  `json:"watch,omitempty"`
}

// DefaultLocale is the locale used for date-taken text when none is configured.
// Date-taken strings are written in the locale of the machine that imported
// the media, so this must stay a fixed configuration value rather than
// whatever locale the current environment happens to use.
const DefaultLocale = "el_GR"

// DefaultMetadataExtensions lists the file extensions that carry embedded
// date-taken metadata.
func DefaultMetadataExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".tif", ".tiff", ".webp"}
}

// Validate checks that the configuration has all required fields.
func (c *Configuration) Validate() error {
	if c.LibraryRoot == "" {
		return &ConfigError{
			Type:    ValidationError,
			Message: "libraryRoot must be set",
		}
	}
	if c.Watch != nil && c.Watch.DebounceSeconds < 0 {
		return &ConfigError{
			Type:    ValidationError,
			Message: "watch.debounceSeconds cannot be negative",
		}
	}
	return nil
}

// ApplyDefaults fills in zero-valued optional fields.
func (c *Configuration) ApplyDefaults() {
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if len(c.MetadataExtensions) == 0 {
		c.MetadataExtensions = DefaultMetadataExtensions()
	}
	if c.Audit == nil {
		defaults := audit.DefaultConfig()
		c.Audit = &defaults
	} else if c.Audit.LogDirectory == "" {
		c.Audit.LogDirectory = audit.DefaultConfig().LogDirectory
	}
	if c.Watch == nil {
		c.Watch = &WatchConfig{}
	}
	if c.Watch.DebounceSeconds == 0 {
		c.Watch.DebounceSeconds = 2
	}
}

// Load reads and parses a configuration file from the given path.
func Load(filePath string) (*Configuration, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{
				Type: FileNotFound,
				Path: filePath,
			}
		}
		return nil, &ConfigError{
			Type:    FileNotFound,
			Path:    filePath,
			Message: err.Error(),
		}
	}

	var config Configuration
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, &ConfigError{
			Type:    InvalidJSON,
			Message: err.Error(),
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.ApplyDefaults()

	// Resolve the library root so folder paths in output and audit events
	// are stable regardless of the working directory.
	if abs, err := filepath.Abs(config.LibraryRoot); err == nil {
		config.LibraryRoot = abs
	}

	return &config, nil
}

// Save serializes and writes a configuration to the given path.
func Save(config *Configuration, filePath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return &ConfigError{
			Type:    InvalidJSON,
			Message: err.Error(),
		}
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return &ConfigError{
			Type:    ValidationError,
			Message: fmt.Sprintf("failed to write configuration file: %s", err.Error()),
		}
	}

	return nil
}
