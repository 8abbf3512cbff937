package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

var (
	validDrivers    = []string{"file", "sqlite", "memory"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "json"}
)

// Validate validates the configuration
func (c *Config) Validate() error {
	var errors ValidationErrors

	// Validate server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("must be between 1 and 65535, got %d", c.Server.Port),
		})
	}
	if strings.TrimSpace(c.Server.Hostname) == "" {
		errors = append(errors, ValidationError{
			Field:   "server.hostname",
			Message: "must not be empty",
		})
	}

	// Validate storage
	if !slices.Contains(validDrivers, c.Storage.Driver) {
		errors = append(errors, ValidationError{
			Field:   "storage.driver",
			Message: fmt.Sprintf("unknown driver '%s', valid: %s", c.Storage.Driver, strings.Join(validDrivers, ", ")),
		})
	} else if c.Storage.Driver != "memory" && c.Storage.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "storage.path",
			Message: fmt.Sprintf("required for the %s driver", c.Storage.Driver),
		})
	}

	// Validate logging
	if !slices.Contains(validLogLevels, c.LogLevel) {
		errors = append(errors, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("unknown level '%s', valid: %s", c.LogLevel, strings.Join(validLogLevels, ", ")),
		})
	}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		errors = append(errors, ValidationError{
			Field:   "log_format",
			Message: fmt.Sprintf("unknown format '%s', valid: %s", c.LogFormat, strings.Join(validLogFormats, ", ")),
		})
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// GetConfigPrecedence returns a description of config source precedence
func GetConfigPrecedence() string {
	return `Configuration is loaded in the following order (later sources override earlier):

1. Built-in defaults
2. Global config file (~/.config/dbexplorer/dbexplorer.yaml)
3. Project config file (./dbexplorer.yaml or ./.dbexplorer/dbexplorer.yaml)
4. DBEXPLORER_CONFIG, when set, replaces the file search
5. Environment variables (DBEXPLORER_SERVER_PORT, DBEXPLORER_STORAGE_DRIVER, etc.)
6. Command-line flags (--port, --storage, --storage-path, --log-level)
`
}
