package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ---------------------------------------------------------------------------
// Environment variable constants
// ---------------------------------------------------------------------------

const (
	EnvPrefix    = "DBEXPLORER"
	EnvConfig    = "DBEXPLORER_CONFIG"     // path to a custom config file
	EnvConfigDir = "DBEXPLORER_CONFIG_DIR" // overrides ~/.config/dbexplorer
)

const configName = "dbexplorer"

// ---------------------------------------------------------------------------
// Top-level Config
// ---------------------------------------------------------------------------

// Config holds all configuration for dbexplorer.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" json:"server"`
	Storage StorageConfig `mapstructure:"storage" json:"storage"`

	// Log level: debug | info | warn | error
	LogLevel string `mapstructure:"log_level" json:"log_level,omitempty"`
	// Log format: console | json
	LogFormat string `mapstructure:"log_format" json:"log_format,omitempty"`

	// File the configuration was read from, empty when only defaults applied
	configFile string
}

// ServerConfig defines the HTTP server settings
type ServerConfig struct {
	Port     int      `mapstructure:"port" json:"port,omitempty"`
	Hostname string   `mapstructure:"hostname" json:"hostname,omitempty"`
	CORS     []string `mapstructure:"cors" json:"cors,omitempty"`
}

// StorageConfig selects where the theme selection is persisted
type StorageConfig struct {
	Driver string `mapstructure:"driver" json:"driver,omitempty"` // "file" | "sqlite" | "memory"
	Path   string `mapstructure:"path" json:"path,omitempty"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load loads configuration with precedence:
// defaults → ~/.config/dbexplorer → ./ → .dbexplorer/ → DBEXPLORER_CONFIG → env vars
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 5174)
	v.SetDefault("server.hostname", "localhost")
	v.SetDefault("server.cors", []string{})
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.path", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	if custom := os.Getenv(EnvConfig); custom != "" {
		v.SetConfigFile(custom)
	} else {
		v.AddConfigPath(GetConfigDir())
		v.AddConfigPath(".")
		v.AddConfigPath(".dbexplorer")
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	// Environment variables: DBEXPLORER_SERVER_PORT, DBEXPLORER_STORAGE_DRIVER, ...
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	config.configFile = v.ConfigFileUsed()
	config.ApplyDefaults()

	return &config, nil
}

// Default returns the configuration used when no file or env var is set.
func Default() *Config {
	c := &Config{
		Server:    ServerConfig{Port: 5174, Hostname: "localhost"},
		Storage:   StorageConfig{Driver: "file"},
		LogLevel:  "info",
		LogFormat: "console",
	}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills values that depend on the environment, such as the
// storage path of the selected driver.
func (c *Config) ApplyDefaults() {
	if c.Storage.Path == "" {
		c.Storage.Path = DefaultStoragePath(c.Storage.Driver)
	}
}

// DefaultStoragePath is the selection path used for driver when none is
// configured. It is empty for drivers that keep nothing on disk.
func DefaultStoragePath(driver string) string {
	switch driver {
	case "sqlite":
		return filepath.Join(GetConfigDir(), "theme.db")
	case "file":
		return filepath.Join(GetConfigDir(), "theme.json")
	}
	return ""
}

// SetDriver switches the storage driver. A path that was only the previous
// driver's default is replaced by the new driver's default.
func (c *Config) SetDriver(driver string) {
	if driver != c.Storage.Driver && c.Storage.Path == DefaultStoragePath(c.Storage.Driver) {
		c.Storage.Path = ""
	}
	c.Storage.Driver = driver
	c.ApplyDefaults()
}

// ConfigFile returns the path of the file the config was read from.
func (c *Config) ConfigFile() string {
	return c.configFile
}

// Addr returns host:port for the HTTP server.
func (c *Config) Addr() string {
	hostname := c.Server.Hostname
	if hostname == "" {
		hostname = "localhost"
	}
	port := c.Server.Port
	if port == 0 {
		port = 5174
	}
	return fmt.Sprintf("%s:%d", hostname, port)
}

// GetConfigDir returns the dbexplorer config directory
func GetConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dbexplorer"
	}
	return filepath.Join(home, ".config", "dbexplorer")
}

// DefaultConfigPath is where SaveConfig writes by default.
func DefaultConfigPath() string {
	return filepath.Join(GetConfigDir(), configName+".json")
}

// SaveConfig writes the config to a JSON file
func (c *Config) SaveConfig(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Set updates a single dotted key, e.g. Set("server.port", "8080").
func (c *Config) Set(key, value string) error {
	switch key {
	case "server.port", "port":
		var port int
		if _, err := fmt.Sscanf(value, "%d", &port); err != nil {
			return fmt.Errorf("invalid port %q", value)
		}
		c.Server.Port = port
	case "server.hostname", "hostname":
		c.Server.Hostname = value
	case "storage.driver":
		c.SetDriver(value)
	case "storage.path":
		c.Storage.Path = value
	case "log_level":
		c.LogLevel = value
	case "log_format":
		c.LogFormat = value
	default:
		return fmt.Errorf("unknown config key: %s\nSupported keys: server.port, server.hostname, storage.driver, storage.path, log_level, log_format", key)
	}
	return nil
}

// String returns the config as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
