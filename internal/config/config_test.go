package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points the config search at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	t.Setenv(EnvConfig, "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 5174 {
		t.Errorf("Port: want %d, got %d", 5174, cfg.Server.Port)
	}
	if cfg.Server.Hostname != "localhost" {
		t.Errorf("Hostname: want %q, got %q", "localhost", cfg.Server.Hostname)
	}
	if cfg.Storage.Driver != "file" {
		t.Errorf("Driver: want %q, got %q", "file", cfg.Storage.Driver)
	}
	if want := filepath.Join(dir, "theme.json"); cfg.Storage.Path != want {
		t.Errorf("Path: want %q, got %q", want, cfg.Storage.Path)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("logging: got %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := isolate(t)
	yaml := "server:\n  port: 8080\nstorage:\n  driver: sqlite\nlog_level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, "dbexplorer.yaml"), []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port: want %d, got %d", 8080, cfg.Server.Port)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("Driver: want %q, got %q", "sqlite", cfg.Storage.Driver)
	}
	if want := filepath.Join(dir, "theme.db"); cfg.Storage.Path != want {
		t.Errorf("Path: want %q, got %q", want, cfg.Storage.Path)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: want %q, got %q", "debug", cfg.LogLevel)
	}
	if cfg.ConfigFile() == "" {
		t.Error("ConfigFile should name the file that was read")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("DBEXPLORER_SERVER_PORT", "9000")
	t.Setenv("DBEXPLORER_STORAGE_DRIVER", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Port: want %d, got %d", 9000, cfg.Server.Port)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("Driver: want %q, got %q", "memory", cfg.Storage.Driver)
	}
	if cfg.Storage.Path != "" {
		t.Errorf("memory driver should have no path, got %q", cfg.Storage.Path)
	}
}

func TestLoadCustomFileMissing(t *testing.T) {
	isolate(t)
	t.Setenv(EnvConfig, filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := Load(); err == nil {
		t.Error("expected an error for a missing DBEXPLORER_CONFIG file")
	}
}

// TestSaveConfigPermissions verifies SaveConfig writes with 0600 permissions.
func TestSaveConfigPermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dbexplorer.json")

	if err := Default().SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected 0600 permissions, got %04o", perm)
	}
}

// TestSaveConfigRoundTrip writes and reads back config JSON.
func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dbexplorer.json")

	cfg := &Config{
		Server:    ServerConfig{Port: 7000, Hostname: "0.0.0.0", CORS: []string{"http://localhost:3000"}},
		Storage:   StorageConfig{Driver: "sqlite", Path: "/tmp/theme.db"},
		LogLevel:  "warn",
		LogFormat: "json",
	}
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var got Config
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Server.Port != cfg.Server.Port {
		t.Errorf("Port: want %d, got %d", cfg.Server.Port, got.Server.Port)
	}
	if got.Storage != cfg.Storage {
		t.Errorf("Storage: want %+v, got %+v", cfg.Storage, got.Storage)
	}
	if len(got.Server.CORS) != 1 || got.Server.CORS[0] != "http://localhost:3000" {
		t.Errorf("CORS: got %v", got.Server.CORS)
	}
}

func TestSet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("server.port", "6000"); err != nil {
		t.Fatalf("Set port: %v", err)
	}
	if cfg.Server.Port != 6000 {
		t.Errorf("Port: want %d, got %d", 6000, cfg.Server.Port)
	}
	if err := cfg.Set("storage.driver", "memory"); err != nil {
		t.Fatalf("Set driver: %v", err)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("Driver: want %q, got %q", "memory", cfg.Storage.Driver)
	}
	if err := cfg.Set("server.port", "abc"); err == nil {
		t.Error("expected an error for a non-numeric port")
	}
	if err := cfg.Set("provider", "x"); err == nil {
		t.Error("expected an error for an unknown key")
	}
}

func TestSetDriverReplacesDefaultedPath(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(dir, "theme.json"); cfg.Storage.Path != want {
		t.Fatalf("Path: want %q, got %q", want, cfg.Storage.Path)
	}

	if err := cfg.Set("storage.driver", "sqlite"); err != nil {
		t.Fatalf("Set driver: %v", err)
	}
	if want := filepath.Join(dir, "theme.db"); cfg.Storage.Path != want {
		t.Errorf("Path after sqlite: want %q, got %q", want, cfg.Storage.Path)
	}

	if err := cfg.Set("storage.driver", "memory"); err != nil {
		t.Fatalf("Set driver: %v", err)
	}
	if cfg.Storage.Path != "" {
		t.Errorf("Path after memory: want empty, got %q", cfg.Storage.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestSetDriverKeepsExplicitPath(t *testing.T) {
	isolate(t)
	custom := filepath.Join(t.TempDir(), "selection.json")

	cfg := Default()
	if err := cfg.Set("storage.path", custom); err != nil {
		t.Fatalf("Set path: %v", err)
	}
	if err := cfg.Set("storage.driver", "sqlite"); err != nil {
		t.Fatalf("Set driver: %v", err)
	}
	if cfg.Storage.Path != custom {
		t.Errorf("Path: want %q, got %q", custom, cfg.Storage.Path)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Port: 70000, Hostname: ""},
		Storage:   StorageConfig{Driver: "redis"},
		LogLevel:  "loud",
		LogFormat: "xml",
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 5 {
		t.Errorf("want 5 errors, got %d: %v", len(verrs), err)
	}
	for _, field := range []string{"server.port", "server.hostname", "storage.driver", "log_level", "log_format"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error should mention %s:\n%s", field, err)
		}
	}

	fileNoPath := Default()
	fileNoPath.Storage.Path = ""
	if err := fileNoPath.Validate(); err == nil || !strings.Contains(err.Error(), "storage.path") {
		t.Errorf("file driver without a path should fail, got %v", err)
	}
}

func TestAddr(t *testing.T) {
	if got := (&Config{}).Addr(); got != "localhost:5174" {
		t.Errorf("Addr: want %q, got %q", "localhost:5174", got)
	}
	cfg := &Config{Server: ServerConfig{Hostname: "0.0.0.0", Port: 80}}
	if got := cfg.Addr(); got != "0.0.0.0:80" {
		t.Errorf("Addr: want %q, got %q", "0.0.0.0:80", got)
	}
}

// TestGetConfigDir honours the override variable.
func TestGetConfigDir(t *testing.T) {
	t.Setenv(EnvConfigDir, "/tmp/dbx")
	if got := GetConfigDir(); got != "/tmp/dbx" {
		t.Errorf("GetConfigDir: want %q, got %q", "/tmp/dbx", got)
	}
}
