package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"lindle/internal/crypto"
)

func writeConfig(t *testing.T, config map[string]any) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	data, err := yaml.Marshal(config)
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return configPath
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		config  map[string]any
		wantErr bool
	}{
		{
			name: "valid config",
			config: map[string]any{
				"lindle": map[string]any{
					"host":    "https://www.lindle.me",
					"api_key": "test-api-key",
				},
				"server": map[string]any{
					"port": 8080,
				},
			},
			wantErr: false,
		},
		{
			name: "valid config with encrypted key only",
			config: map[string]any{
				"lindle": map[string]any{
					"api_key_encrypted": "c2VjcmV0",
				},
			},
			wantErr: false,
		},
		{
			name: "invalid config missing api key",
			config: map[string]any{
				"lindle": map[string]any{
					"host": "https://www.lindle.me",
				},
			},
			wantErr: true,
		},
		{
			name: "invalid encrypted key encoding",
			config: map[string]any{
				"lindle": map[string]any{
					"api_key_encrypted": "not base64!",
				},
			},
			wantErr: true,
		},
		{
			name: "invalid server.port too high",
			config: map[string]any{
				"lindle": map[string]any{
					"api_key": "test-api-key",
				},
				"server": map[string]any{
					"port": 65536,
				},
			},
			wantErr: true,
		},
		{
			name: "invalid lindle.host format",
			config: map[string]any{
				"lindle": map[string]any{
					"host":    "invalid-url",
					"api_key": "test-api-key",
				},
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			config: map[string]any{
				"lindle": map[string]any{
					"api_key": "test-api-key",
				},
				"log_level": "verbose",
			},
			wantErr: true,
		},
		{
			name: "invalid timeout",
			config: map[string]any{
				"lindle": map[string]any{
					"api_key": "test-api-key",
					"timeout": "0s",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.config))

			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, map[string]any{
		"lindle": map[string]any{"api_key": "test-api-key"},
	}))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Lindle.Host != "https://www.lindle.me" {
		t.Errorf("Expected default host, got %s", cfg.Lindle.Host)
	}
	if cfg.Lindle.JourneyHost != "https://lindle.click/" {
		t.Errorf("Expected default journey host, got %s", cfg.Lindle.JourneyHost)
	}
	if cfg.Lindle.Timeout != 10*time.Second {
		t.Errorf("Expected default timeout of 10s, got %s", cfg.Lindle.Timeout)
	}
	if !cfg.Lindle.Strict {
		t.Error("Expected strict decoding by default")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("Expected info/console logging, got %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("LINDLE_API_KEY", "env-api-key")
	t.Setenv("LINDLE_SERVER_PORT", "9090")
	t.Setenv("LINDLE_LOG_LEVEL", "debug")
	t.Setenv("LINDLE_UNRELATED", "ignored")

	cfg, err := Load(writeConfig(t, map[string]any{
		"lindle": map[string]any{"api_key": "file-api-key"},
	}))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Lindle.APIKey != "env-api-key" {
		t.Errorf("Expected env API key to win, got %s", cfg.Lindle.APIKey)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("LINDLE_API_KEY", "env-api-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Lindle.APIKey != "env-api-key" {
		t.Errorf("Expected env API key, got %s", cfg.Lindle.APIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file, got nil")
	}
}

func TestAPIKey(t *testing.T) {
	encrypted, err := crypto.Encrypt("plain-api-key", "hunter2")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	plain := &Config{Lindle: ConfigLindle{APIKey: "plain-api-key"}}
	if key, err := plain.APIKey(""); err != nil || key != "plain-api-key" {
		t.Errorf("Expected plain key, got %q (err %v)", key, err)
	}

	cfg := &Config{Lindle: ConfigLindle{APIKey: "ignored", APIKeyEncrypted: encrypted}}
	key, err := cfg.APIKey("hunter2")
	if err != nil {
		t.Fatalf("APIKey failed: %v", err)
	}
	if key != "plain-api-key" {
		t.Errorf("Expected decrypted key, got %q", key)
	}

	if _, err := cfg.APIKey(""); err == nil {
		t.Error("Expected error without passphrase, got nil")
	}
	if _, err := cfg.APIKey("wrong"); err == nil {
		t.Error("Expected error for wrong passphrase, got nil")
	}
}
