package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"lindle/internal/crypto"
)

// EnvPrefix prefixes every environment variable the configuration reads.
const EnvPrefix = "LINDLE_"

// envKeys maps environment variables (without prefix) to config keys.
var envKeys = map[string]string{
	"HOST":              "lindle.host",
	"JOURNEY_HOST":      "lindle.journey_host",
	"API_KEY":           "lindle.api_key",
	"API_KEY_ENCRYPTED": "lindle.api_key_encrypted",
	"TIMEOUT":           "lindle.timeout",
	"STRICT":            "lindle.strict",
	"SERVER_PORT":       "server.port",
	"LOG_LEVEL":         "log_level",
	"LOG_FORMAT":        "log_format",
}

type ConfigLindle struct {
	Host            string        `koanf:"host" validate:"required,url"`
	JourneyHost     string        `koanf:"journey_host" validate:"required,url"`
	APIKey          string        `koanf:"api_key" validate:"required_without=APIKeyEncrypted"`
	APIKeyEncrypted string        `koanf:"api_key_encrypted" validate:"omitempty,base64"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	Strict          bool          `koanf:"strict"`
}

type Config struct {
	Lindle ConfigLindle `koanf:"lindle"`
	Server struct {
		Port int `koanf:"port" validate:"min=1,max=65535"`
	} `koanf:"server"`
	LogLevel  string `koanf:"log_level" validate:"oneof=error warn info debug"`
	LogFormat string `koanf:"log_format" validate:"oneof=console json"`
}

func (c *Config) Validate() error {
	validate := validator.New()
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return fmt.Errorf("configuration validation failed: %v", validationErrors)
	}

	return err
}

// APIKey returns the plaintext API key. An encrypted key takes precedence and
// is decrypted with passphrase.
func (c *Config) APIKey(passphrase string) (string, error) {
	if c.Lindle.APIKeyEncrypted == "" {
		return c.Lindle.APIKey, nil
	}
	if passphrase == "" {
		return "", fmt.Errorf("lindle.api_key_encrypted is set but no passphrase was given (set %sPASSPHRASE)", EnvPrefix)
	}
	key, err := crypto.Decrypt(c.Lindle.APIKeyEncrypted, passphrase)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt API key: %w", err)
	}
	return key, nil
}

// Load reads defaults, then the YAML file at path (skipped when path is
// empty), then LINDLE_* environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	parser := yaml.Parser()

	if err := setDefaultValues(k); err != nil {
		return nil, err
	}

	if path != "" {
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// envKey translates LINDLE_API_KEY into lindle.api_key. Unknown variables
// map to "" and are ignored.
func envKey(s string) string {
	return envKeys[strings.TrimPrefix(s, EnvPrefix)]
}

func setDefaultValues(k *koanf.Koanf) error {
	return k.Load(confmap.Provider(map[string]any{
		"lindle.host":         "https://www.lindle.me",
		"lindle.journey_host": "https://lindle.click/",
		"lindle.timeout":      "10s",
		"lindle.strict":       true,
		"server.port":         8080,
		"log_level":           "info",
		"log_format":          "console",
	}, "."), nil)
}
