// Package config handles loading and validation of redtime configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	koanfjson "github.com/knadh/koanf/parsers/json"
	koanftoml "github.com/knadh/koanf/parsers/toml"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/redtime-cli/redtime/internal/derrors"
)

// SupportedConfigNames contains supported configuration file names, in order
// of preference.
var SupportedConfigNames = []string{
	"config.yml",
	"config.yaml",
	"config.toml",
	"config.json",
}

// Config is the redtime configuration. Secrets (api_key, password) are
// stored in the obfuscated on-disk form; use APIKeyPlain/PasswordPlain.
type Config struct {
	APIURL   string `koanf:"api_url" json:"api_url"`
	APIKey   string `koanf:"api_key" json:"api_key,omitempty"`
	Username string `koanf:"username" json:"username,omitempty"`
	Password string `koanf:"password" json:"password,omitempty"`
}

// Dir returns the redtime configuration directory (XDG).
func Dir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "redtime")
}

// DefaultPath returns the first existing config file under Dir, or the
// preferred name when none exists yet.
func DefaultPath() string {
	dir := Dir()
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(dir, "config.json")
}

// parserFor picks a koanf parser by file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return koanfyaml.Parser(), nil
	case ".toml":
		return koanftoml.Parser(), nil
	case ".json":
		return koanfjson.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
}

// Load reads and unmarshals the config file at path.
func Load(path string) (*Config, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "unsupported config format", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load config", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to parse config", err)
	}
	return &cfg, nil
}

// LoadBytes unmarshals config content of the given format ("yaml", "toml",
// "json") without touching the filesystem.
func LoadBytes(content []byte, format string) (*Config, error) {
	parser, err := parserFor("config." + format)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), parser); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks semantic constraints the schema cannot express alone.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return derrors.NewConfigurationError("", "api_url is required", nil)
	}
	if c.APIKey == "" && c.Username == "" {
		return derrors.NewConfigurationError("", "either api_key or username/password is required", nil)
	}
	if c.APIKey != "" && c.Username != "" {
		return derrors.NewConfigurationError("", "api_key and username/password are mutually exclusive", nil)
	}
	return nil
}

// APIKeyPlain returns the deobfuscated API key.
func (c *Config) APIKeyPlain() (string, error) {
	if c.APIKey == "" {
		return "", nil
	}
	return DecodeSecret(c.APIKey)
}

// PasswordPlain returns the deobfuscated password.
func (c *Config) PasswordPlain() (string, error) {
	if c.Password == "" {
		return "", nil
	}
	return DecodeSecret(c.Password)
}

// Write persists the config as JSON, the format the legacy tool always
// wrote, creating the directory when needed.
func Write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return derrors.NewConfigurationError(path, "failed to create config directory", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return derrors.NewConfigurationError(path, "failed to encode config", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return derrors.NewConfigurationError(path, "failed to write config", err)
	}
	return nil
}
