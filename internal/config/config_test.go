package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yml", "api_url: https://redmine.example.com\napi_key: B0B0\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://redmine.example.com", cfg.APIURL)
	assert.Equal(t, "B0B0", cfg.APIKey)
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"api_url":"https://redmine.example.com","username":"alice","password":"B0B0"}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "alice", cfg.Username)
	assert.Equal(t, "B0B0", cfg.Password)
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "config.toml", "api_url = \"https://redmine.example.com\"\napi_key = \"B0B0\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://redmine.example.com", cfg.APIURL)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "config.ini", "api_url=x\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "config.yml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "api key auth",
			cfg:  Config{APIURL: "https://redmine.example.com", APIKey: "B0B0"},
		},
		{
			name: "basic auth",
			cfg:  Config{APIURL: "https://redmine.example.com", Username: "alice", Password: "B0B0"},
		},
		{
			name:    "missing url",
			cfg:     Config{APIKey: "B0B0"},
			wantErr: "api_url is required",
		},
		{
			name:    "no credentials",
			cfg:     Config{APIURL: "https://redmine.example.com"},
			wantErr: "either api_key or username/password",
		},
		{
			name:    "conflicting credentials",
			cfg:     Config{APIURL: "x", APIKey: "k", Username: "alice"},
			wantErr: "mutually exclusive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestWriteAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redtime", "config.json")
	cfg := &Config{
		APIURL: "https://redmine.example.com",
		APIKey: EncodeSecret("s3cret"),
	}

	require.NoError(t, Write(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.APIURL, loaded.APIURL)

	key, err := loaded.APIKeyPlain()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", key)
}

func TestDefaultPath_PrefersExistingFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	// No file yet: preferred write target.
	assert.Equal(t, filepath.Join(dir, "redtime", "config.json"), DefaultPath())

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "redtime"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "redtime", "config.yaml"), []byte("api_url: x\n"), 0600))
	assert.Equal(t, filepath.Join(dir, "redtime", "config.yaml"), DefaultPath())
}

func TestLoadBytes(t *testing.T) {
	cfg, err := LoadBytes([]byte(`{"api_url":"https://x"}`), "json")
	require.NoError(t, err)
	assert.Equal(t, "https://x", cfg.APIURL)

	_, err = LoadBytes([]byte("api_url: [broken"), "yaml")
	assert.Error(t, err)
}
