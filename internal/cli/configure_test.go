package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/redtime-cli/redtime/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_APIKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	var out bytes.Buffer
	require.NoError(t, Configure(ConfigureParams{
		ConfigPath: path,
		APIURL:     "https://redmine.example.com/",
		APIKey:     "secret-key",
		Out:        &out,
	}))
	assert.Contains(t, out.String(), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	// Secret never lands on disk in the clear
	assert.NotContains(t, string(content), "secret-key")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://redmine.example.com", cfg.APIURL, "trailing slash trimmed")

	key, err := cfg.APIKeyPlain()
	require.NoError(t, err)
	assert.Equal(t, "secret-key", key)
}

func TestConfigure_BasicAuth_AskPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	var out bytes.Buffer
	require.NoError(t, Configure(ConfigureParams{
		ConfigPath:  path,
		APIURL:      "https://redmine.example.com",
		Username:    "alice",
		AskPassword: true,
		In:          strings.NewReader("hunter2\n"),
		Out:         &out,
	}))
	assert.Contains(t, out.String(), "Password: ")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.Username)

	password, err := cfg.PasswordPlain()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", password)
}

func TestConfigure_MissingAPIURL(t *testing.T) {
	err := Configure(ConfigureParams{
		ConfigPath: filepath.Join(t.TempDir(), "config.json"),
		APIKey:     "key",
		Out:        &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_url")
}

func TestConfigure_BothAuthMethods(t *testing.T) {
	err := Configure(ConfigureParams{
		ConfigPath: filepath.Join(t.TempDir(), "config.json"),
		APIURL:     "https://redmine.example.com",
		APIKey:     "key",
		Username:   "alice",
		Password:   "pw",
		Out:        &bytes.Buffer{},
	})
	require.Error(t, err)
}
