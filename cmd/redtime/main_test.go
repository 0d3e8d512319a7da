package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogCachePath_XDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	got := catalogCachePath()
	assert.Equal(t, filepath.Join("/tmp/xdg-cache", "redtime", "catalog.json"), got)
}

func TestCatalogCachePath_Default(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	got := catalogCachePath()
	assert.True(t, strings.HasSuffix(got, filepath.Join(".cache", "redtime", "catalog.json")), got)
}

func TestDescribeArgs(t *testing.T) {
	tests := []struct {
		name      string
		argv      []string
		cword     string
		wantIndex int
		wantShell string
		wantWords []string
	}{
		{
			name:      "explicit index",
			argv:      []string{"--index", "2", "--", "redtime", "log", ""},
			wantIndex: 2,
			wantWords: []string{"redtime", "log", ""},
		},
		{
			name:      "shell flag",
			argv:      []string{"--shell", "zsh", "--index", "1", "--", "redtime", "lo"},
			wantIndex: 1,
			wantShell: "zsh",
			wantWords: []string{"redtime", "lo"},
		},
		{
			name:      "index from environment",
			argv:      []string{"--", "redtime", "log", "--project"},
			cword:     "3",
			wantIndex: 3,
			wantWords: []string{"redtime", "log", "--project"},
		},
		{
			name:      "index defaults to last word",
			argv:      []string{"--", "redtime", "log"},
			wantIndex: 1,
			wantWords: []string{"redtime", "log"},
		},
		{
			name:      "words looking like flags stay verbatim",
			argv:      []string{"--index", "2", "--", "redtime", "log-entry", "--rm"},
			wantIndex: 2,
			wantWords: []string{"redtime", "log-entry", "--rm"},
		},
		{
			name:      "no words",
			argv:      []string{"--index", "0"},
			wantIndex: 0,
			wantWords: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cword != "" {
				t.Setenv("REDTIME_COMP_CWORD", tt.cword)
			} else {
				t.Setenv("REDTIME_COMP_CWORD", "")
			}

			index, shell, words := describeArgs(tt.argv)
			assert.Equal(t, tt.wantIndex, index)
			assert.Equal(t, tt.wantShell, shell)
			assert.Equal(t, tt.wantWords, words)
		})
	}
}
