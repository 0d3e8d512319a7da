package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeStubProvider writes a shell script standing in for the provider
// binary, mirroring how the generated shell functions talk to it.
func writeStubProvider(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "redtime-stub")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755))
	return path
}

func TestDescribe_TopLevel(t *testing.T) {
	bin := writeStubProvider(t, `printf '%s\n' 'log:Create new time entry' 'log-entry:Modifies time entry' 'projects:Show projects'`)

	var buf bytes.Buffer
	require.NoError(t, Describe(DescribeParams{
		Bin:   bin,
		Words: []string{"redtime", "log"},
		Index: 1,
		Out:   &buf,
	}))

	// Host-side prefix filter plus the static help fallback
	assert.Equal(t,
		"cmd\tlog\tCreate new time entry\n"+
			"cmd\tlog-entry\tModifies time entry\n"+
			"opt\t--help\tShow help\n",
		buf.String())
}

func TestDescribe_Subcommand(t *testing.T) {
	bin := writeStubProvider(t, `case "$1 $2" in
"complete --options") printf '%s\n' '--rm:Remove the log entry' ;;
"complete --nth") printf '%s\n' '1204:Fix login' ;;
esac`)

	var buf bytes.Buffer
	require.NoError(t, Describe(DescribeParams{
		Bin:   bin,
		Words: []string{"redtime", "log-entry", ""},
		Index: 2,
		Out:   &buf,
	}))

	assert.Equal(t,
		"arg\t1204\tFix login\n"+
			"opt\t--rm\tRemove the log entry\n",
		buf.String())
}

func TestDescribe_ProviderMissing_FailsOpen(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Describe(DescribeParams{
		Bin:   filepath.Join(t.TempDir(), "no-such-binary"),
		Words: []string{"redtime", ""},
		Index: 1,
		Out:   &buf,
	}))

	// Provider gone: commands channel empty, help still offered
	assert.Equal(t, "opt\t--help\tShow help\n", buf.String())
}

func TestDescribe_NoWords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Describe(DescribeParams{Out: &buf}))
	assert.Empty(t, buf.String())
}
