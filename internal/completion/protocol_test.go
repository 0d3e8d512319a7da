package completion

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redtime-cli/redtime/internal/logger"
)

// End-to-end round trips through a real provider subprocess: shell request ->
// adapter -> stub provider -> parsed channels.

func TestProtocol_EndToEnd(t *testing.T) {
	client := testClient(t, `
case "$2" in
--options)
	printf '%s\n' '--project:Log against a project' '--tag:Tag the entry'
	;;
--nth)
	printf '%s\n' today yesterday
	;;
esac
`)
	adapter := NewAdapter(client, logger.New("error", io.Discard))

	ch := adapter.Complete(context.Background(), CommandLine{Tokens: []string{"redtime", "log"}, Index: 2})

	var args, opts []string
	for _, c := range ch.Arguments {
		args = append(args, c.Value)
	}
	for _, c := range ch.Options {
		opts = append(opts, c.Value)
	}
	assert.Equal(t, []string{"today", "yesterday"}, args)
	assert.Equal(t, []string{"--project", "--tag"}, opts)
}

func TestProtocol_OptionsFailureLeavesArgumentsIntact(t *testing.T) {
	// Options branch exits 1 with empty stdout; arguments must be unaffected.
	client := testClient(t, `
case "$2" in
--options)
	exit 1
	;;
--nth)
	printf '%s\n' today yesterday
	;;
esac
`)
	adapter := NewAdapter(client, logger.New("error", io.Discard))

	ch := adapter.OnSubcommandCompletion(context.Background(), CommandLine{Tokens: []string{"redtime", "log"}, Index: 2})

	require.Len(t, ch.Arguments, 2)
	assert.Empty(t, ch.Options)
}

func TestProtocol_TopLevel(t *testing.T) {
	client := testClient(t, `
test "$#" = 1 || exit 2
printf '%s\n' 'log:Create new time entry' 'projects:Show projects'
`)
	adapter := NewAdapter(client, logger.New("error", io.Discard))

	ch := adapter.Complete(context.Background(), CommandLine{Tokens: []string{"redtime", "pro"}, Index: 1})

	require.Len(t, ch.Commands, 1)
	assert.Equal(t, "projects", ch.Commands[0].Value)
	require.Len(t, ch.Options, 1)
	assert.Equal(t, "--help", ch.Options[0].Value)
}
