package completion

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redtime-cli/redtime/internal/logger"
)

// fakeProvider implements ProviderClient with canned responses.
type fakeProvider struct {
	commands  []Candidate
	arguments []Candidate
	options   []Candidate

	commandsErr  error
	argumentsErr error
	optionsErr   error
}

func (f *fakeProvider) ListCommands(_ context.Context) ([]Candidate, error) {
	return f.commands, f.commandsErr
}

func (f *fakeProvider) ListArguments(_ context.Context, _ []string, _ int) ([]Candidate, error) {
	return f.arguments, f.argumentsErr
}

func (f *fakeProvider) ListOptions(_ context.Context, _ string) ([]Candidate, error) {
	return f.options, f.optionsErr
}

func newAdapter(provider ProviderClient) *Adapter {
	return NewAdapter(provider, logger.New("error", io.Discard))
}

func commandSet() []Candidate {
	return []Candidate{
		{Value: "log", Description: "Create new time entry", Kind: KindCommand},
		{Value: "log-entry", Description: "Modifies time entry", Kind: KindCommand},
		{Value: "projects", Description: "Show projects", Kind: KindCommand},
	}
}

func TestOnCommandCompletion_PrefixFilterInProviderOrder(t *testing.T) {
	adapter := newAdapter(&fakeProvider{commands: commandSet()})

	ch := adapter.Complete(context.Background(), CommandLine{Tokens: []string{"redtime", "lo"}, Index: 1})

	var values []string
	for _, c := range ch.Commands {
		values = append(values, c.Value)
	}
	assert.Equal(t, []string{"log", "log-entry"}, values)
	assert.Empty(t, ch.Arguments)
}

func TestOnCommandCompletion_EmptyPrefixReturnsAll(t *testing.T) {
	adapter := newAdapter(&fakeProvider{commands: commandSet()})

	ch := adapter.OnCommandCompletion(context.Background(), CommandLine{Tokens: []string{"redtime"}, Index: 1})
	assert.Len(t, ch.Commands, 3)
}

func TestOnCommandCompletion_HelpFallbackAlwaysPresent(t *testing.T) {
	// Provider entirely unreachable: --help must still be offered.
	adapter := newAdapter(&fakeProvider{commandsErr: errors.New("spawn failed")})

	ch := adapter.OnCommandCompletion(context.Background(), CommandLine{Tokens: []string{"redtime"}, Index: 1})

	assert.Empty(t, ch.Commands)
	require.Len(t, ch.Options, 1)
	assert.Equal(t, "--help", ch.Options[0].Value)
}

func TestOnSubcommandCompletion_BothChannels(t *testing.T) {
	adapter := newAdapter(&fakeProvider{
		arguments: []Candidate{
			{Value: "today", Kind: KindArgument},
			{Value: "yesterday", Kind: KindArgument},
		},
		options: []Candidate{
			{Value: "--project", Kind: KindOption},
			{Value: "--tag", Kind: KindOption},
		},
	})

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

func TestOnSubcommandCompletion_FailOpenPerChannel(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
		wantArgs int
		wantOpts int
	}{
		{
			name: "options fail, arguments survive",
			provider: &fakeProvider{
				arguments:  []Candidate{{Value: "today", Kind: KindArgument}},
				optionsErr: errors.New("exit status 1"),
			},
			wantArgs: 1,
			wantOpts: 0,
		},
		{
			name: "arguments fail, options survive",
			provider: &fakeProvider{
				options:      []Candidate{{Value: "--tag", Kind: KindOption}},
				argumentsErr: errors.New("timeout"),
			},
			wantArgs: 0,
			wantOpts: 1,
		},
		{
			name:     "both fail, still no panic",
			provider: &fakeProvider{argumentsErr: errors.New("x"), optionsErr: errors.New("y")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := newAdapter(tt.provider)
			ch := adapter.OnSubcommandCompletion(context.Background(), CommandLine{Tokens: []string{"redtime", "log"}, Index: 2})
			assert.Len(t, ch.Arguments, tt.wantArgs)
			assert.Len(t, ch.Options, tt.wantOpts)
		})
	}
}

func TestOnSubcommandCompletion_KindIsolation(t *testing.T) {
	adapter := newAdapter(&fakeProvider{
		arguments: []Candidate{{Value: "today", Kind: KindArgument}},
		options:   []Candidate{{Value: "--tag", Kind: KindOption}},
	})

	ch := adapter.OnSubcommandCompletion(context.Background(), CommandLine{Tokens: []string{"redtime", "log"}, Index: 2})

	for _, c := range ch.Arguments {
		assert.Equal(t, KindArgument, c.Kind)
	}
	for _, c := range ch.Options {
		assert.Equal(t, KindOption, c.Kind)
	}
}

func TestOnSubcommandCompletion_Deduplicates(t *testing.T) {
	adapter := newAdapter(&fakeProvider{
		arguments: []Candidate{
			{Value: "today", Kind: KindArgument},
			{Value: "today", Kind: KindArgument},
			{Value: "yesterday", Kind: KindArgument},
		},
	})

	ch := adapter.OnSubcommandCompletion(context.Background(), CommandLine{Tokens: []string{"redtime", "log"}, Index: 2})
	assert.Len(t, ch.Arguments, 2)
	assert.Equal(t, "today", ch.Arguments[0].Value, "first occurrence wins, order preserved")
}

func TestComplete_Idempotent(t *testing.T) {
	adapter := newAdapter(&fakeProvider{
		arguments: []Candidate{{Value: "today", Kind: KindArgument}},
		options:   []Candidate{{Value: "--tag", Kind: KindOption}},
	})
	line := CommandLine{Tokens: []string{"redtime", "log"}, Index: 2}

	first := adapter.Complete(context.Background(), line)
	second := adapter.Complete(context.Background(), line)
	assert.Equal(t, first, second)
}

func TestChannels_Render(t *testing.T) {
	ch := Channels{
		Arguments: []Candidate{{Value: "today", Description: "spent on", Kind: KindArgument}},
		Options:   []Candidate{{Value: "--tag", Kind: KindOption}},
	}

	var buf bytes.Buffer
	require.NoError(t, ch.Render(&buf))

	assert.Equal(t, "arg\ttoday\tspent on\nopt\t--tag\t\n", buf.String())
}

func TestCommandLine_Current(t *testing.T) {
	line := CommandLine{Tokens: []string{"redtime", "lo"}, Index: 1}
	assert.Equal(t, "lo", line.Current())

	line = CommandLine{Tokens: []string{"redtime", "log"}, Index: 2}
	assert.Empty(t, line.Current(), "cursor past the last token means a fresh word")
	assert.Equal(t, "log", line.Subcommand())
}
