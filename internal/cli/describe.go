package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/redtime-cli/redtime/internal/completion"
	"github.com/redtime-cli/redtime/internal/logger"
)

// DescribeParams contains parameters for the Describe command
type DescribeParams struct {
	Bin      string // Provider binary override, empty for self
	LogLevel string
	Words    []string // Words in the command line (COMP_WORDS)
	Index    int      // Index of the word being completed (COMP_CWORD)
	Timeout  time.Duration
	Out      io.Writer
}

// Describe bridges the shell completion functions to the provider. It emits
// channel-tagged lines (cmd/arg/opt, tab separated) and never fails the
// shell: provider trouble just means fewer candidates.
func Describe(params DescribeParams) error {
	log := logger.New(params.LogLevel, os.Stderr)
	out := params.Out
	if out == nil {
		out = os.Stdout
	}

	if len(params.Words) == 0 {
		return nil
	}

	client := completion.NewClient(params.Bin, log)
	if params.Timeout > 0 {
		client = client.WithTimeout(params.Timeout)
	}

	adapter := completion.NewAdapter(client, log)
	line := completion.CommandLine{Tokens: params.Words, Index: params.Index}

	channels := adapter.Complete(context.Background(), line)
	return channels.Render(out)
}
