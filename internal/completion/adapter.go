package completion

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/redtime-cli/redtime/internal/logger"
)

// ProviderClient is the adapter's view of a completion provider.
type ProviderClient interface {
	ListCommands(ctx context.Context) ([]Candidate, error)
	ListArguments(ctx context.Context, tokens []string, nth int) ([]Candidate, error)
	ListOptions(ctx context.Context, commandName string) ([]Candidate, error)
}

// Channels carries completion results split by presentation bucket.
// Commands and Arguments share the shell's description primitive; Options go
// through the dash-aware option primitive.
type Channels struct {
	Commands  []Candidate
	Arguments []Candidate
	Options   []Candidate
}

// helpFallback is always offered at the top level, even when the provider
// is entirely unreachable.
var helpFallback = Candidate{Value: "--help", Description: "Show help", Kind: KindOption}

// Adapter bridges a shell completion request to the provider.
//
// Every provider failure is absorbed here: a failing call contributes zero
// candidates and the rest of the request proceeds. The user must never see
// an error mid-keystroke.
type Adapter struct {
	client ProviderClient
	log    *logger.Logger
}

// NewAdapter creates an adapter over the given provider client.
func NewAdapter(client ProviderClient, log *logger.Logger) *Adapter {
	return &Adapter{client: client, log: log}
}

// Complete dispatches a command line snapshot to the right handler.
func (a *Adapter) Complete(ctx context.Context, line CommandLine) Channels {
	if line.Index <= 1 {
		return a.OnCommandCompletion(ctx, line)
	}
	return a.OnSubcommandCompletion(ctx, line)
}

// OnCommandCompletion handles completion of the first token: which
// sub-command to run. Candidates come from ListCommands, filtered by the
// partial prefix, in provider order.
func (a *Adapter) OnCommandCompletion(ctx context.Context, line CommandLine) Channels {
	commands, err := a.client.ListCommands(ctx)
	if err != nil {
		a.log.Debug().Err(err).Msg("command completion failed open")
		commands = nil
	}

	prefix := line.Current()
	filtered := []Candidate{}
	for _, c := range commands {
		if strings.HasPrefix(c.Value, prefix) {
			filtered = append(filtered, c)
		}
	}

	return Channels{
		Commands: dedupe(filtered),
		Options:  []Candidate{helpFallback},
	}
}

// OnSubcommandCompletion handles every token after the first: positional
// candidates for the cursor position plus the active sub-command's options.
// The two provider calls are independent and run concurrently; either may
// fail without affecting the other.
func (a *Adapter) OnSubcommandCompletion(ctx context.Context, line CommandLine) Channels {
	var (
		wg        sync.WaitGroup
		arguments []Candidate
		options   []Candidate
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		result, err := a.client.ListArguments(ctx, line.Tokens, line.Index)
		if err != nil {
			a.log.Debug().Err(err).Msg("argument completion failed open")
			return
		}
		arguments = result
	}()
	go func() {
		defer wg.Done()
		result, err := a.client.ListOptions(ctx, line.Subcommand())
		if err != nil {
			a.log.Debug().Err(err).Msg("option completion failed open")
			return
		}
		options = result
	}()
	wg.Wait()

	return Channels{
		Arguments: dedupe(arguments),
		Options:   dedupe(options),
	}
}

// dedupe removes duplicate values while preserving provider order, which is
// the ranking signal.
func dedupe(candidates []Candidate) []Candidate {
	if candidates == nil {
		return []Candidate{}
	}
	return lo.UniqBy(candidates, func(c Candidate) string { return c.Value })
}

// Render writes the channels in the tab-separated form the generated shell
// functions partition: "<kind>\t<value>\t<description>".
func (ch Channels) Render(w io.Writer) error {
	write := func(candidates []Candidate) error {
		for _, c := range candidates {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", c.Kind, c.Value, c.Description); err != nil {
				return err
			}
		}
		return nil
	}

	if err := write(ch.Commands); err != nil {
		return err
	}
	if err := write(ch.Arguments); err != nil {
		return err
	}
	return write(ch.Options)
}
