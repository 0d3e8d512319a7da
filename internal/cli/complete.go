package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/redtime-cli/redtime/internal/completion"
	"github.com/redtime-cli/redtime/internal/logger"
	"github.com/redtime-cli/redtime/internal/registry"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	ConfigPath string
	CachePath  string
	LogLevel   string
	Tokens     []string // Command line tokens after "--"
	Nth        int      // Token index being completed, 0-based
	Options    bool     // List the sub-command's options instead of arguments
	Out        io.Writer
}

// Complete answers a single completion request on stdout, one candidate per
// line in value:description form. An empty answer is not an error.
func Complete(params CompleteParams) error {
	log := logger.New(params.LogLevel, os.Stderr)
	out := params.Out
	if out == nil {
		out = os.Stdout
	}

	reg := registry.Default()

	if params.Options {
		if len(params.Tokens) == 0 {
			return nil
		}
		provider := completion.NewProvider(reg, nil, log)
		return printCandidates(out, provider.ListOptions(params.Tokens[0]))
	}

	if len(params.Tokens) == 0 {
		provider := completion.NewProvider(reg, nil, log)
		return printCandidates(out, provider.ListCommands())
	}

	// Argument completion consults the catalog. A missing or broken
	// configuration means no candidates, never an error on this surface.
	source, err := newCatalogSource(params.ConfigPath, params.CachePath)
	if err != nil {
		log.Debug().Err(err).Msg("Catalog unavailable, no argument candidates")
		return nil
	}
	defer func() { _ = source.Save() }()

	provider := completion.NewProvider(reg, source, log)
	return printCandidates(out, provider.ListArguments(context.Background(), params.Tokens, params.Nth))
}

func printCandidates(w io.Writer, candidates []completion.Candidate) error {
	for _, c := range candidates {
		if _, err := fmt.Fprintln(w, completion.EncodeLine(c)); err != nil {
			return err
		}
	}
	return nil
}
