package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/redtime-cli/redtime/internal/shell"
)

// HookParams contains parameters for the Hook command
type HookParams struct {
	Shell string // bash, zsh, or auto
	Tool  string // tool name wired into the generated script
	Out   io.Writer
}

// Hook prints the shell completion registration script for manual
// installation via eval or a completion directory.
func Hook(params HookParams) error {
	out := params.Out
	if out == nil {
		out = os.Stdout
	}

	name := params.Shell
	if name == "" || name == "auto" {
		name = shell.DetectShell()
		if name == "" {
			name = shell.Bash
		}
	}

	gen, err := shell.NewCompletionGenerator(name)
	if err != nil {
		return err
	}

	script, err := gen.GenerateCompletionScript(params.Tool)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, script)
	return nil
}
