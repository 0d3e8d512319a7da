package shell

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const (
	// Bash identifies the GNU bash shell.
	Bash = "bash"
	// Zsh identifies the Z shell.
	Zsh = "zsh"
)

// CodeGenerator is an interface for shell-specific completion code generation
// Implementations generate shell code for bash, zsh, etc.
type CodeGenerator interface {
	// GenerateCompletionScript renders the completion script wiring the
	// given tool into the shell's completion system
	GenerateCompletionScript(tool string) (string, error)
	// Name returns the shell name (bash, zsh, etc.)
	Name() string
}

type templateData struct {
	Tool string
}

func render(name, text string, data templateData) (string, error) {
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return buf.String(), nil
}

// BashCodeGenerator generates bash-specific shell completion code
type BashCodeGenerator struct{}

// Name returns the shell name for bash
func (b *BashCodeGenerator) Name() string {
	return Bash
}

// GenerateCompletionScript renders the bash completion function
func (b *BashCodeGenerator) GenerateCompletionScript(tool string) (string, error) {
	return render(Bash, bashTemplate, templateData{Tool: tool})
}

// ZshCodeGenerator generates zsh-specific shell completion code
type ZshCodeGenerator struct{}

// Name returns the shell name for zsh
func (z *ZshCodeGenerator) Name() string {
	return Zsh
}

// GenerateCompletionScript renders the zsh completion widget
func (z *ZshCodeGenerator) GenerateCompletionScript(tool string) (string, error) {
	return render(Zsh, zshTemplate, templateData{Tool: tool})
}

// NewCompletionGenerator creates the shell code generator for the given
// shell type
func NewCompletionGenerator(shell string) (CodeGenerator, error) {
	switch shell {
	case Bash:
		return &BashCodeGenerator{}, nil
	case Zsh:
		return &ZshCodeGenerator{}, nil
	default:
		return nil, fmt.Errorf("unsupported shell: %q (supported: bash, zsh)", shell)
	}
}

// DetectShell guesses the current shell from the SHELL environment
// variable. Returns an empty string when it cannot tell.
func DetectShell() string {
	switch filepath.Base(os.Getenv("SHELL")) {
	case Bash:
		return Bash
	case Zsh:
		return Zsh
	}
	return ""
}
