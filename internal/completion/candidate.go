// Package completion implements the redtime completion protocol: a provider
// that computes candidates from the command registry and catalog, and an
// adapter that bridges shell completion requests to a provider subprocess.
package completion

// Kind classifies a candidate for shell-side presentation. The shell groups
// and formats each kind differently, so kinds never mix within a channel.
type Kind string

// Candidate kinds.
const (
	KindCommand  Kind = "cmd"
	KindArgument Kind = "arg"
	KindOption   Kind = "opt"
)

// Candidate is a single suggested completion.
type Candidate struct {
	Value       string
	Description string
	Kind        Kind
}

// CommandLine is an immutable snapshot of what the user has typed.
// Tokens[0] is the tool name; Index is the 0-based position of the token
// being completed and may equal len(Tokens) when a fresh token is started.
type CommandLine struct {
	Tokens []string
	Index  int
}

// Current returns the partial token under the cursor, empty when the cursor
// sits on a token not yet typed.
func (l CommandLine) Current() string {
	if l.Index >= 0 && l.Index < len(l.Tokens) {
		return l.Tokens[l.Index]
	}
	return ""
}

// Subcommand returns the first token after the tool name.
func (l CommandLine) Subcommand() string {
	if len(l.Tokens) > 1 {
		return l.Tokens[1]
	}
	return ""
}
