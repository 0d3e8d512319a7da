// Package registry describes the redtime command surface for completion.
//
// The completion provider answers every request from this metadata: command
// names and usage lines, positional parameters with their kinds, and options
// with help text. Keeping it as plain data means a completion request never
// touches command execution.
package registry

import "strings"

// ArgKind classifies a positional parameter for candidate generation.
type ArgKind string

// Known argument kinds.
const (
	KindNone         ArgKind = ""
	KindProject      ArgKind = "project"
	KindIssue        ArgKind = "issue"
	KindActivity     ArgKind = "activity"
	KindHours        ArgKind = "hours"
	KindDescription  ArgKind = "description"
	KindDate         ArgKind = "date"
	KindTimeEntry    ArgKind = "time_entry"
	KindProjectName  ArgKind = "project_name"
	KindIssueSubject ArgKind = "issue_subject"
	KindActivityName ArgKind = "activity_name"
	KindFile         ArgKind = "file"
)

// Arg is a positional parameter of a sub-command.
type Arg struct {
	Name     string
	Kind     ArgKind
	Required bool
	Variadic bool
}

// Option is a flag of a sub-command.
type Option struct {
	Names      []string // primary name first, aliases after
	Usage      string
	TakesValue bool
}

// Primary returns the canonical option name.
func (o Option) Primary() string {
	if len(o.Names) == 0 {
		return ""
	}
	return o.Names[0]
}

// Matches reports whether name is one of the option's spellings.
func (o Option) Matches(name string) bool {
	for _, n := range o.Names {
		if n == name {
			return true
		}
	}
	return false
}

// Command describes one sub-command.
type Command struct {
	Name    string
	Usage   string
	Args    []Arg
	Options []Option
}

// Option finds the option matching the given token (exact spelling,
// "--name=value" tolerated).
func (c Command) Option(token string) (Option, bool) {
	name := token
	if i := strings.IndexByte(name, '='); i >= 0 {
		name = name[:i]
	}
	for _, opt := range c.Options {
		if opt.Matches(name) {
			return opt, true
		}
	}
	return Option{}, false
}

// Registry holds the full command surface in declaration order.
type Registry struct {
	commands []Command
	byName   map[string]Command
}

// New builds a registry from the given commands.
func New(commands []Command) *Registry {
	byName := make(map[string]Command, len(commands))
	for _, cmd := range commands {
		byName[cmd.Name] = cmd
	}
	return &Registry{commands: commands, byName: byName}
}

// Commands returns all commands in declaration order.
func (r *Registry) Commands() []Command {
	return r.commands
}

// Lookup finds a command by name.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.byName[name]
	return cmd, ok
}

// Default returns the redtime command surface.
func Default() *Registry {
	return New([]Command{
		{
			Name:  "log",
			Usage: "Create new time entry",
			Args: []Arg{
				{Name: "project", Kind: KindProject},
				{Name: "issue", Kind: KindIssue},
				{Name: "activity", Kind: KindActivity, Required: true},
				{Name: "hours", Kind: KindHours, Required: true},
				{Name: "description", Kind: KindDescription, Required: true},
			},
			Options: []Option{
				{Names: []string{"--yesterday", "-y"}, Usage: "Change date of log entry to yesterday"},
				{Names: []string{"--date"}, Usage: "Change date of log entry", TakesValue: true},
				{Names: []string{"--until-date"}, Usage: "Repeat log entry until given date (inclusive)", TakesValue: true},
				{Names: []string{"--weekdays"}, Usage: "Allow weekend logging"},
				{Names: []string{"--max-day-hours"}, Usage: "Max hours per day (entries exceeding this limit will be ignored)", TakesValue: true},
			},
		},
		{
			Name:  "log-entry",
			Usage: "Modifies time entry",
			Args: []Arg{
				{Name: "time_entries", Kind: KindTimeEntry, Variadic: true},
			},
			Options: []Option{
				{Names: []string{"--rm"}, Usage: "Remove the log entry"},
				{Names: []string{"--project"}, Usage: "Move entry to project", TakesValue: true},
				{Names: []string{"--issue"}, Usage: "Move entry to issue", TakesValue: true},
				{Names: []string{"--activity"}, Usage: "Change entry activity", TakesValue: true},
			},
		},
		{
			Name:  "projects",
			Usage: "Show projects",
			Args: []Arg{
				{Name: "name", Kind: KindProjectName},
			},
			Options: []Option{
				{Names: []string{"--name-id"}, Usage: "Print name and id"},
				{Names: []string{"--id"}, Usage: "Print id only"},
				{Names: []string{"--name"}, Usage: "Print name only"},
				{Names: []string{"--one"}, Usage: "Print best match only"},
				{Names: []string{"--threshold"}, Usage: "Fuzzy match threshold", TakesValue: true},
			},
		},
		{
			Name:  "issues",
			Usage: "Show issues",
			Args: []Arg{
				{Name: "subject", Kind: KindIssueSubject},
			},
			Options: []Option{
				{Names: []string{"--subject-id"}, Usage: "Print subject and id"},
				{Names: []string{"--id"}, Usage: "Print id only"},
				{Names: []string{"--subject"}, Usage: "Print subject only"},
				{Names: []string{"--one"}, Usage: "Print best match only"},
			},
		},
		{
			Name:  "activities",
			Usage: "Show activities",
			Args: []Arg{
				{Name: "name", Kind: KindActivityName},
			},
			Options: []Option{
				{Names: []string{"--name-id"}, Usage: "Print name and id"},
				{Names: []string{"--id"}, Usage: "Print id only"},
				{Names: []string{"--name"}, Usage: "Print name only"},
			},
		},
		{
			Name:  "overview",
			Usage: "Show time entry overview",
			Options: []Option{
				{Names: []string{"--from-date"}, Usage: "First day of the overview", TakesValue: true},
				{Names: []string{"--to-date"}, Usage: "Last day of the overview", TakesValue: true},
				{Names: []string{"--limit"}, Usage: "Max entries to fetch", TakesValue: true},
				{Names: []string{"--offset"}, Usage: "Entries to skip", TakesValue: true},
			},
		},
		{
			Name:  "configure",
			Usage: "Configure redtime utility",
			Options: []Option{
				{Names: []string{"--api-url"}, Usage: "Redmine base URL", TakesValue: true},
				{Names: []string{"--api-key"}, Usage: "Redmine API key", TakesValue: true},
				{Names: []string{"--username"}, Usage: "Redmine username", TakesValue: true},
				{Names: []string{"--password"}, Usage: "Redmine password", TakesValue: true},
				{Names: []string{"--ask-password"}, Usage: "Prompt for password"},
			},
		},
		{
			Name:  "validate",
			Usage: "Validate a redtime configuration file",
			Args: []Arg{
				{Name: "config-file", Kind: KindFile},
			},
		},
		{
			Name:  "schema",
			Usage: "Display or export the configuration JSON Schema",
			Options: []Option{
				{Names: []string{"--output", "-o"}, Usage: "Output file path", TakesValue: true},
			},
		},
		{
			Name:  "status",
			Usage: "Show redtime configuration status",
		},
		{
			Name:  "hook",
			Usage: "Print shell completion hook code",
			Options: []Option{
				{Names: []string{"--shell"}, Usage: "Shell type: bash, zsh, or auto", TakesValue: true},
			},
		},
		{
			Name:  "complete",
			Usage: "Show completion options for redtime command",
			Args: []Arg{
				{Name: "args", Variadic: true},
			},
			Options: []Option{
				{Names: []string{"--options"}, Usage: "Show completion for options"},
				{Names: []string{"--nth"}, Usage: "Complete nth argument", TakesValue: true},
			},
		},
	})
}
