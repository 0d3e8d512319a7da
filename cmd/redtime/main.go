// Package main is the entry point for the redtime CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	rtcli "github.com/redtime-cli/redtime/internal/cli"
	"github.com/redtime-cli/redtime/internal/config"
	"github.com/redtime-cli/redtime/pkg/version"
	"github.com/urfave/cli/v3"
)

// catalogCachePath returns the XDG path of the catalog cache file.
func catalogCachePath() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, _ := os.UserHomeDir()
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "redtime", "catalog.json")
}

// describeArgs splits the raw argv of the hidden describe command into the
// flag part and the completion words. urfave/cli swallows the "--" separator,
// so the split happens on os.Args directly, the words staying verbatim.
func describeArgs(argv []string) (index int, shell string, words []string) {
	index = -1
	inWords := false
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		if inWords {
			words = append(words, arg)
			continue
		}
		switch {
		case arg == "--":
			inWords = true
		case arg == "--index" && i+1 < len(argv):
			i++
			if n, err := strconv.Atoi(argv[i]); err == nil {
				index = n
			}
		case arg == "--shell" && i+1 < len(argv):
			i++
			shell = argv[i]
		}
	}

	if index < 0 {
		index = len(words) - 1
		if cwordStr := os.Getenv("REDTIME_COMP_CWORD"); cwordStr != "" {
			if n, err := strconv.Atoi(cwordStr); err == nil {
				index = n
			}
		}
	}
	return index, shell, words
}

func main() {
	configPath := config.DefaultPath()
	cachePath := catalogCachePath()

	listFormat := func(cmd *cli.Command, idFlag, nameFlag, nameIDFlag string) string {
		switch {
		case cmd.Bool(idFlag):
			return "id"
		case cmd.Bool(nameFlag):
			return "name"
		case cmd.Bool(nameIDFlag):
			return "name-id"
		}
		return ""
	}

	app := &cli.Command{
		Name:                  "redtime",
		Usage:                 "Redmine time tracking helper",
		Version:               version.Version,
		EnableShellCompletion: false,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("REDTIME_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "complete",
				Usage:     "Show completion options for redtime command",
				ArgsUsage: "[--nth N] [--options] -- [tokens...]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "nth",
						Usage: "Complete nth argument (0-based over the full command line)",
					},
					&cli.BoolFlag{
						Name:  "options",
						Usage: "Show completion for options of the named sub-command",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return rtcli.Complete(rtcli.CompleteParams{
						ConfigPath: configPath,
						CachePath:  cachePath,
						LogLevel:   cmd.String("log-level"),
						Tokens:     cmd.Args().Slice(),
						Nth:        int(cmd.Int("nth")),
						Options:    cmd.Bool("options"),
					})
				},
			},
			{
				Name:            "describe",
				Usage:           "Emit channel-tagged completion candidates for the shell functions",
				ArgsUsage:       "[--index N] [--shell sh] -- <words...>",
				Hidden:          true, // Hidden from help - used internally by completion functions
				SkipFlagParsing: true, // The words may themselves look like flags
				HideHelp:        true,
				Action: func(_ context.Context, cmd *cli.Command) error {
					// Use os.Args because urfave/cli filters out the "--"
					// separator the shell functions always send.
					var argv []string
					for i, arg := range os.Args {
						if arg == "describe" {
							argv = os.Args[i+1:]
							break
						}
					}
					index, _, words := describeArgs(argv)

					return rtcli.Describe(rtcli.DescribeParams{
						LogLevel: cmd.String("log-level"),
						Words:    words,
						Index:    index,
					})
				},
			},
			{
				Name:  "hook",
				Usage: "Print shell completion hook code",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "shell",
						Value:   "auto",
						Usage:   "Shell type: bash, zsh, or auto",
						Sources: cli.EnvVars("REDTIME_SHELL"),
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return rtcli.Hook(rtcli.HookParams{
						Shell: cmd.String("shell"),
						Tool:  "redtime",
					})
				},
			},
			{
				Name:  "configure",
				Usage: "Configure redtime utility",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "api-url", Usage: "Redmine base URL"},
					&cli.StringFlag{Name: "api-key", Usage: "Redmine API key"},
					&cli.StringFlag{Name: "username", Usage: "Redmine username"},
					&cli.StringFlag{Name: "password", Usage: "Redmine password"},
					&cli.BoolFlag{Name: "ask-password", Usage: "Prompt for password"},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return rtcli.Configure(rtcli.ConfigureParams{
						ConfigPath:  configPath,
						APIURL:      cmd.String("api-url"),
						APIKey:      cmd.String("api-key"),
						Username:    cmd.String("username"),
						Password:    cmd.String("password"),
						AskPassword: cmd.Bool("ask-password"),
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a redtime configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					path := ""
					if cmd.Args().Len() > 0 {
						path = cmd.Args().Get(0)
					}
					return rtcli.Validate(path)
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the configuration JSON Schema",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return rtcli.Schema(outputPath)
				},
			},
			{
				Name:  "status",
				Usage: "Show redtime configuration status",
				Action: func(_ context.Context, _ *cli.Command) error {
					return rtcli.Status(rtcli.StatusParams{
						ConfigPath: configPath,
						CachePath:  cachePath,
					})
				},
			},
			{
				Name:      "projects",
				Usage:     "Show projects",
				ArgsUsage: "[filter]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "id", Usage: "Print id only"},
					&cli.BoolFlag{Name: "name", Usage: "Print name only"},
					&cli.BoolFlag{Name: "name-id", Usage: "Print name and id"},
					&cli.BoolFlag{Name: "one", Usage: "Print best match only"},
					&cli.IntFlag{Name: "threshold", Usage: "Fuzzy match threshold"},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return rtcli.Projects(rtcli.ListParams{
						ConfigPath: configPath,
						CachePath:  cachePath,
						Filter:     cmd.Args().First(),
						Format:     listFormat(cmd, "id", "name", "name-id"),
						One:        cmd.Bool("one"),
						Threshold:  int(cmd.Int("threshold")),
					})
				},
			},
			{
				Name:      "issues",
				Usage:     "Show issues",
				ArgsUsage: "[filter]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "id", Usage: "Print id only"},
					&cli.BoolFlag{Name: "subject", Usage: "Print subject only"},
					&cli.BoolFlag{Name: "subject-id", Usage: "Print subject and id"},
					&cli.BoolFlag{Name: "one", Usage: "Print best match only"},
					&cli.StringFlag{Name: "project", Usage: "Scope to a project (ID or Name:ID)"},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return rtcli.Issues(rtcli.ListParams{
						ConfigPath: configPath,
						CachePath:  cachePath,
						Filter:     cmd.Args().First(),
						Format:     listFormat(cmd, "id", "subject", "subject-id"),
						One:        cmd.Bool("one"),
						Project:    cmd.String("project"),
					})
				},
			},
			{
				Name:      "activities",
				Usage:     "Show activities",
				ArgsUsage: "[filter]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "id", Usage: "Print id only"},
					&cli.BoolFlag{Name: "name", Usage: "Print name only"},
					&cli.BoolFlag{Name: "name-id", Usage: "Print name and id"},
					&cli.StringFlag{Name: "project", Usage: "Scope to a project (ID or Name:ID)"},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return rtcli.Activities(rtcli.ListParams{
						ConfigPath: configPath,
						CachePath:  cachePath,
						Filter:     cmd.Args().First(),
						Format:     listFormat(cmd, "id", "name", "name-id"),
						Project:    cmd.String("project"),
					})
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
