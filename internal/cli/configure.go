package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/redtime-cli/redtime/internal/config"
)

// ConfigureParams contains parameters for the Configure command
type ConfigureParams struct {
	ConfigPath  string
	APIURL      string
	APIKey      string
	Username    string
	Password    string
	AskPassword bool // Prompt for the password instead of taking a flag
	In          io.Reader
	Out         io.Writer
}

// Configure writes the redtime configuration file. Secrets are stored
// obfuscated with the same codec older config files already use.
func Configure(params ConfigureParams) error {
	out := params.Out
	if out == nil {
		out = os.Stdout
	}

	if params.AskPassword {
		in := params.In
		if in == nil {
			in = os.Stdin
		}
		fmt.Fprint(out, "Password: ")
		scanner := bufio.NewScanner(in)
		if scanner.Scan() {
			params.Password = scanner.Text()
		}
		fmt.Fprintln(out)
	}

	cfg := &config.Config{
		APIURL:   strings.TrimRight(params.APIURL, "/"),
		Username: params.Username,
	}
	if params.APIKey != "" {
		cfg.APIKey = config.EncodeSecret(params.APIKey)
	}
	if params.Password != "" {
		cfg.Password = config.EncodeSecret(params.Password)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.Write(params.ConfigPath, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "Configuration written to: %s\n", params.ConfigPath)
	return nil
}
