package completion

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/redtime-cli/redtime/internal/derrors"
	"github.com/redtime-cli/redtime/internal/logger"
)

const (
	// DefaultProviderTimeout bounds one provider round-trip. The provider is
	// a local subprocess; anything slower than this is treated as absent.
	DefaultProviderTimeout = 200 * time.Millisecond
	// MaxOutputSize caps provider output (1MB).
	MaxOutputSize = 1024 * 1024

	// BinEnvVar overrides the provider binary, mainly for tests.
	BinEnvVar = "REDTIME_COMPLETE_BIN"
)

// Client invokes the completion provider as a fresh subprocess per request.
// No connection or state survives across calls.
type Client struct {
	bin     string
	timeout time.Duration
	log     *logger.Logger
}

// NewClient creates a client for the given provider binary. An empty bin
// falls back to $REDTIME_COMPLETE_BIN, then to the running executable.
func NewClient(bin string, log *logger.Logger) *Client {
	if bin == "" {
		bin = os.Getenv(BinEnvVar)
	}
	if bin == "" {
		if self, err := os.Executable(); err == nil {
			bin = self
		} else {
			bin = "redtime"
		}
	}

	return &Client{
		bin:     bin,
		timeout: DefaultProviderTimeout,
		log:     log,
	}
}

// WithTimeout overrides the per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

// ListCommands runs `<bin> complete`.
func (c *Client) ListCommands(ctx context.Context) ([]Candidate, error) {
	output, err := c.run(ctx, "complete")
	if err != nil {
		return nil, err
	}
	return ParseOutput(output, KindCommand), nil
}

// ListArguments runs `<bin> complete --nth <N> -- <tokens...>`.
func (c *Client) ListArguments(ctx context.Context, tokens []string, nth int) ([]Candidate, error) {
	args := append([]string{"complete", "--nth", strconv.Itoa(nth), "--"}, tokens...)
	output, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return ParseOutput(output, KindArgument), nil
}

// ListOptions runs `<bin> complete --options -- <firstToken>`.
func (c *Client) ListOptions(ctx context.Context, commandName string) ([]Candidate, error) {
	output, err := c.run(ctx, "complete", "--options", "--", commandName)
	if err != nil {
		return nil, err
	}
	return ParseOutput(output, KindOption), nil
}

// run spawns the provider and classifies failures. Callers treat every
// returned error as an empty response; the classification only feeds logs.
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, c.bin, args...)
	output, err := cmd.Output()
	elapsed := time.Since(start)

	if err != nil {
		switch {
		case ctx.Err() == context.DeadlineExceeded:
			return nil, derrors.NewTimeout(err)
		case isExitError(err):
			var exitErr *exec.ExitError
			errors.As(err, &exitErr)
			return nil, derrors.NewProviderExit(exitErr.ExitCode(), err)
		default:
			return nil, derrors.NewProviderUnavailable(c.bin, err)
		}
	}

	c.log.Debug().
		Str("bin", c.bin).
		Dur("elapsed", elapsed).
		Int("bytes", len(output)).
		Msg("provider call")

	if len(output) > MaxOutputSize {
		output = output[:MaxOutputSize]
	}
	return output, nil
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
