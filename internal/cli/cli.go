package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/gridscrape/internal/diag"
	"github.com/pfrederiksen/gridscrape/internal/fetch"
	"github.com/pfrederiksen/gridscrape/internal/grid"
	"github.com/pfrederiksen/gridscrape/internal/rows"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitUsage   = 1
	ExitFailure = 2
)

var (
	flagTimeout   time.Duration
	flagRetries   int
	flagBackoff   time.Duration
	flagUserAgent string
	flagVerbose   bool
)

// usageError marks a command-line mistake so Execute can map it to the
// usage exit code rather than a pipeline failure.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gridscrape <url>",
		Short: "Render a character grid from an HTML coordinate table",
		Long: `Fetch an HTML page containing a table of (x, y) coordinates and labels,
and render the labels as a character grid on stdout with the origin at the
bottom-left. Rows that cannot be parsed are skipped with a warning.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return &usageError{err}
			}
			return nil
		},
		RunE:          runRender,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Define flags
	cmd.Flags().DurationVar(&flagTimeout, "timeout", fetch.Timeout, "Per-request timeout")
	cmd.Flags().IntVar(&flagRetries, "retries", 3, "Retry attempts after the first request")
	cmd.Flags().DurationVar(&flagBackoff, "backoff", time.Second, "Initial retry backoff interval")
	cmd.Flags().StringVar(&flagUserAgent, "user-agent", fetch.UserAgent, "User-Agent header sent to the origin")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug diagnostics")

	return cmd
}

// runRender wires diagnostics to the command's error stream and runs the
// pipeline
func runRender(cmd *cobra.Command, args []string) error {
	level := diag.LevelInfo
	if flagVerbose {
		level = diag.LevelDebug
	}
	diag.SetDefault(diag.New(level, cmd.ErrOrStderr()))

	return run(cmd.Context(), args[0], cmd.OutOrStdout())
}

// run is the fetch -> rows -> grid pipeline, single pass.
func run(ctx context.Context, url string, out io.Writer) error {
	policy := fetch.DefaultPolicy()
	policy.MaxRetries = flagRetries
	policy.InitialInterval = flagBackoff

	fetcher := fetch.New(
		fetch.WithTimeout(flagTimeout),
		fetch.WithPolicy(policy),
		fetch.WithUserAgent(flagUserAgent),
	)

	diag.Debugf("fetching %s", url)
	page, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}

	texts, err := rows.Extract(strings.NewReader(page))
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		diag.Infof("no table rows found after the header; nothing to render")
		return nil
	}
	diag.Debugf("extracted %d rows", len(texts))

	points, labels, skips := grid.ExtractPoints(texts)
	for _, s := range skips {
		diag.Warnf("row %d %s: %s", s.Row, s.Reason, s.Text)
	}
	if len(points) == 0 {
		diag.Infof("no valid coordinate rows found; nothing to render")
		return nil
	}

	g, err := grid.Build(points, labels)
	if err != nil {
		return err
	}

	grid.Render(out, g)
	return nil
}

// Execute runs the CLI and returns the process exit code: 0 on success,
// 1 for a usage error, 2 when any pipeline stage fails.
func Execute() int {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		var uerr *usageError
		if errors.As(err, &uerr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n%s", err, cmd.UsageString())
			return ExitUsage
		}
		diag.Errorf("%v", err)
		return ExitFailure
	}
	return ExitSuccess
}
