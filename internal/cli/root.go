// Package cli implements the styleguide command line: the MCP server and
// one-shot commands that run the same operations against local text.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"styleguide/internal/config"
	"styleguide/internal/documents"
	"styleguide/internal/enrichment"
	"styleguide/internal/logging"
	"styleguide/internal/metrics"
	"styleguide/internal/report"
	"styleguide/internal/styleguide"

	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// ErrNoInput is returned when a command has nothing to work on.
var ErrNoInput = errors.New("no input: pass text as arguments, --file, or pipe it on stdin")

type options struct {
	configPath string
	plain      bool
	jsonOut    bool
	verbose    bool
	offline    bool
	width      int
}

// app carries global flags and the logger into every subcommand.
type app struct {
	opts   options
	logger *logging.AppLogger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(logging.GetDefault())
}

func newRootCmd(logger *logging.AppLogger) *cobra.Command {
	a := &app{logger: logger}

	root := &cobra.Command{
		Use:     "styleguide",
		Version: Version,
		Short:   "Check prose against the Microsoft Writing Style Guide",
		Long: `styleguide checks prose against the Microsoft Writing Style Guide.

It runs as an MCP tool server for editors and assistants, or directly
on text and Markdown files:

  styleguide serve
  styleguide analyze "Utilize the whitelist to configure the server."
  styleguide review --dir docs/ --type tutorial --audience beginner
  styleguide terms email login whitelist`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.opts.verbose {
				a.logger.SetVerbose()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.configPath, "config", "", "Config file (default is the standard config location)")
	flags.BoolVar(&a.opts.plain, "plain", false, "Plain text output without styling")
	flags.BoolVar(&a.opts.jsonOut, "json", false, "Output structured JSON")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "Log informational messages to stderr")
	flags.BoolVar(&a.opts.offline, "offline", false, "Disable live lookups against the online style guide")
	flags.IntVar(&a.opts.width, "width", report.DefaultWidth, "Wrap width for rendered output")

	root.AddCommand(
		a.serveCmd(),
		a.checkCmd(),
		a.analyzeCmd(),
		a.improveCmd(),
		a.reviewCmd(),
		a.guidelinesCmd(),
		a.termsCmd(),
		a.searchCmd(),
		a.guidanceCmd(),
		versionCmd(),
	)
	return root
}

// Execute runs the root command. It is called by main.main().
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "styleguide %s (commit %s, built %s)\n", Version, Commit, Date)
		},
	}
}

// loadConfig reads configuration and applies the global overrides.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return nil, err
	}
	if a.opts.offline {
		cfg.Enrichment.Enabled = false
	}
	a.logger.DebugObject("config", cfg)
	return cfg, nil
}

// service builds the style guide service. m may be nil.
func (a *app) service(cfg *config.Config, m *metrics.Metrics) *styleguide.Service {
	var observer enrichment.Observer
	if m != nil {
		observer = m
	}
	return styleguide.FromConfig(cfg, a.logger, observer)
}

func (a *app) loader(cfg *config.Config) *documents.Loader {
	return documents.NewLoader(documents.Options{
		MaxFileSize: cfg.Documents.MaxFileSize,
		MaxDepth:    cfg.Documents.MaxDepth,
	}, a.logger)
}

func (a *app) renderer() *report.Renderer {
	return report.NewRenderer(report.WithPlain(a.opts.plain), report.WithWidth(a.opts.width))
}

// emit writes data as JSON with --json, otherwise renders markdown followed
// by any status lines.
func (a *app) emit(cmd *cobra.Command, markdown string, data any, status ...string) error {
	out := cmd.OutOrStdout()
	if a.opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}

	rendered, err := a.renderer().Render(markdown)
	if err != nil {
		return err
	}
	if _, err = io.WriteString(out, rendered); err != nil {
		return err
	}
	for _, line := range status {
		if _, err = fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

// readText returns the text a command works on: the named file ("-" for
// stdin), the joined arguments, or piped stdin.
func (a *app) readText(cmd *cobra.Command, cfg *config.Config, args []string, file string) (string, error) {
	switch {
	case file == "-":
		return readAll(cmd.InOrStdin())
	case file != "":
		doc, err := a.loader(cfg).ReadFile(file)
		if err != nil {
			return "", err
		}
		return doc.Content, nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	}

	if f, ok := cmd.InOrStdin().(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", ErrNoInput
		}
	}
	return readAll(cmd.InOrStdin())
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", ErrNoInput
	}
	return string(data), nil
}

// splitTerms splits comma-separated arguments into trimmed terms.
func splitTerms(args []string) []string {
	var out []string
	for _, arg := range args {
		for _, term := range strings.Split(arg, ",") {
			if term = strings.TrimSpace(term); term != "" {
				out = append(out, term)
			}
		}
	}
	return out
}
