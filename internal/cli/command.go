// Package cli implements the resolve-audit command line interface.
package cli

import (
	"errors"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// options collects the flag values of a single invocation.
type options struct {
	configPath     string
	top            int
	output         string
	reportBase     string
	categoriesOnly bool
	excludes       []string
	minSize        string
	debug          bool
}

// allowedOutputs lists the accepted values of --output.
var allowedOutputs = []string{"table", "json"}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "resolve-audit [flags] [path]",
		Short: "Audit DaVinci Resolve storage usage",
		Long: heredoc.Doc(`
			resolve-audit scans a directory tree produced by DaVinci Resolve and
			reports where the space went: proxy media, optimized media, render
			cache, gallery stills, project backups, and everything else.

			It reads file metadata only and never modifies the filesystem. One
			streaming pass collects per-category and per-extension byte totals
			plus the largest individual files, so even trees with hundreds of
			thousands of files audit in bounded memory.

			The classification table, exclusion globs, and defaults can be
			customized in ~/.config/resolve-audit/config.yaml.
		`),
		Example: heredoc.Doc(`
			# Audit a media drive and show the 30 largest files
			resolve-audit /mnt/media

			# Category totals only
			resolve-audit --categories-only ~/Videos

			# Write JSON + CSV reports alongside the console summary
			resolve-audit --report out/audit ~/Videos
		`),
		Version:       c.version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(allowedOutputs, opts.output) {
				return errors.New("invalid output format: must be table or json")
			}

			if opts.top < 0 {
				return errors.New("top cannot be negative")
			}

			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			return run(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVar(&opts.configPath, "config", "", "Config file path")
	flags.IntVarP(&opts.top, "top", "t", 30, "Number of largest files to list")
	flags.StringVarP(&opts.output, "output", "o", "table", "Output format: table or json")
	flags.StringVar(&opts.reportBase, "report", "", "Base path (without extension) to write JSON + CSV reports")
	flags.BoolVar(&opts.categoriesOnly, "categories-only", false, "Only print category sizes")
	flags.StringSliceVarP(&opts.excludes, "exclude", "e", nil, "Glob patterns to exclude (e.g. '**/.git/**')")
	flags.StringVar(&opts.minSize, "min-size", "", "Minimum file size to count (e.g. 1MB)")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug output")

	return cmd.Execute()
}
