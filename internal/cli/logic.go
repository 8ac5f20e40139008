package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/enockola/Resolve-Video-Tracker/internal/audit"
	"github.com/enockola/Resolve-Video-Tracker/internal/config"
	"github.com/enockola/Resolve-Video-Tracker/internal/volume"
)

// run loads configuration, performs the audit, and renders the result.
func run(cmd *cobra.Command, root string, opts *options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	auditOpts, err := buildOptions(cmd, root, opts, cfg)
	if err != nil {
		return err
	}

	enableProgress := opts.output != "json" &&
		!opts.debug &&
		isatty.IsTerminal(os.Stderr.Fd())

	// Simple progress callback that prints directly to stderr.
	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes)))
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	report, err := audit.Run(context.Background(), auditOpts, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	if opts.output == "json" {
		if err := PrintJSON(report, os.Stdout); err != nil {
			return err
		}
	} else {
		// Volume stats are cosmetic: a lookup failure just drops the line.
		vol, _ := volume.Stat(report.Root)

		if err := PrintTable(report, vol, opts.categoriesOnly, os.Stdout); err != nil {
			return err
		}
	}

	if opts.reportBase != "" {
		jsonPath, csvPath, err := WriteReportFiles(report, opts.reportBase)
		if err != nil {
			return err
		}

		fmt.Printf("\nWrote report: %s\n", jsonPath)
		fmt.Printf("Wrote CSV:    %s\n", csvPath)
	}

	return nil
}

// loadConfig loads the given config file, or the default one when path is
// empty.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	defaultPath, err := config.DefaultPath()
	if err != nil {
		// No resolvable home directory; fall back to stock settings.
		return config.Default(), nil
	}

	return config.Load(defaultPath)
}

// buildOptions merges config file values with explicit flags. Flags win
// when set.
func buildOptions(cmd *cobra.Command, root string, opts *options, cfg *config.Config) (audit.Options, error) {
	auditOpts := audit.Options{
		Root:     root,
		TopN:     cfg.Top,
		Rules:    cfg.Rules(),
		Excludes: cfg.Exclude,
		MinSize:  cfg.MinSizeBytes(),
		Debug:    opts.debug,
	}

	if cmd.Flags().Changed("top") {
		auditOpts.TopN = opts.top
	}

	if cmd.Flags().Changed("exclude") {
		auditOpts.Excludes = opts.excludes
	}

	if cmd.Flags().Changed("min-size") {
		size, err := humanize.ParseBytes(opts.minSize)
		if err != nil {
			return audit.Options{}, fmt.Errorf("invalid min-size: %w", err)
		}

		auditOpts.MinSize = int64(size)
	}

	return auditOpts, nil
}
