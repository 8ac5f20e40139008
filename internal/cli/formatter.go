package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/enockola/Resolve-Video-Tracker/internal/audit"
	"github.com/enockola/Resolve-Video-Tracker/internal/volume"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
	// MaxExtensionRows caps the extension breakdown in table output.
	MaxExtensionRows = 20
)

// PrintJSON outputs the report in JSON format.
func PrintJSON(report *audit.Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs the report in human-readable table format. The volume
// line is omitted when vol is nil. With categoriesOnly set, only the
// summary and category breakdown are printed.
func PrintTable(report *audit.Report, vol *volume.Info, categoriesOnly bool, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "Scanned:\t%s\n", report.Root)
	fmt.Fprintf(w, "Total:\t%s (%d bytes) in %d files\n",
		humanize.IBytes(uint64(report.TotalBytes)), report.TotalBytes, report.FileCount)

	if vol != nil {
		fmt.Fprintf(w, "Volume:\t%s total, %s free (%.1f%% used, %s)\n",
			humanize.IBytes(vol.Total), humanize.IBytes(vol.Free), vol.UsedPercent, vol.Fstype)
	}

	fmt.Fprintln(w, "\nSize by category:\t\t")

	for _, category := range audit.Categories() {
		stat := report.Categories[category]
		fmt.Fprintf(w, "  %s:\t%s\t%d files (%s)\n",
			category, humanize.IBytes(uint64(stat.Size)), stat.Count, percent(stat.Size, report.TotalBytes))
	}

	if !categoriesOnly {
		fmt.Fprintln(w, "\nTop files:\t\t")

		for _, file := range report.TopFiles {
			fmt.Fprintf(w, "  %s\t%s\t(%s)\n",
				humanize.IBytes(uint64(file.Size)), file.Path, percent(file.Size, report.TotalBytes))
		}

		fmt.Fprintln(w, "\nTop extensions:\t\t")

		for _, ext := range topExtensions(report, MaxExtensionRows) {
			stat := report.ExtStats[ext]
			if ext == "" {
				ext = "(no ext)"
			}
			fmt.Fprintf(w, "  %s:\t%s\t%d files (%s)\n",
				ext, humanize.IBytes(uint64(stat.Size)), stat.Count, percent(stat.Size, report.TotalBytes))
		}
	}

	if len(report.Errors) > 0 {
		fmt.Fprintf(w, "\nSkipped entries:\t%d\n", len(report.Errors))

		for _, scanErr := range report.Errors {
			fmt.Fprintf(w, "  %s:\t%s\n", scanErr.Path, scanErr.Reason)
		}
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", report.Elapsed)

	return w.Flush()
}

// topExtensions returns up to limit extension keys sorted descending by
// size, ties broken ascending by extension.
func topExtensions(report *audit.Report, limit int) []string {
	exts := make([]string, 0, len(report.ExtStats))
	for ext := range report.ExtStats {
		exts = append(exts, ext)
	}

	sort.Slice(exts, func(i, j int) bool {
		a, b := report.ExtStats[exts[i]], report.ExtStats[exts[j]]
		if a.Size != b.Size {
			return a.Size > b.Size
		}

		return exts[i] < exts[j]
	})

	if len(exts) > limit {
		exts = exts[:limit]
	}

	return exts
}

// percent formats size as a percentage of total.
func percent(size, total int64) string {
	if total <= 0 {
		return "0.0%"
	}

	return fmt.Sprintf("%.1f%%", 100.0*float64(size)/float64(total))
}
