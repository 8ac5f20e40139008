package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/enockola/Resolve-Video-Tracker/internal/audit"
)

// WriteReportFiles writes the report as <base>.json and <base>.csv,
// creating parent directories as needed. It returns the written paths.
func WriteReportFiles(report *audit.Report, base string) (jsonPath, csvPath string, err error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", "", fmt.Errorf("creating report directory: %w", err)
		}
	}

	jsonPath = base + ".json"
	csvPath = base + ".csv"

	if err := writeJSON(report, jsonPath); err != nil {
		return "", "", err
	}

	if err := writeCSV(report, csvPath); err != nil {
		return "", "", err
	}

	return jsonPath, csvPath, nil
}

// writeJSON writes the report fields verbatim as indented JSON.
func writeJSON(report *audit.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing JSON report: %w", err)
	}

	return nil
}

// writeCSV writes the largest-files table as CSV, one row per top entry.
func writeCSV(report *audit.Report, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing CSV report: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	if err := w.Write([]string{"path", "bytes", "human"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, entry := range report.TopFiles {
		row := []string{
			entry.Path,
			strconv.FormatInt(entry.Size, 10),
			humanize.IBytes(uint64(entry.Size)),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV report: %w", err)
	}

	return nil
}
