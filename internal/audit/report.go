package audit

import (
	"errors"
	"time"
)

// Fatal scan errors. Only root-level failures abort a scan; everything
// encountered during the walk is accumulated in Report.Errors instead.
var (
	// ErrRootNotFound indicates the scan root does not exist.
	ErrRootNotFound = errors.New("root path not found")
	// ErrNotDirectory indicates the scan root is not a directory.
	ErrNotDirectory = errors.New("root path is not a directory")
)

// Stat holds the accumulated count and byte total for one bucket
// (a category or a file extension).
type Stat struct {
	// Count is the number of files in the bucket.
	Count int64 `json:"count"`
	// Size is the cumulative size in bytes.
	Size int64 `json:"size"`
}

// ScanError records an entry that could not be read during the walk.
// These are non-fatal: the scan continues past them.
type ScanError struct {
	// Path is the entry that failed, relative to the scan root.
	Path string `json:"path"`
	// Reason is the underlying error text.
	Reason string `json:"reason"`
}

// Report is the immutable result of one scan. Field shapes are stable:
// downstream renderers (console, JSON, CSV) rely on them verbatim.
type Report struct {
	// Root is the scanned directory as given by the caller.
	Root string `json:"root"`
	// GeneratedAt is when the scan finished.
	GeneratedAt time.Time `json:"generated_at"`
	// FileCount is the number of regular files counted.
	FileCount int64 `json:"file_count"`
	// TotalBytes is the cumulative size of all counted files.
	TotalBytes int64 `json:"total_bytes"`
	// Categories maps every category to its totals. All six categories
	// are always present, zero-valued when unmatched.
	Categories map[Category]Stat `json:"categories"`
	// ExtStats maps lowercased file extensions (including the leading
	// dot, or "" for none) to their totals. Keys appear only for
	// extensions actually seen.
	ExtStats map[string]Stat `json:"ext_stats"`
	// TopFiles contains the largest files, sorted descending by size
	// with ascending-path tie-break. At most TopN entries.
	TopFiles []FileStat `json:"top_files"`
	// Errors lists entries skipped during the walk, sorted by path.
	Errors []ScanError `json:"errors"`
	// Elapsed is the wall-clock duration of the scan.
	Elapsed time.Duration `json:"elapsed"`
	// TopN is the largest-files capacity the scan ran with.
	TopN int `json:"top_n"`
}

// Options configures a scan.
type Options struct {
	// Root is the directory to audit.
	Root string
	// TopN is the number of largest files to track. Zero disables
	// largest-file reporting.
	TopN int
	// Rules is the ordered classification table. Nil means DefaultRules.
	Rules []Rule
	// Excludes contains doublestar glob patterns matched case-insensitively
	// against slash-form paths relative to Root. Matching files and
	// directories are skipped entirely.
	Excludes []string
	// MinSize excludes files smaller than this many bytes.
	MinSize int64
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug enables walk tracing on stdout.
	Debug bool
}
