package audit

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		fmt.Printf(format, args...)
	}
}

// collector aggregates scan results from concurrent fastwalk callbacks using
// a mutex. Every file is recorded under a single lock acquisition, so a file
// is either fully counted or not counted at all.
type collector struct {
	mu         sync.Mutex
	classifier *Classifier
	tracker    *Tracker
	categories map[Category]Stat
	extStats   map[string]Stat
	errors     []ScanError
	fileCount  int64
	totalBytes int64
}

// newCollector creates a collector with the requested configuration.
func newCollector(classifier *Classifier, topN int) *collector {
	return &collector{
		classifier: classifier,
		tracker:    NewTracker(topN),
		categories: make(map[Category]Stat),
		extStats:   make(map[string]Stat),
	}
}

// add records one regular file. The path is relative to the scan root in
// slash form.
func (c *collector) add(path string, size int64) {
	category := c.classifier.Classify(path)
	ext := strings.ToLower(filepath.Ext(path))

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileCount++
	c.totalBytes += size

	stat := c.categories[category]
	stat.Count++
	stat.Size += size
	c.categories[category] = stat

	stat = c.extStats[ext]
	stat.Count++
	stat.Size += size
	c.extStats[ext] = stat

	c.tracker.Offer(FileStat{Path: path, Size: size})
}

// addError records an entry that could not be read.
func (c *collector) addError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errors = append(c.errors, ScanError{Path: path, Reason: err.Error()})
}

// progress returns the current file count and byte total.
func (c *collector) progress() (files, bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fileCount, c.totalBytes
}

// finalize produces the Report from the collected data. Errors are sorted
// by path so repeated scans of an unchanged tree yield identical Reports
// even though the parallel walk visits entries in arbitrary order.
func (c *collector) finalize() *Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	categories := make(map[Category]Stat, len(Categories()))
	for _, category := range Categories() {
		categories[category] = c.categories[category]
	}

	sort.Slice(c.errors, func(i, j int) bool {
		return c.errors[i].Path < c.errors[j].Path
	})

	return &Report{
		GeneratedAt: time.Now(),
		FileCount:   c.fileCount,
		TotalBytes:  c.totalBytes,
		Categories:  categories,
		ExtStats:    c.extStats,
		TopFiles:    c.tracker.Snapshot(),
		Errors:      c.errors,
		TopN:        c.tracker.Capacity(),
	}
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx
// is done.
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.progress())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// excluded returns the first exclusion pattern matching the relative path,
// or "" if none matches. Matching is case-insensitive on slash-form paths.
func excluded(relPath string, patterns []string) string {
	if len(patterns) == 0 {
		return ""
	}

	lower := strings.ToLower(relPath)

	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, lower); err == nil && matched {
			return pattern
		}
	}

	return ""
}

// Run performs a storage audit of the tree rooted at opt.Root and returns
// the aggregated Report.
//
// The walk is a single streaming pass: no second traversal and no buffering
// of per-file records. Memory use is bounded by opt.TopN plus the number of
// distinct extensions, independent of file count. Symbolic links are never
// followed or counted. Entries that cannot be read are recorded in
// Report.Errors and do not abort the scan; only a missing or non-directory
// root is fatal (ErrRootNotFound, ErrNotDirectory).
//
// The walk can be cancelled via ctx, in which case Run returns
// context.Canceled. Progress updates are sent to progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Report, error) {
	log := logger{enabled: opt.Debug}

	if opt.Root == "" {
		opt.Root = "."
	}

	// Normalize to native format to handle both C:/Path and C:\Path inputs.
	opt.Root = filepath.Clean(opt.Root)

	statInfo, err := os.Stat(opt.Root)

	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: %q", ErrRootNotFound, opt.Root)
	case err != nil:
		return nil, fmt.Errorf("accessing root %q: %w", opt.Root, err)
	case !statInfo.IsDir():
		return nil, fmt.Errorf("%w: %q", ErrNotDirectory, opt.Root)
	}

	rules := opt.Rules
	if rules == nil {
		rules = DefaultRules()
	}

	excludes := make([]string, 0, len(opt.Excludes))

	for _, pattern := range opt.Excludes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclusion pattern %q", pattern)
		}

		excludes = append(excludes, strings.ToLower(pattern))
	}

	collector := newCollector(NewClassifier(rules), opt.TopN)

	// Create child context to ensure progress reporter cleanup.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, collector, progressHook, opt.ProgressInterval)

	start := time.Now()

	conf := &fastwalk.Config{
		Follow: false, // Never follow symlinks
	}

	// Walk the tree with fastwalk (parallel traversal). Paths are made
	// relative to the root before classification so directories above the
	// root cannot influence category assignment.
	walkErr := fastwalk.Walk(conf, opt.Root, func(path string, d fs.DirEntry, err error) error {
		relPath, relErr := filepath.Rel(opt.Root, path)
		if relErr != nil {
			relPath = path
		}

		relPath = filepath.ToSlash(relPath)

		if err != nil {
			log.printf("[debug]: error accessing %s: %v\n", relPath, err)

			if relPath != "." {
				collector.addError(relPath, err)
			}

			return nil
		}

		// Check cancellation periodically
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if relPath == "." {
			return nil
		}

		if pattern := excluded(relPath, excludes); pattern != "" {
			if d.IsDir() {
				log.printf("[debug]: excluding directory %s (pattern %s)\n", relPath, pattern)

				return filepath.SkipDir
			}

			log.printf("[debug]: excluding file %s (pattern %s)\n", relPath, pattern)

			return nil
		}

		if d.IsDir() {
			return nil
		}

		// Symlinks and other non-regular entries are never counted.
		if !d.Type().IsRegular() {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			collector.addError(relPath, err)

			return nil
		}

		if fileInfo.Size() < opt.MinSize {
			return nil
		}

		collector.add(relPath, fileInfo.Size())

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	report := collector.finalize()
	report.Root = opt.Root
	report.Elapsed = time.Since(start)

	return report, nil
}
