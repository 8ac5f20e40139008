// Package audit provides the classification-and-aggregation engine for
// Resolve storage audits.
//
// It walks a directory tree once using fastwalk for parallel traversal,
// assigns every regular file to a category via ordered path-segment rules,
// accumulates per-category and per-extension byte totals, and tracks the
// K largest files in bounded memory.
package audit
