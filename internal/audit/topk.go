package audit

import (
	"container/heap"
	"sort"
)

// FileStat is a single file path and size.
type FileStat struct {
	// Path is the file path, relative to the scan root in slash form.
	Path string `json:"path"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
}

// Tracker keeps the K largest files seen, in bounded memory. Offers are
// O(log K); only K entries are retained regardless of how many files are
// offered. A capacity of zero is legal and yields an always-empty snapshot.
//
// Ordering is deterministic: larger sizes win, and on equal size the
// lexicographically smaller path wins. This keeps snapshots reproducible
// across runs and platforms.
type Tracker struct {
	capacity int
	entries  entryHeap
}

// NewTracker creates a Tracker that retains up to capacity entries.
// A negative capacity is treated as zero.
func NewTracker(capacity int) *Tracker {
	if capacity < 0 {
		capacity = 0
	}

	return &Tracker{
		capacity: capacity,
		entries:  make(entryHeap, 0, capacity),
	}
}

// Capacity returns the maximum number of entries retained.
func (t *Tracker) Capacity() int {
	return t.capacity
}

// Len returns the number of entries currently retained.
func (t *Tracker) Len() int {
	return len(t.entries)
}

// Offer considers entry for the kept set. While fewer than K entries are
// held it is inserted; afterwards it replaces the current minimum only if
// it outranks it (bigger, or equal size with a smaller path).
func (t *Tracker) Offer(entry FileStat) {
	if t.capacity == 0 {
		return
	}

	if len(t.entries) < t.capacity {
		heap.Push(&t.entries, entry)

		return
	}

	if outranks(entry, t.entries[0]) {
		t.entries[0] = entry
		heap.Fix(&t.entries, 0)
	}
}

// Snapshot returns the kept entries sorted descending by size, ties broken
// ascending by path. The tracker is left unchanged.
func (t *Tracker) Snapshot() []FileStat {
	out := make([]FileStat, len(t.entries))
	copy(out, t.entries)

	sort.Slice(out, func(i, j int) bool {
		return outranks(out[i], out[j])
	})

	return out
}

// outranks reports whether a should be kept in preference to b.
func outranks(a, b FileStat) bool {
	if a.Size != b.Size {
		return a.Size > b.Size
	}

	return a.Path < b.Path
}

// entryHeap is a min-heap on the tracker's ordering: the root is the entry
// evicted first.
type entryHeap []FileStat

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool { return outranks(h[j], h[i]) }

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(FileStat))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}
