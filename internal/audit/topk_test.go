package audit

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerZeroCapacity(t *testing.T) {
	tracker := NewTracker(0)

	tracker.Offer(FileStat{Path: "a", Size: 100})
	tracker.Offer(FileStat{Path: "b", Size: 200})

	assert.Empty(t, tracker.Snapshot())
	assert.Equal(t, 0, tracker.Capacity())
}

func TestTrackerNegativeCapacityTreatedAsZero(t *testing.T) {
	tracker := NewTracker(-5)

	tracker.Offer(FileStat{Path: "a", Size: 100})

	assert.Empty(t, tracker.Snapshot())
	assert.Equal(t, 0, tracker.Capacity())
}

func TestTrackerFewerEntriesThanCapacity(t *testing.T) {
	tracker := NewTracker(10)

	tracker.Offer(FileStat{Path: "small", Size: 1})
	tracker.Offer(FileStat{Path: "big", Size: 100})

	snapshot := tracker.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, FileStat{Path: "big", Size: 100}, snapshot[0])
	assert.Equal(t, FileStat{Path: "small", Size: 1}, snapshot[1])
}

func TestTrackerEvictsSmallest(t *testing.T) {
	tracker := NewTracker(2)

	tracker.Offer(FileStat{Path: "a", Size: 10})
	tracker.Offer(FileStat{Path: "b", Size: 30})
	tracker.Offer(FileStat{Path: "c", Size: 20})
	tracker.Offer(FileStat{Path: "d", Size: 5})

	assert.Equal(t, []FileStat{
		{Path: "b", Size: 30},
		{Path: "c", Size: 20},
	}, tracker.Snapshot())
}

func TestTrackerTieBreakOnEqualSizes(t *testing.T) {
	tracker := NewTracker(2)

	tracker.Offer(FileStat{Path: "b", Size: 10})
	tracker.Offer(FileStat{Path: "c", Size: 10})

	// Equal size with a smaller path replaces the kept minimum ("c").
	tracker.Offer(FileStat{Path: "a", Size: 10})

	assert.Equal(t, []FileStat{
		{Path: "a", Size: 10},
		{Path: "b", Size: 10},
	}, tracker.Snapshot())

	// Equal size with a larger path is discarded.
	tracker.Offer(FileStat{Path: "z", Size: 10})

	assert.Equal(t, []FileStat{
		{Path: "a", Size: 10},
		{Path: "b", Size: 10},
	}, tracker.Snapshot())
}

func TestTrackerSnapshotDoesNotMutate(t *testing.T) {
	tracker := NewTracker(3)

	tracker.Offer(FileStat{Path: "a", Size: 3})
	tracker.Offer(FileStat{Path: "b", Size: 2})

	first := tracker.Snapshot()
	second := tracker.Snapshot()

	assert.Equal(t, first, second)
	assert.Equal(t, 2, tracker.Len())
}

// Cross-check the streaming tracker against a brute-force full sort.
func TestTrackerMatchesBruteForce(t *testing.T) {
	const entries = 1000

	rng := rand.New(rand.NewSource(42))

	for _, capacity := range []int{1, 7, 50, entries + 10} {
		t.Run(fmt.Sprintf("capacity_%d", capacity), func(t *testing.T) {
			tracker := NewTracker(capacity)
			all := make([]FileStat, 0, entries)

			for i := 0; i < entries; i++ {
				// Narrow size range to force plenty of ties.
				entry := FileStat{
					Path: fmt.Sprintf("dir%02d/file%04d", i%17, i),
					Size: int64(rng.Intn(64)),
				}
				tracker.Offer(entry)
				all = append(all, entry)
			}

			sort.Slice(all, func(i, j int) bool {
				return outranks(all[i], all[j])
			})

			want := all
			if len(want) > capacity {
				want = want[:capacity]
			}

			assert.Equal(t, want, tracker.Snapshot())
		})
	}
}
