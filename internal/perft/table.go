package perft

import (
	"sync"
	"sync/atomic"
)

// Number of shards for table locking (power of 2 for fast modulo)
const tableShardCount = 256
const tableShardMask = tableShardCount - 1

// tableEntry is one slot of the table.
type tableEntry struct {
	Key   uint64 // Full position hash for verification
	Nodes uint64
	Depth int8
}

// Table is a fixed-size in-memory node-count cache. One entry per slot,
// deeper results win on collision. Safe for concurrent use.
type Table struct {
	entries []tableEntry
	shards  [tableShardCount]sync.RWMutex
	size    uint64
	mask    uint64

	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewTable creates a table using roughly sizeMB megabytes.
func NewTable(sizeMB int) *Table {
	entrySize := uint64(24)
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize
	if numEntries == 0 {
		numEntries = 1
	}

	// Round down to power of 2 for fast modulo
	numEntries = roundDownToPowerOf2(numEntries)

	return &Table{
		entries: make([]tableEntry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

func (t *Table) shardIndex(idx uint64) int {
	return int(idx & tableShardMask)
}

// Get returns the node count stored for hash at depth.
func (t *Table) Get(hash uint64, depth int) (uint64, bool) {
	t.probes.Add(1)

	idx := hash & t.mask
	shard := t.shardIndex(idx)

	t.shards[shard].RLock()
	entry := t.entries[idx]
	t.shards[shard].RUnlock()

	if entry.Key == hash && int(entry.Depth) == depth && depth > 0 {
		t.hits.Add(1)
		return entry.Nodes, true
	}
	return 0, false
}

// Put stores a node count. A shallower result never replaces a deeper one
// in the same slot.
func (t *Table) Put(hash uint64, depth int, nodes uint64) error {
	idx := hash & t.mask
	shard := t.shardIndex(idx)

	t.shards[shard].Lock()
	entry := &t.entries[idx]
	if depth >= int(entry.Depth) {
		entry.Key = hash
		entry.Nodes = nodes
		entry.Depth = int8(depth)
	}
	t.shards[shard].Unlock()
	return nil
}

// Clear empties the table and resets the statistics.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = tableEntry{}
	}
	t.hits.Store(0)
	t.probes.Store(0)
}

// HitRate returns the cache hit rate as a percentage.
func (t *Table) HitRate() float64 {
	probes := t.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(t.hits.Load()) / float64(probes) * 100
}

// Size returns the number of entries in the table.
func (t *Table) Size() uint64 {
	return t.size
}
