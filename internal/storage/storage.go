package storage

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/ristretto/v2"
)

// Key layout: "n" + position hash (8 bytes, big endian) + depth (1 byte).
const nodeKeyPrefix = 'n'

// hotEntries bounds the in-process front cache.
const hotEntries = 1 << 20

// hotEntry is what the front cache stores. Hash and depth are kept to
// reject a slot reused by a different position.
type hotEntry struct {
	hash  uint64
	depth int
	nodes uint64
}

// Cache persists perft node counts in BadgerDB, keyed by position hash and
// depth, with a ristretto cache in front for hot entries. Safe for
// concurrent use.
type Cache struct {
	db  *badger.DB
	hot *ristretto.Cache[uint64, hotEntry]
}

// Open opens the cache in dir, creating it if needed. An empty dir keeps
// everything in memory.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open node cache: %w", err)
	}

	hot, err := ristretto.NewCache(&ristretto.Config[uint64, hotEntry]{
		NumCounters:        hotEntries * 10,
		MaxCost:            hotEntries,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create hot cache: %w", err)
	}

	return &Cache{db: db, hot: hot}, nil
}

// Close closes the database
func (c *Cache) Close() error {
	c.hot.Close()
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Get returns the node count stored for hash at depth. Read errors count
// as a miss.
func (c *Cache) Get(hash uint64, depth int) (uint64, bool) {
	if e, ok := c.hot.Get(hotKey(hash, depth)); ok && e.hash == hash && e.depth == depth {
		return e.nodes, true
	}

	var nodes uint64
	found := false
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(nodeKey(hash, depth))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("node count for %016x: %d bytes", hash, len(val))
			}
			nodes = binary.BigEndian.Uint64(val)
			found = true
			return nil
		})
	})
	if err != nil || !found {
		return 0, false
	}

	c.hot.Set(hotKey(hash, depth), hotEntry{hash: hash, depth: depth, nodes: nodes}, 1)
	return nodes, true
}

// Put stores a node count.
func (c *Cache) Put(hash uint64, depth int, nodes uint64) error {
	if depth < 0 || depth > 255 {
		return fmt.Errorf("depth %d out of range", depth)
	}

	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, nodes)

	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(nodeKey(hash, depth), val)
	})
	if err != nil {
		return fmt.Errorf("store node count: %w", err)
	}

	c.hot.Set(hotKey(hash, depth), hotEntry{hash: hash, depth: depth, nodes: nodes}, 1)
	return nil
}

// Len returns the number of stored node counts.
func (c *Cache) Len() (int, error) {
	n := 0
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte{nodeKeyPrefix}
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Flush waits until pending hot-cache writes are visible.
func (c *Cache) Flush() {
	c.hot.Wait()
}

func nodeKey(hash uint64, depth int) []byte {
	key := make([]byte, 10)
	key[0] = nodeKeyPrefix
	binary.BigEndian.PutUint64(key[1:9], hash)
	key[9] = byte(depth)
	return key
}

// hotKey mixes the depth into the hash so different depths of one
// position land in different slots.
func hotKey(hash uint64, depth int) uint64 {
	return hash ^ (uint64(depth) * 0x9E3779B97F4A7C15)
}
