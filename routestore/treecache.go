package routestore

import (
	"sort"
	"strconv"
	"strings"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/pathfind"
)

type treeCacheEntry struct {
	tree     pathfind.Tree
	priority bundle.Priority
	size     bundle.Volume
}

// TreeCache is a capacity-bounded, least-recently-used cache of
// shortest-path trees, keyed by the exclusion set that produced them. A
// cached tree is reusable for a new bundle iff the new bundle is no more
// demanding than the one that built it: new.priority <= cached.priority and
// new.size <= cached.size, since a tree built for a higher-priority or
// larger bundle was validated against feasibility checks a less-demanding
// bundle automatically satisfies.
type TreeCache struct {
	capacity int
	order    []string // least-recently-used first
	entries  map[string]*treeCacheEntry
}

// NewTreeCache constructs a TreeCache holding at most capacity entries.
func NewTreeCache(capacity int) *TreeCache {
	return &TreeCache{capacity: capacity, entries: make(map[string]*treeCacheEntry)}
}

func cacheKey(excluded map[bundle.ContactID]bool) string {
	ids := make([]int, 0, len(excluded))
	for id := range excluded {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	return strings.Join(parts, ",")
}

func (c *TreeCache) touch(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, key)
}

// Lookup returns a cached tree for the given exclusion set that is reusable
// for a bundle with the given priority and size, or ok=false if no such
// entry exists.
func (c *TreeCache) Lookup(excluded map[bundle.ContactID]bool, priority bundle.Priority, size bundle.Volume) (pathfind.Tree, bool) {
	key := cacheKey(excluded)
	e, ok := c.entries[key]
	if !ok || priority > e.priority || size > e.size {
		return nil, false
	}

	c.touch(key)

	return e.tree, true
}

// Store records tree as the result for the given exclusion set, valid for
// any future bundle no more demanding than (priority, size). Evicts the
// least-recently-used entry if the cache is at capacity and key is new.
func (c *TreeCache) Store(excluded map[bundle.ContactID]bool, priority bundle.Priority, size bundle.Volume, tree pathfind.Tree) {
	key := cacheKey(excluded)
	if _, exists := c.entries[key]; !exists && len(c.order) >= c.capacity && c.capacity > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = &treeCacheEntry{tree: tree, priority: priority, size: size}
	c.touch(key)
}
