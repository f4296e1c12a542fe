// Package cache is the normalized client-side cache shared by every domain
// manager. It stores entity records keyed by (typename, id) and root query
// results keyed by operation field plus key arguments, and applies the
// registered field policies on every merge and derived read. Cache reads
// never fail: malformed or missing data degrades to the best available
// fallback value.
package cache

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"menuhub/internal/metrics"
)

const defaultMaxEntities = 1024

// Args carries the request arguments a policy may consult during merge or
// read (offset, pointId, orderType, ...).
type Args map[string]any

type MergeFunc func(existing, incoming any, args Args) any
type ReadFunc func(stored any, args Args) any

// FieldPolicy governs how one cached field is updated by incoming network
// responses (Merge) and how its value is computed at read time (Read).
// KeyArgs names the arguments that identify one logical cache entry; all
// other arguments (offset, limit) address positions within it.
type FieldPolicy struct {
	KeyArgs []string
	Merge   MergeFunc
	Read    ReadFunc
}

type Options struct {
	// MaxEntities bounds the normalized entity store; oldest records are
	// evicted first.
	MaxEntities int
	// Policies are merged over the built-in set; the caller wins on
	// conflicting type/field keys.
	Policies map[string]FieldPolicy
	Logger   *logrus.Logger
	Metrics  *metrics.Metrics
}

type Cache struct {
	mu       sync.RWMutex
	entities *lru.Cache[string, any]
	queries  map[string]any
	policies map[string]FieldPolicy
	log      *logrus.Logger
	metrics  *metrics.Metrics
}

func New(opts Options) *Cache {
	size := opts.MaxEntities
	if size <= 0 {
		size = defaultMaxEntities
	}

	c := &Cache{
		queries:  make(map[string]any),
		policies: BuiltinPolicies(),
		log:      opts.Logger,
		metrics:  opts.Metrics,
	}
	for key, pol := range opts.Policies {
		c.policies[key] = pol
	}

	store, _ := lru.NewWithEvict[string, any](size, func(key string, _ any) {
		c.metrics.CacheEvent("eviction")
	})
	c.entities = store
	return c
}

func entityKey(typename, id string) string {
	return typename + ":" + id
}

// queryKey builds the cache key for one logical query entry. Only the
// policy's KeyArgs participate; without a policy every argument does.
func (c *Cache) queryKey(field string, args Args) string {
	keyed := args
	if pol, ok := c.policies["Query."+field]; ok && len(pol.KeyArgs) > 0 {
		keyed = make(Args, len(pol.KeyArgs))
		for _, name := range pol.KeyArgs {
			if v, ok := args[name]; ok {
				keyed[name] = v
			}
		}
	}
	b, err := json.Marshal(keyed)
	if err != nil {
		// Unmarshalable args still need a stable-enough key.
		return field + ":" + fmt.Sprintf("%v", keyed)
	}
	return field + ":" + string(b)
}

// WriteQuery merges incoming into the cached entry for (field, args) through
// the field's merge policy and returns the merged value.
func (c *Cache) WriteQuery(field string, args Args, incoming any) any {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.queryKey(field, args)
	merged := incoming
	if pol, ok := c.policies["Query."+field]; ok && pol.Merge != nil {
		merged = pol.Merge(c.queries[key], incoming, args)
	}
	c.queries[key] = merged
	c.metrics.CacheEvent("write")
	return merged
}

// ReadQuery returns the cached entry for (field, args), passed through the
// field's read policy when one is registered.
func (c *Cache) ReadQuery(field string, args Args) (any, bool) {
	c.mu.RLock()
	key := c.queryKey(field, args)
	stored, ok := c.queries[key]
	pol, hasPol := c.policies["Query."+field]
	c.mu.RUnlock()

	if !ok {
		c.metrics.CacheEvent("miss")
		return nil, false
	}
	c.metrics.CacheEvent("hit")
	if hasPol && pol.Read != nil {
		return pol.Read(stored, args), true
	}
	return stored, true
}

// WriteEntity stores one normalized record, applying the type's field merge
// policies (image ordering) before the write.
func (c *Cache) WriteEntity(typename, id string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entities.Add(entityKey(typename, id), normalizeEntity(typename, v, c.policies))
	c.metrics.CacheEvent("write")
}

func (c *Cache) ReadEntity(typename, id string) (any, bool) {
	c.mu.RLock()
	v, ok := c.entities.Get(entityKey(typename, id))
	c.mu.RUnlock()
	if ok {
		c.metrics.CacheEvent("hit")
	} else {
		c.metrics.CacheEvent("miss")
	}
	return v, ok
}

// ResolveField computes a derived field value via the registered read
// policy. With no policy the stored value is returned unchanged.
func (c *Cache) ResolveField(typename, field string, stored any, args Args) any {
	c.mu.RLock()
	pol, ok := c.policies[typename+"."+field]
	c.mu.RUnlock()
	if !ok || pol.Read == nil {
		return stored
	}
	return pol.Read(stored, args)
}

// EvictQuery drops every cached entry for the named query field. Managers
// call this after successful writes to mark the related reads stale; it is
// best effort and not transactional with the triggering write.
func (c *Cache) EvictQuery(field string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := field + ":"
	for key := range c.queries {
		if strings.HasPrefix(key, prefix) {
			delete(c.queries, key)
			c.metrics.CacheEvent("eviction")
		}
	}
}

func (c *Cache) EvictEntity(typename, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// The LRU eviction callback records the metric.
	c.entities.Remove(entityKey(typename, id))
}

// Reset clears both stores.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entities.Purge()
	c.queries = make(map[string]any)
}
