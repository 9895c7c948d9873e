package cache

import (
	"container/list"
	"sync"

	"github.com/rxscan/backend/internal/domain"
)

// Bounded is a thread-safe fixed-capacity key/value store with
// oldest-insertion eviction. Set on an existing key removes and reinserts
// it, refreshing its recency. There is no TTL; entries are never
// invalidated by time.
type Bounded struct {
	capacity int
	mutex    sync.Mutex
	order    *list.List // front = oldest insertion
	entries  map[string]*list.Element
}

type entry struct {
	key   string
	value interface{}
}

// DefaultCapacity is used when a non-positive capacity is requested
const DefaultCapacity = 256

// NewBounded creates a bounded cache holding at most capacity entries
func NewBounded(capacity int) *Bounded {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bounded{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element, capacity),
	}
}

// Get retrieves a value by key, returning domain.ErrCacheMiss when absent
func (c *Bounded) Get(key string) (interface{}, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return el.Value.(*entry).value, nil
}

// Set stores a value. An existing key is reinserted as the newest entry;
// when the capacity is exceeded the single oldest-inserted entry is evicted.
func (c *Bounded) Set(key string, value interface{}) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if el, ok := c.entries[key]; ok {
		c.order.Remove(el)
		delete(c.entries, key)
	}
	c.entries[key] = c.order.PushBack(&entry{key: key, value: value})

	if c.order.Len() > c.capacity {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).key)
	}
}

// Len returns the current number of entries
func (c *Bounded) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.order.Len()
}

// Clear removes all entries
func (c *Bounded) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.order.Init()
	c.entries = make(map[string]*list.Element, c.capacity)
}

// Key builds a namespaced cache key so results from different resolvers
// never collide even when they share the same identifier.
func Key(namespace, id string) string {
	return namespace + ":" + id
}
