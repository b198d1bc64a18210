// Package availability filters candidate providers down to those able to
// fulfil a requested booking, memoizing remote check results for the
// lifetime of one selection context.
package availability

import (
	"sort"
	"strings"
	"sync"

	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
)

// SelectionContext is the combination of date, time and requested services
// that scopes cache validity. Results are never reused across semantically
// different booking attempts.
type SelectionContext struct {
	Date         string
	Time         string
	ServiceIDs   []string
	ServiceTitle string
}

// Key returns the deterministic composite key for the context
func (s SelectionContext) Key() string {
	return strings.Join([]string{s.Date, s.Time, joinSorted(s.ServiceIDs), s.ServiceTitle}, "|")
}

// Cache memoizes boolean availability check results. Entries live only as
// long as the selection context that produced them; there is no expiry
// timer. Writes are additive and idempotent, so concurrent checks for the
// same key cannot conflict.
type Cache struct {
	mu         sync.RWMutex
	contextKey string
	entries    map[string]bool
}

// NewCache creates an empty availability cache
func NewCache() *Cache {
	return &Cache{entries: make(map[string]bool)}
}

// ForContext scopes the cache to a selection context, discarding every
// entry if the context changed since the last call.
func (c *Cache) ForContext(sel SelectionContext) {
	key := sel.Key()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.contextKey != key {
		c.contextKey = key
		c.entries = make(map[string]bool)
	}
}

// Get retrieves a memoized result
func (c *Cache) Get(key string) (value, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok = c.entries[key]
	return value, ok
}

// Set memoizes a result
func (c *Cache) Set(key string, value bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Clear discards all entries without changing the context
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]bool)
}

// Len returns the number of memoized entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// WorkerKey is the cache key for a provider's "has any active worker" fact
func WorkerKey(providerID string) string {
	return "workers|" + providerID
}

// SlotKey is the cache key for one provider/slot/services check
func SlotKey(providerID string, slot entities.Slot, serviceIDs []string) string {
	return strings.Join([]string{"slot", providerID, slot.Date, slot.Time, joinSorted(serviceIDs)}, "|")
}

func joinSorted(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
