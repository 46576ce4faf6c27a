package cache

import "time"

// Get returns the value stored under key. An expired entry is removed and
// reported as a miss.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V

	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)

		return zero, false
	}

	if ent.expired(c.clock()) {
		c.removeLocked(ent)
		c.expired.Add(1)
		c.misses.Add(1)

		return zero, false
	}

	c.hits.Add(1)
	c.moveToFront(ent)

	return ent.value, true
}

// Put stores value under key for ttl. A non-positive ttl never expires.
// Put returns how many entries were evicted to make room.
func (c *Cache[K, V]) Put(key K, value V, ttl time.Duration) int {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.clock().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.entries[key]; ok {
		ent.value = value
		ent.expiresAt = expiresAt
		c.moveToFront(ent)

		return 0
	}

	evicted := 0

	for len(c.entries) >= c.maxEntries && c.tail != nil {
		c.removeLocked(c.tail)

		evicted++
	}

	c.evictions.Add(int64(evicted))

	ent := &entry[K, V]{key: key, value: value, expiresAt: expiresAt}
	c.entries[key] = ent
	c.addToFront(ent)

	return evicted
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if ok {
		c.removeLocked(ent)
	}

	return ok
}

// PurgeExpired removes every expired entry and returns how many were removed.
func (c *Cache[K, V]) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	removed := 0

	for ent := c.tail; ent != nil; {
		prev := ent.prev

		if ent.expired(now) {
			c.removeLocked(ent)

			removed++
		}

		ent = prev
	}

	c.expired.Add(int64(removed))

	return removed
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*entry[K, V])
	c.head = nil
	c.tail = nil
}

func (c *Cache[K, V]) removeLocked(ent *entry[K, V]) {
	c.removeFromList(ent)
	delete(c.entries, ent.key)
}

// moveToFront moves an entry to the head of the LRU list.
func (c *Cache[K, V]) moveToFront(ent *entry[K, V]) {
	if ent == c.head {
		return
	}

	c.removeFromList(ent)
	c.addToFront(ent)
}

// addToFront adds an entry at the head of the LRU list.
func (c *Cache[K, V]) addToFront(ent *entry[K, V]) {
	ent.prev = nil
	ent.next = c.head

	if c.head != nil {
		c.head.prev = ent
	}

	c.head = ent

	if c.tail == nil {
		c.tail = ent
	}
}

// removeFromList removes an entry from the LRU list.
func (c *Cache[K, V]) removeFromList(ent *entry[K, V]) {
	if ent.prev != nil {
		ent.prev.next = ent.next
	} else {
		c.head = ent.next
	}

	if ent.next != nil {
		ent.next.prev = ent.prev
	} else {
		c.tail = ent.prev
	}

	ent.prev = nil
	ent.next = nil
}
