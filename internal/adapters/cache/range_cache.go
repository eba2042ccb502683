package cache

import (
	"container/list"
	"sync"
	"time"

	"fxsummary/internal/domain"

	"github.com/jonboulle/clockwork"
)

const (
	DefaultCapacity = 100
	DefaultTTL      = time.Hour
)

type rangeEntry struct {
	key       string
	series    domain.RateSeries
	expiresAt time.Time
}

// RangeCache is a size and TTL bounded LRU of rate series keyed by exact date range.
// When full, expired entries are dropped first, then the least recently used one.
type RangeCache struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	ttl      time.Duration
	capacity int
	order    *list.List // front is most recently used
	items    map[string]*list.Element
}

func NewRangeCache(capacity int, ttl time.Duration, clock clockwork.Clock) *RangeCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RangeCache{
		clock:    clock,
		ttl:      ttl,
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

func (c *RangeCache) Get(rng domain.DateRange) (domain.RateSeries, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[rng.Key()]
	if !ok {
		return nil, false
	}
	e := el.Value.(*rangeEntry)
	if c.expired(e, c.clock.Now()) {
		c.remove(el)
		return nil, false
	}
	c.order.MoveToFront(el)
	return e.series.Clone(), true
}

func (c *RangeCache) Set(rng domain.DateRange, series domain.RateSeries) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	key := rng.Key()
	if el, ok := c.items[key]; ok {
		e := el.Value.(*rangeEntry)
		e.series = series.Clone()
		e.expiresAt = now.Add(c.ttl)
		c.order.MoveToFront(el)
		return
	}

	if len(c.items) >= c.capacity {
		c.purge(now)
	}
	for len(c.items) >= c.capacity {
		c.remove(c.order.Back())
	}

	e := &rangeEntry{key: key, series: series.Clone(), expiresAt: now.Add(c.ttl)}
	c.items[key] = c.order.PushFront(e)
}

// PurgeExpired drops every expired entry and reports how many were removed.
func (c *RangeCache) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.purge(c.clock.Now())
}

func (c *RangeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *RangeCache) purge(now time.Time) int {
	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if c.expired(el.Value.(*rangeEntry), now) {
			c.remove(el)
			removed++
		}
		el = prev
	}
	return removed
}

func (c *RangeCache) expired(e *rangeEntry, now time.Time) bool {
	return !now.Before(e.expiresAt)
}

func (c *RangeCache) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*rangeEntry).key)
}
