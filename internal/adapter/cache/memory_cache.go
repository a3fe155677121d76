package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/aq2208/backoffice-api/internal/entity"
	"github.com/aq2208/backoffice-api/internal/usecase"
)

// Generation is the invalidation token shared by every memo tied to the same
// entity. A write advances it atomically; entries stamped with an older
// value read as misses, so invalidation never enumerates keys. A concurrent
// reader sees either the old or the new value, never a torn state.
type Generation struct {
	n atomic.Uint64
}

func (g *Generation) Current() uint64 { return g.n.Load() }
func (g *Generation) Advance()        { g.n.Add(1) }

type memoEntry[T any] struct {
	value     T
	gen       uint64
	expiresAt time.Time
}

// Memo is a small TTL map bound to a Generation.
type Memo[T any] struct {
	gen *Generation
	ttl time.Duration

	mu    sync.RWMutex
	items map[string]memoEntry[T]
}

func NewMemo[T any](gen *Generation, ttl time.Duration) *Memo[T] {
	return &Memo[T]{gen: gen, ttl: ttl, items: make(map[string]memoEntry[T])}
}

func (m *Memo[T]) Get(key string) (T, bool) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()

	var zero T
	if !ok {
		return zero, false
	}
	if e.gen != m.gen.Current() || time.Now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

func (m *Memo[T]) Set(key string, value T) {
	m.mu.Lock()
	m.items[key] = memoEntry[T]{
		value:     value,
		gen:       m.gen.Current(),
		expiresAt: time.Now().Add(m.ttl),
	}
	m.mu.Unlock()
}

// CustomerCache memoizes customer search pages and single-customer lookups.
// Both memos share one generation, so any customer write empties both at
// once. Products and orders are deliberately not cached.
type CustomerCache struct {
	gen    Generation
	search *Memo[usecase.CustomerPage]
	byID   *Memo[entity.Customer]
}

func NewCustomerCache(ttl time.Duration) *CustomerCache {
	c := &CustomerCache{}
	c.search = NewMemo[usecase.CustomerPage](&c.gen, ttl)
	c.byID = NewMemo[entity.Customer](&c.gen, ttl)
	return c
}

func (c *CustomerCache) GetSearch(key string) (usecase.CustomerPage, bool) {
	return c.search.Get(key)
}

func (c *CustomerCache) SetSearch(key string, page usecase.CustomerPage) {
	c.search.Set(key, page)
}

func (c *CustomerCache) GetByID(id string) (entity.Customer, bool) {
	return c.byID.Get(id)
}

func (c *CustomerCache) SetByID(customer entity.Customer) {
	c.byID.Set(customer.ID, customer)
}

func (c *CustomerCache) Invalidate() {
	c.gen.Advance()
}

var _ usecase.CustomerCache = (*CustomerCache)(nil)
