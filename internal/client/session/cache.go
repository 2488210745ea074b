package session

import (
	"context"
	"sync"
)

// Cache is the in-memory observable mirror of the user record. It is filled
// once from the Store at construction and afterwards written only through
// explicit SetUser calls from the login/logout flows and the gateway's
// session-invalidation path; it never re-reads the Store on its own.
//
// Subscribers are invoked synchronously, in subscription order, on every
// SetUser. That synchronous delivery is what lets an already-settled guard
// react to a logout or a background 401 in the same call stack.
type Cache struct {
	mu   sync.Mutex
	user *UserRecord
	subs []*subscription
}

type subscription struct {
	fn func(*UserRecord)
}

// NewCache builds a cache primed from the store's current user record.
func NewCache(ctx context.Context, store *Store) *Cache {
	c := &Cache{}
	if u, ok := store.GetUser(ctx); ok {
		c.user = u
	}
	return c
}

// User returns the current record, or nil when signed out.
func (c *Cache) User() *UserRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// SetUser replaces the cached record (nil clears it) and notifies every
// subscriber with the new value before returning.
func (c *Cache) SetUser(u *UserRecord) {
	c.mu.Lock()
	c.user = u
	subs := make([]*subscription, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, s := range subs {
		s.fn(u)
	}
}

// Subscribe registers fn to run on every SetUser. The returned function
// removes the subscription; calling it more than once is harmless.
func (c *Cache) Subscribe(fn func(*UserRecord)) func() {
	s := &subscription{fn: fn}

	c.mu.Lock()
	c.subs = append(c.subs, s)
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, cur := range c.subs {
			if cur == s {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				break
			}
		}
	}
}
