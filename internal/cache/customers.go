package cache

import (
	"context"
	"time"

	"dashboard/internal/core"
	"dashboard/internal/ports"
)

const customersKey = "customers"

// Customers caches the customer option list in front of a backend.
type Customers struct {
	next  ports.CustomerLister
	cache *LRUCache[[]core.CustomerOption]
}

// NewCustomers wraps next with a single-entry cache that expires after ttl.
func NewCustomers(next ports.CustomerLister, ttl time.Duration) *Customers {
	return &Customers{
		next:  next,
		cache: NewLRUCache[[]core.CustomerOption](1, ttl),
	}
}

func (c *Customers) ListCustomers(ctx context.Context) ([]core.CustomerOption, error) {
	if opts, ok := c.cache.Get(customersKey); ok {
		return opts, nil
	}
	opts, err := c.next.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(customersKey, opts)
	return opts, nil
}

// Invalidate forces the next ListCustomers to hit the backend.
func (c *Customers) Invalidate() {
	c.cache.Purge()
}

// Cleaner exposes the underlying cache to a Manager.
func (c *Customers) Cleaner() Cleaner { return c.cache }
