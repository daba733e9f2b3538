package gateway

import (
	"time"

	"github.com/campaign-reporting/campaign-sheets/campaign"
)

// DefaultTTL is how long a worksheet snapshot is reused before the next read refetches it.
const DefaultTTL = 60 * time.Second

type cache struct {
	snapshot *campaign.Table
	fetched  time.Time
	ttl      time.Duration
	revision *Revision
}

// IsStale is true if there is no snapshot or the snapshot is at least ttl old at 'now'.
func (c *cache) IsStale(now time.Time) bool {
	if c.snapshot == nil {
		return true
	}

	return !now.Before(c.fetched.Add(c.ttl))
}

func (c *cache) Put(table *campaign.Table, now time.Time) {
	c.snapshot = table
	c.fetched = now
	c.revision = nil
}

func (c *cache) Get() *campaign.Table {
	return c.snapshot
}

func (c *cache) Invalidate() {
	c.snapshot = nil
	c.fetched = time.Time{}
	c.revision = nil
}
