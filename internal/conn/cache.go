package conn

import (
	"github.com/collisiondb/collisiondb/internal/record"
	"github.com/collisiondb/collisiondb/internal/store"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ResultCache remembers query results per snapshot. Entries for replaced
// snapshots are never hit again and age out.
type ResultCache struct {
	lru *lru.Cache[string, []*record.Record]
}

func NewResultCache(size int) (*ResultCache, error) {
	c, err := lru.New[string, []*record.Record](size)
	if err != nil {
		return nil, err
	}
	return &ResultCache{c}, nil
}

func cacheKey(snap *store.Snapshot, plan_key string) string {
	return snap.Version.String() + "/" + plan_key
}

func (c *ResultCache) Get(snap *store.Snapshot, plan_key string) ([]*record.Record, bool) {
	return c.lru.Get(cacheKey(snap, plan_key))
}

func (c *ResultCache) Add(snap *store.Snapshot, plan_key string, records []*record.Record) {
	c.lru.Add(cacheKey(snap, plan_key), records)
}

func (c *ResultCache) Len() int { return c.lru.Len() }

func (c *ResultCache) Purge() { c.lru.Purge() }
