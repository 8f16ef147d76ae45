package server

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/rshade/ecotrack/internal/activity"
	"github.com/rshade/ecotrack/internal/emissions"
)

// ResultCache memoizes parse results by hint and text.
type ResultCache struct {
	cache *gocache.Cache
}

// NewResultCache returns a cache whose entries live for ttl.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{cache: gocache.New(ttl, 2*ttl)}
}

func cacheKey(text string, hint emissions.Category) string {
	return string(hint) + "\x00" + text
}

// Get returns the cached activity for text under hint.
func (c *ResultCache) Get(text string, hint emissions.Category) (activity.Activity, bool) {
	if val, found := c.cache.Get(cacheKey(text, hint)); found {
		a, ok := val.(activity.Activity)
		return a, ok
	}
	return activity.Activity{}, false
}

// Set stores a with the default TTL.
func (c *ResultCache) Set(text string, hint emissions.Category, a activity.Activity) {
	c.cache.SetDefault(cacheKey(text, hint), a)
}

// Len returns the number of entries, including expired ones not yet evicted.
func (c *ResultCache) Len() int {
	return c.cache.ItemCount()
}

// Clear drops every entry.
func (c *ResultCache) Clear() {
	c.cache.Flush()
}
