package resolver

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
)

// DefaultMatchCacheSize is the number of host/task combinations whose match is remembered.
const DefaultMatchCacheSize = 1024

type matchKey struct {
	generation uint64
	hostName   string
	taskType   string
	taskName   string
}

// matchCache remembers the index of the profile selected for a host/task combination.
// Keys include the settings generation, so entries of replaced settings are never returned
// and age out of the LRU.
type matchCache struct {
	lru *lru.Cache
}

func newMatchCache(size int) (*matchCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &matchCache{lru: cache}, nil
}

func (c *matchCache) get(generation uint64, ctx profile.JobContext) (int, bool) {
	if index, ok := c.lru.Get(keyOf(generation, ctx)); ok {
		return index.(int), true
	}
	return 0, false
}

func (c *matchCache) add(generation uint64, ctx profile.JobContext, index int) {
	c.lru.Add(keyOf(generation, ctx), index)
}

func keyOf(generation uint64, ctx profile.JobContext) matchKey {
	return matchKey{
		generation: generation,
		hostName:   ctx.HostName,
		taskType:   ctx.TaskType,
		taskName:   ctx.TaskName,
	}
}
