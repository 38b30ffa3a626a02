package cripta

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// KeyScheduleCache memoizes derived round keys by key value. Entries never
// change once stored, so a hit can be shared by concurrent callers.
type KeyScheduleCache struct {
	schedule      IKeySchedule
	cacheInstance *gocache.Cache
}

// NewKeyScheduleCache wraps schedule with a cache. A ttl of zero or less keeps
// entries until the process exits.
func NewKeyScheduleCache(schedule IKeySchedule, ttl time.Duration) *KeyScheduleCache {
	if schedule == nil {
		schedule = &DESKeySchedule{}
	}
	expiration := gocache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = 2 * ttl
	}
	return &KeyScheduleCache{
		schedule:      schedule,
		cacheInstance: gocache.New(expiration, cleanup),
	}
}

// RoundKeys returns the schedule for key, deriving it on a miss. The boolean
// reports whether the value came from the cache. Failed derivations are not
// cached. Every call returns its own copy, so callers cannot alter the entry.
func (c *KeyScheduleCache) RoundKeys(key Bits) (RoundKeys, bool, error) {
	id := key.String()
	if v, found := c.cacheInstance.Get(id); found {
		return v.(RoundKeys).Clone(), true, nil
	}

	keys, err := c.schedule.GenerateRoundKeys(key)
	if err != nil {
		return RoundKeys{}, false, err
	}
	c.cacheInstance.SetDefault(id, keys.Clone())
	return keys, false, nil
}

// GenerateRoundKeys lets the cache stand in for an IKeySchedule.
func (c *KeyScheduleCache) GenerateRoundKeys(masterKey Bits) (RoundKeys, error) {
	keys, _, err := c.RoundKeys(masterKey)
	return keys, err
}

func (c *KeyScheduleCache) Len() int {
	return c.cacheInstance.ItemCount()
}

func (c *KeyScheduleCache) Flush() {
	c.cacheInstance.Flush()
}
