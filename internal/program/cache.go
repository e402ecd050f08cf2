package program

import (
	"encoding/json"
	"fmt"

	"github.com/2beens/roundtracker/internal/rounds"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const roundCacheExpire = 5 * 60 // seconds

// RoundCache keeps the latest persisted round per user in process memory.
// Lifecycle operations invalidate the entry of the user they touch.
type RoundCache struct {
	cache *freecache.Cache
}

func NewRoundCache(sizeMB int) *RoundCache {
	megabyte := 1024 * 1024
	return &RoundCache{
		cache: freecache.NewCache(sizeMB * megabyte),
	}
}

func roundCacheKey(userKey string) []byte {
	return []byte(fmt.Sprintf("round::%s", userKey))
}

func (c *RoundCache) Get(userKey string) (*rounds.Round, bool) {
	roundBytes, err := c.cache.Get(roundCacheKey(userKey))
	if err != nil {
		return nil, false
	}

	round := &rounds.Round{}
	if err := json.Unmarshal(roundBytes, round); err != nil {
		log.Errorf("failed to unmarshal cached round for %s: %s", userKey, err)
		return nil, false
	}
	return round, true
}

func (c *RoundCache) Set(userKey string, round *rounds.Round) {
	roundBytes, err := json.Marshal(round)
	if err != nil {
		log.Errorf("failed to marshal round %d for cache: %s", round.Number, err)
		return
	}
	if err := c.cache.Set(roundCacheKey(userKey), roundBytes, roundCacheExpire); err != nil {
		log.Errorf("failed to write round cache for %s: %s", userKey, err)
	}
}

func (c *RoundCache) Invalidate(userKey string) {
	c.cache.Del(roundCacheKey(userKey))
}

func (c *RoundCache) EntryCount() int64 {
	return c.cache.EntryCount()
}
