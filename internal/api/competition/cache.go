// internal/api/competition/cache.go
package competition

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// occupancy is the cached applicant tally for one competition.
type occupancy struct {
	Total   int
	Waiting int
}

// countCache keeps per-competition applicant tallies in Redis so listings
// do not re-count on every request. Writes that change the tally must call
// Invalidate.
type countCache struct {
	client *redis.Client
	ttl    time.Duration
}

func newCountCache(client *redis.Client, ttl time.Duration) *countCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &countCache{client: client, ttl: ttl}
}

func occupancyKey(competitionID int64) string {
	return fmt.Sprintf("competition:applicants:%d", competitionID)
}

// Get returns the cached tally, or ok=false on miss or Redis error.
func (c *countCache) Get(ctx context.Context, competitionID int64) (occupancy, bool) {
	if c == nil || c.client == nil {
		return occupancy{}, false
	}
	raw, err := c.client.Get(ctx, occupancyKey(competitionID)).Result()
	if err != nil {
		return occupancy{}, false
	}
	var occ occupancy
	if _, err := fmt.Sscanf(raw, "%d:%d", &occ.Total, &occ.Waiting); err != nil {
		return occupancy{}, false
	}
	return occ, true
}

// Put stores a tally. Errors are dropped; the cache is best-effort.
func (c *countCache) Put(ctx context.Context, competitionID int64, occ occupancy) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, occupancyKey(competitionID), fmt.Sprintf("%d:%d", occ.Total, occ.Waiting), c.ttl).Err()
}

// Invalidate drops the tally after a registration or cancellation.
func (c *countCache) Invalidate(ctx context.Context, competitionID int64) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, occupancyKey(competitionID)).Err()
}
