// internal/common/auth/blacklist.go
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist stores revoked refresh-token IDs in Redis until they would have
// expired anyway. Logout writes here; refresh checks here.
type Blacklist struct {
	client *redis.Client
}

// NewBlacklist creates a Blacklist on the shared Redis client.
func NewBlacklist(client *redis.Client) *Blacklist {
	return &Blacklist{client: client}
}

func blacklistKey(jti string) string {
	return fmt.Sprintf("auth:blacklist:%s", jti)
}

// Revoke marks a token ID as revoked for ttl.
func (b *Blacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return b.client.Set(ctx, blacklistKey(jti), "1", ttl).Err()
}

// IsRevoked reports whether a token ID has been revoked.
func (b *Blacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("blacklist lookup failed: %w", err)
	}
	return n > 0, nil
}
