// Package redis provides the Redis-backed wallet-balance cache, the middle
// rung of the balance fallback ladder.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/growvest/ledger-engine/pkg/logger"
	"github.com/growvest/ledger-engine/pkg/money"
)

const (
	// BalanceTTL bounds how stale a served fallback balance can be.
	BalanceTTL = 24 * time.Hour

	// keyPrefix namespaces balance keys.
	keyPrefix = "balance:"
)

// BalanceCache stores the last live wallet balance per user.
type BalanceCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewBalanceCache creates a new balance cache.
func NewBalanceCache(client *redis.Client, log *logger.Logger) *BalanceCache {
	return &BalanceCache{
		client: client,
		ttl:    BalanceTTL,
		logger: log.WithField("component", "balance_cache"),
	}
}

// cachedBalance is the stored representation.
type cachedBalance struct {
	Balance   string    `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetBalance retrieves the cached balance for a user. A missing key is a
// miss, not an error.
func (c *BalanceCache) GetBalance(ctx context.Context, userID string) (money.Amount, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+userID).Result()
	if err == redis.Nil {
		c.logger.Debug("cache miss", "user_id", userID)
		return money.Zero(), false, nil
	}
	if err != nil {
		return money.Zero(), false, fmt.Errorf("failed to get cached balance: %w", err)
	}

	var cached cachedBalance
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return money.Zero(), false, fmt.Errorf("failed to unmarshal cached balance: %w", err)
	}

	balance, err := money.FromString(cached.Balance)
	if err != nil {
		return money.Zero(), false, fmt.Errorf("corrupt cached balance: %w", err)
	}
	return balance, true, nil
}

// SetBalance stores the balance after a successful live fetch.
func (c *BalanceCache) SetBalance(ctx context.Context, userID string, balance money.Amount) error {
	data, err := json.Marshal(cachedBalance{
		Balance:   balance.String(),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal balance: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+userID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache balance: %w", err)
	}
	return nil
}

// Ping checks Redis connectivity for readiness probes.
func (c *BalanceCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
