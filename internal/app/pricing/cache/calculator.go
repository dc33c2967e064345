package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/calculate_prices"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
	"github.com/light-bringer/pricing-service/internal/pkg/metrics"
)

const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// Calculator is the uncached calculation.
type Calculator interface {
	Execute(ctx context.Context, req *calculate_prices.Request) ([]*domain.CalculatedPrice, error)
}

// CachedCalculator serves calculations from Redis when it can and from the
// wrapped Calculator otherwise. Redis failures never fail a calculation.
type CachedCalculator struct {
	next    Calculator
	client  *redis.Client
	ttl     time.Duration
	logger  *logger.Logger
	metrics *metrics.PricingMetrics
}

// NewCachedCalculator wraps next. The TTL bounds how long a result may lag
// behind a list window opening or closing.
func NewCachedCalculator(next Calculator, client *redis.Client, ttl time.Duration, l *logger.Logger, m *metrics.PricingMetrics) *CachedCalculator {
	if l == nil {
		l = logger.Nop()
	}
	return &CachedCalculator{next: next, client: client, ttl: ttl, logger: l, metrics: m}
}

func (c *CachedCalculator) Execute(ctx context.Context, req *calculate_prices.Request) ([]*domain.CalculatedPrice, error) {
	key, err := c.key(ctx, req)
	if err != nil {
		c.fail(ctx, "calculated price cache unavailable", err)
		return c.next.Execute(ctx, req)
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []*domain.CalculatedPrice
		if err := json.Unmarshal(payload, &cached); err == nil {
			c.metrics.IncCache(resultHit)
			return cached, nil
		}
		c.fail(ctx, "discarding unreadable cache entry", err)
	case err == redis.Nil:
		c.metrics.IncCache(resultMiss)
	default:
		c.fail(ctx, "calculated price cache read failed", err)
	}

	results, err := c.next.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(results)
	if err != nil {
		return results, nil
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.fail(ctx, "calculated price cache write failed", err)
	}
	return results, nil
}

// key hashes the request. encoding/json sorts map keys, so equal contexts
// always hash equally.
func (c *CachedCalculator) key(ctx context.Context, req *calculate_prices.Request) (string, error) {
	ver, err := currentVersion(ctx, c.client)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%s:%d:%s", keyPrefix, ver, hex.EncodeToString(sum[:])), nil
}

func (c *CachedCalculator) fail(ctx context.Context, msg string, err error) {
	c.metrics.IncCache(resultError)
	c.logger.WarnErr(ctx, msg, err)
}
