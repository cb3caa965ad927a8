package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/form-builder/internal/errs"
	"github.com/deppfellow/form-builder/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// redisOpTimeout bounds a single limiter round trip to Redis.
const redisOpTimeout = 250 * time.Millisecond

// RedisRateLimiterStore is a fixed-window counter shared by every instance
// of the service. It implements echo's middleware.RateLimiterStore.
//
// Each identifier gets one key per window, ratelimit:<identifier>:<window>,
// incremented and given a TTL in a single transaction. When Redis is
// unreachable the request is allowed.
type RedisRateLimiterStore struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
	logger *zerolog.Logger
	now    func() time.Time
}

func NewRedisRateLimiterStore(client redis.Cmdable, limit int, window time.Duration, logger *zerolog.Logger) *RedisRateLimiterStore {
	if window <= 0 {
		window = time.Second
	}
	return &RedisRateLimiterStore{
		client: client,
		limit:  int64(limit),
		window: window,
		logger: logger,
		now:    time.Now,
	}
}

func (s *RedisRateLimiterStore) key(identifier string) string {
	return fmt.Sprintf("ratelimit:%s:%d", identifier, s.now().UnixNano()/int64(s.window))
}

// Allow implements middleware.RateLimiterStore.
func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	key := s.key(identifier)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, s.window)
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("rate limiter store unavailable, allowing request")
		return true, nil
	}

	return incr.Val() <= s.limit, nil
}

// RateLimitMiddleware enforces the per-caller request budget.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Store returns the Redis-backed store when a Redis client is configured,
// otherwise echo's in-memory store with the same budget.
func (r *RateLimitMiddleware) Store() middleware.RateLimiterStore {
	cfg := r.server.Config.Server
	if r.server.Redis != nil {
		return NewRedisRateLimiterStore(r.server.Redis, cfg.RateLimitRequests, cfg.RateLimitWindow, r.server.Logger)
	}

	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      perSecond(cfg.RateLimitRequests, cfg.RateLimitWindow),
		Burst:     cfg.RateLimitRequests,
		ExpiresIn: 3 * time.Minute,
	})
}

// perSecond converts "requests per window" to a token bucket refill rate.
func perSecond(requests int, window time.Duration) rate.Limit {
	if window <= 0 {
		return rate.Limit(requests)
	}
	return rate.Limit(float64(requests) / window.Seconds())
}

// Limiter builds the echo rate limiter around store, keyed by client IP.
func (r *RateLimitMiddleware) Limiter(store middleware.RateLimiterStore) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewForbiddenError("Unable to identify client", false)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().
				Str("identifier", identifier).
				Str("path", c.Path()).
				Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError("Rate limit exceeded")
		},
	})
}

// RecordRateLimitHit emits a RateLimitHit custom event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
