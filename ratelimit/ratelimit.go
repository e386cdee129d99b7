// Package ratelimit throttles requests per client IP with a fixed-window
// counter kept in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/onlinestore/apperror"
	"github.com/user/onlinestore/render"
)

// Counter increments the hit count of key and returns the new value. The count
// starts over once window has passed since the first hit.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter implements Counter with INCR and EXPIRE.
type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// The first hit opens the window.
	if count == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// NewRedisClient connects to addr and pings it.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ratelimit: ping redis at %s: %w", addr, err)
	}
	return client, nil
}

// Limiter allows at most limit requests per client IP per window.
type Limiter struct {
	counter Counter
	prefix  string
	limit   int64
	window  time.Duration
}

// NewLimiter creates a Limiter whose keys start with prefix.
func NewLimiter(counter Counter, prefix string, limit int, window time.Duration) *Limiter {
	return &Limiter{counter: counter, prefix: prefix, limit: int64(limit), window: window}
}

// Middleware rejects requests over the limit with 429. When the counter fails
// the request is let through and the failure is logged.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := "rate_limit:" + l.prefix + ":" + clientIP(r)

		count, err := l.counter.Incr(r.Context(), key, l.window)
		if err != nil {
			slog.Warn("rate limit counter unavailable", "op", "ratelimit.Middleware", "err", err)
			next.ServeHTTP(w, r)
			return
		}

		if count > l.limit {
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			render.Error(w, r, apperror.NewTooManyRequestsError("too many requests, try again later", nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the host part of RemoteAddr, which middleware.RealIP has
// already replaced with the forwarded address when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
