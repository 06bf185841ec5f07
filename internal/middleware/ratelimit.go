package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/codyseavey/dataset-ingest/internal/metrics"
)

const (
	limiterIdleTTL      = 15 * time.Minute
	limiterCleanupEvery = 2 * time.Minute
)

// RateLimiter enforces a per-client-IP request ceiling on the ingestion
// endpoint. Each client gets a token bucket sized to the per-minute cap and
// refilled at cap/minute, so a burst of cap+1 requests rejects the last one.
// Idle client entries are dropped by a janitor so the map stays bounded.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	limit   rate.Limit
	burst   int
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter builds a limiter allowing maxPerMinute requests per client.
func NewRateLimiter(maxPerMinute int) *RateLimiter {
	if maxPerMinute <= 0 {
		maxPerMinute = 60
	}
	return &RateLimiter{
		entries: make(map[string]*limiterEntry),
		limit:   rate.Limit(float64(maxPerMinute) / 60.0),
		burst:   maxPerMinute,
	}
}

// Middleware rejects over-limit requests with 429 and a Retry-After hint.
// Rejected requests never reach the ingest pipeline or its counters.
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		res := r.limiterFor(c.ClientIP()).Reserve()
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			metrics.RateLimitedTotal.Inc()
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, slow down.",
			})
			return
		}
		c.Next()
	}
}

// StartJanitor periodically drops limiter entries for clients idle longer
// than limiterIdleTTL. Stops when ctx is cancelled.
func (r *RateLimiter) StartJanitor(ctx context.Context) {
	go func() {
		t := time.NewTicker(limiterCleanupEvery)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				r.cleanup()
			}
		}
	}()
}

func (r *RateLimiter) limiterFor(clientIP string) *rate.Limiter {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if ent, ok := r.entries[clientIP]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := rate.NewLimiter(r.limit, r.burst)
	r.entries[clientIP] = &limiterEntry{lim: lim, lastSeen: now}
	return lim
}

func (r *RateLimiter) cleanup() {
	cutoff := time.Now().Add(-limiterIdleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()

	for ip, ent := range r.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(r.entries, ip)
		}
	}
}
