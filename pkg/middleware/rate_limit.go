package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/docstore/pkg/metrics"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// clientKey identifies the caller for rate limiting.
func clientKey(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

func reject(c *gin.Context, limiter string, retryAfter int) {
	c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
	metrics.RateLimitRejected.WithLabelValues(limiter).Inc()
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
}

// bucketIdleTTL is how long a client's bucket may sit unused before it is
// dropped. A dropped bucket is recreated full, which is what it would have
// refilled to anyway.
const bucketIdleTTL = 10 * time.Minute

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// bucketStore holds one token bucket per client and evicts idle ones. The
// sweep runs inline at most once per ttl, so no goroutine is needed.
type bucketStore struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	ttl       time.Duration
	now       func() time.Time
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newBucketStore(rps float64, burst int) *bucketStore {
	ttl := bucketIdleTTL
	// never evict a bucket that has not refilled yet
	if rps > 0 {
		if refill := time.Duration(float64(burst) / rps * float64(time.Second)); refill > ttl {
			ttl = refill
		}
	}
	return &bucketStore{
		rps:     rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

func (s *bucketStore) allow(key string) bool {
	s.mu.Lock()
	now := s.now()
	if now.Sub(s.lastSweep) >= s.ttl {
		s.sweep(now)
	}
	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(s.rps, s.burst)}
		s.buckets[key] = b
	}
	b.lastSeen = now
	s.mu.Unlock()
	return b.lim.AllowN(now, 1)
}

// sweep drops buckets idle for longer than ttl. Callers hold mu.
func (s *bucketStore) sweep(now time.Time) {
	for k, b := range s.buckets {
		if now.Sub(b.lastSeen) > s.ttl {
			delete(s.buckets, k)
		}
	}
	s.lastSweep = now
}

func (s *bucketStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

// RateLimitMiddleware enforces a token bucket per client IP.
// rps = allowed events per second, burst = maximum tokens in bucket.
// Each middleware value owns its buckets; buckets idle for bucketIdleTTL
// are evicted so the map stays bounded by recently active clients.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	return rateLimitWithStore(newBucketStore(rps, burst))
}

func rateLimitWithStore(store *bucketStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !store.allow(clientKey(c)) {
			reject(c, "memory", 1)
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}

// RedisRateLimitMiddleware is a fixed-window limiter shared by every
// instance using the same Redis: INCR a per-window key and compare against
// floor(rps*windowSeconds)+burst. A nil client falls back to the in-memory
// limiter.
func RedisRateLimitMiddleware(client *redis.Client, rps float64, burst int, window time.Duration) gin.HandlerFunc {
	if client == nil {
		return RateLimitMiddleware(rps, burst)
	}
	windowSeconds := int(window.Seconds())
	if windowSeconds <= 0 {
		windowSeconds = 1
	}
	allowedPerWindow := int(rps*float64(windowSeconds)) + burst
	return func(c *gin.Context) {
		bucket := time.Now().Unix() / int64(windowSeconds)
		redisKey := fmt.Sprintf("rl:%s:%d", clientKey(c), bucket)

		ctx := c.Request.Context()
		cnt, err := client.Incr(ctx, redisKey).Result()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Rate limit check failed"})
			return
		}
		if cnt == 1 {
			_ = client.Expire(ctx, redisKey, time.Duration(windowSeconds+1)*time.Second).Err()
		}
		if int(cnt) > allowedPerWindow {
			reject(c, "redis", windowSeconds)
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("redis").Inc()
		c.Next()
	}
}
