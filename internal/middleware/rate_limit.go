package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Idle client limiters are forgotten after LimiterTTL, checked every CleanupInterval
const (
	CleanupInterval = 5 * time.Minute
	LimiterTTL      = 10 * time.Minute
)

// Decision is the outcome of one rate limit check
type Decision struct {
	Allowed   bool
	Remaining int
	// RetryAfter is how long until the next request would be allowed; zero when allowed
	RetryAfter time.Duration
	// Reset is when the client's burst is fully refilled
	Reset time.Time
}

// RateLimiter is a token bucket per client IP
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientBucket
	perMin   int
	perSec   rate.Limit
	burst    int
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiterWithConfig creates a RateLimiter allowing requestsPerMinute with the given burst.
// Call Stop to end its cleanup goroutine.
func NewRateLimiterWithConfig(requestsPerMinute, burstSize int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientBucket),
		perMin:  requestsPerMinute,
		perSec:  rate.Limit(float64(requestsPerMinute) / 60),
		burst:   burstSize,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Take spends one token for the client and reports the result
func (r *RateLimiter) Take(clientKey string) Decision {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, ok := r.clients[clientKey]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(r.perSec, r.burst)}
		r.clients[clientKey] = bucket
	}
	bucket.lastSeen = now

	allowed := bucket.limiter.AllowN(now, 1)
	tokens := bucket.limiter.TokensAt(now)

	d := Decision{
		Allowed:   allowed,
		Remaining: int(math.Max(0, math.Floor(tokens))),
		Reset:     now.Add(r.refillTime(float64(r.burst) - tokens)),
	}
	if !allowed {
		d.RetryAfter = r.refillTime(1 - tokens)
	}
	return d
}

// Allow reports whether the client may make another request
func (r *RateLimiter) Allow(clientKey string) bool {
	return r.Take(clientKey).Allowed
}

// Size returns the number of tracked clients
func (r *RateLimiter) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *RateLimiter) refillTime(tokens float64) time.Duration {
	if tokens <= 0 || r.perSec <= 0 {
		return 0
	}
	return time.Duration(tokens / float64(r.perSec) * float64(time.Second))
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictStale(r.now())
		case <-r.stop:
			return
		}
	}
}

// evictStale forgets clients idle for longer than LimiterTTL
func (r *RateLimiter) evictStale(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for key, bucket := range r.clients {
		if now.Sub(bucket.lastSeen) > LimiterTTL {
			delete(r.clients, key)
			evicted++
		}
	}
	if evicted > 0 {
		log.Debug().Int("evicted", evicted).Int("remaining", len(r.clients)).Msg("Evicted idle rate limiters")
	}
}

// RateLimitMiddleware limits each client IP and sets the X-RateLimit-* headers.
// Rejected requests get 429 with Retry-After.
func RateLimitMiddleware(rl *RateLimiter) echo.MiddlewareFunc {
	limit := strconv.Itoa(rl.perMin)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientKey := c.RealIP()
			d := rl.Take(clientKey)

			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", limit)
			header.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			header.Set("X-RateLimit-Reset", strconv.FormatInt(d.Reset.Unix(), 10))

			if d.Allowed {
				return next(c)
			}

			retryAfter := int(math.Ceil(d.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			header.Set("Retry-After", strconv.Itoa(retryAfter))

			log.Warn().
				Str("client", clientKey).
				Str("path", c.Request().URL.Path).
				Int("retry_after", retryAfter).
				Msg("Rate limit exceeded")

			return throttled(c, retryAfter, rl.perMin)
		}
	}
}
