package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const clientIdleTTL = 10 * time.Minute

// RateLimiter keeps a token bucket per client IP.
type RateLimiter struct {
	clients sync.Map // map[string]*client
	stop    chan struct{}
	once    sync.Once
}

type client struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// NewRateLimiter creates a rate limiter with background cleanup.
// Call Stop() on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{stop: make(chan struct{})}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop terminates the background cleanup goroutine. Safe to call twice.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit returns middleware that allows maxPerMinute requests per IP with
// bursts of up to burst requests. A burst below 1 uses maxPerMinute.
func (rl *RateLimiter) Limit(maxPerMinute, burst int) Middleware {
	if burst < 1 {
		burst = maxPerMinute
	}
	every := rate.Limit(float64(maxPerMinute) / 60.0)
	retryAfter := strconv.Itoa(int(math.Ceil(60.0 / float64(maxPerMinute))))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := rl.client(clientIP(r), every, burst)
			if !c.limiter.Allow() {
				w.Header().Set("Retry-After", retryAfter)
				writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) client(key string, every rate.Limit, burst int) *client {
	val, ok := rl.clients.Load(key)
	if !ok {
		c := &client{limiter: rate.NewLimiter(every, burst)}
		val, _ = rl.clients.LoadOrStore(key, c)
	}
	c := val.(*client)
	c.lastSeen.Store(time.Now().UnixNano())
	return c
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.evictIdle(now)
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.clients.Range(func(key, value any) bool {
		c := value.(*client)
		if now.Sub(time.Unix(0, c.lastSeen.Load())) > clientIdleTTL {
			rl.clients.Delete(key)
		}
		return true
	})
}
