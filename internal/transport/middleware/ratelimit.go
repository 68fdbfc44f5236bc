package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// bucketIdleTTL is how long an untouched bucket survives a sweep.
const bucketIdleTTL = 10 * time.Minute

// RateLimiter throttles API calls per client host with a token bucket.
// The operator console and donorctl poll the donor list, so the budget is
// per minute rather than per second.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type bucket struct {
	tokens float64
	seen   time.Time
}

// NewRateLimiter starts a limiter whose idle buckets are swept every
// cleanupInterval. Stop must be called on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := newRateLimiter(time.Now)
	go rl.sweepLoop(cleanupInterval)
	return rl
}

func newRateLimiter(now func() time.Time) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		now:     now,
		stop:    make(chan struct{}),
	}
}

// Stop terminates the sweeper. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit allows perMinute requests per host with bursts up to the same amount.
// A non-positive budget disables limiting.
func (rl *RateLimiter) Limit(perMinute int) Middleware {
	return func(next http.Handler) http.Handler {
		if perMinute <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wait, ok := rl.take(hostOf(r), float64(perMinute))
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// take spends one token from the host's bucket. When the bucket is empty it
// reports how long until the next token.
func (rl *RateLimiter) take(host string, perMinute float64) (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[host]
	if !ok {
		b = &bucket{tokens: perMinute, seen: now}
		rl.buckets[host] = b
	}

	perSecond := perMinute / 60
	b.tokens = math.Min(perMinute, b.tokens+now.Sub(b.seen).Seconds()*perSecond)
	b.seen = now

	if b.tokens < 1 {
		missing := (1 - b.tokens) / perSecond
		return time.Duration(missing * float64(time.Second)), false
	}
	b.tokens--
	return 0, true
}

// sweep drops buckets idle for longer than bucketIdleTTL.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-bucketIdleTTL)
	for host, b := range rl.buckets {
		if b.seen.Before(cutoff) {
			delete(rl.buckets, host)
		}
	}
}

func (rl *RateLimiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

// hostOf drops the port so every connection from one machine shares a bucket.
func hostOf(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
