package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter is a sliding-window limiter keyed by client IP.
type RateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter allows limit requests per window for each IP. Call Stop to
// end the background sweep.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
		done:   make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Allow records a hit for ip and reports whether it is within the limit.
// Rejected hits are not recorded.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	hits := prune(rl.hits[ip], now.Add(-rl.window))
	if len(hits) >= rl.limit {
		rl.hits[ip] = hits
		return false
	}
	rl.hits[ip] = append(hits, now)
	return true
}

// prune drops hits at or before cutoff. hits is in ascending time order.
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i, _ := slices.BinarySearchFunc(hits, cutoff, func(t, c time.Time) int {
		if t.After(c) {
			return 1
		}
		return -1
	})
	return slices.Delete(hits, 0, i)
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.done:
			return
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.window)
	for ip, hits := range rl.hits {
		if hits = prune(hits, cutoff); len(hits) == 0 {
			delete(rl.hits, ip)
		} else {
			rl.hits[ip] = hits
		}
	}
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// RateLimit rejects callers over the limiter's budget with 429 and a
// Retry-After header. Auth endpoints allow AUTH_RATE_LIMIT requests per 15 minutes.
func RateLimit(limiter *RateLimiter) func(http.HandlerFunc) http.HandlerFunc {
	retryAfter := strconv.Itoa(int(limiter.window.Seconds()))

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)
			if !limiter.Allow(ip) {
				slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
				w.Header().Set("Retry-After", retryAfter)
				writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
				return
			}
			next(w, r)
		}
	}
}

// getClientIP prefers proxy headers, then the connection's remote address.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
