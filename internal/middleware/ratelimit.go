package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"weather-api/internal/config"
	apperrors "weather-api/internal/pkg/errors"

	"github.com/jonboulle/clockwork"
)

// RateLimiter allows each client IP a fixed number of requests per window.
type RateLimiter struct {
	limit  int
	window time.Duration
	clock  clockwork.Clock

	mu      sync.Mutex
	clients map[string]int
	reset   map[string]time.Time
}

func NewRateLimiter(cfg *config.RateLimitConfig, clock clockwork.Clock) *RateLimiter {
	return &RateLimiter{
		limit:   cfg.Limit,
		window:  cfg.Window,
		clock:   clock,
		clients: make(map[string]int),
		reset:   make(map[string]time.Time),
	}
}

func (rl *RateLimiter) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.limit < 0 {
			next.ServeHTTP(w, r)
			return
		}

		ip := ClientIP(r)
		count, resetAt := rl.take(ip)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if count > rl.limit {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", strconv.Itoa(int(resetAt.Sub(rl.clock.Now()).Seconds())+1))
			limited := apperrors.RateLimited("Rate limit exceeded. Please try again later.")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(limited.Status)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": limited.Message})
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(rl.limit-count))
		next.ServeHTTP(w, r)
	})
}

// take counts a request for ip and returns the count within the current window.
func (rl *RateLimiter) take(ip string) (int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	if resetAt, ok := rl.reset[ip]; !ok || !now.Before(resetAt) {
		rl.reset[ip] = now.Add(rl.window)
		rl.clients[ip] = 0
	}
	rl.clients[ip]++
	return rl.clients[ip], rl.reset[ip]
}

// Sweep drops clients whose window has ended.
func (rl *RateLimiter) Sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	for ip, resetAt := range rl.reset {
		if !now.Before(resetAt) {
			delete(rl.reset, ip)
			delete(rl.clients, ip)
		}
	}
}
