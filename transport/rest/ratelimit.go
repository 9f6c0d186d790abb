package rest

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter - token bucket per client address. A non-positive rate disables limiting.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}

	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		rate:     limit,
		burst:    burst,
	}
}

func (that *RateLimiter) Allow(addr string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.limiters[addr]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(that.rate, that.burst)}
		that.limiters[addr] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

// Cleanup - drops limiters of clients idle for longer than limiterIdleTTL until ctx is done.
func (that *RateLimiter) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(limiterIdleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			that.evictIdle(time.Now().Add(-limiterIdleTTL))
		}
	}
}

func (that *RateLimiter) evictIdle(cutoff time.Time) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for addr, entry := range that.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(that.limiters, addr)
		}
	}
}

func (that *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !that.Allow(clientAddr(r)) {
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Detail: errRateLimited.Error()})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientAddr ignores forwarding headers.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
