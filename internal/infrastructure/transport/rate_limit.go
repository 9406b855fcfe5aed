package transport

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type host struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles outbound requests per target host so a chatty
// command cannot trip the API's own limiter. Requests wait for a token
// instead of failing; the wait honours the request context.
type RateLimiter struct {
	hosts         map[string]*host
	mu            sync.Mutex
	limit         rate.Limit
	burst         int
	cleanupPeriod time.Duration
	hostTTL       time.Duration
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewRateLimiter starts the background cleanup of idle hosts; call
// Shutdown to stop it.
func NewRateLimiter(ctx context.Context, limit rate.Limit, burst int, cleanupPeriod, hostTTL time.Duration) *RateLimiter {
	rl := &RateLimiter{
		hosts:         make(map[string]*host),
		limit:         limit,
		burst:         burst,
		cleanupPeriod: cleanupPeriod,
		hostTTL:       hostTTL,
	}
	rl.ctx, rl.cancel = context.WithCancel(ctx)
	go rl.cleanupLoop()
	return rl
}

// Transport wraps next with the limiter.
func (rl *RateLimiter) Transport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if err := rl.limiterFor(r.URL.Host).Wait(r.Context()); err != nil {
			return nil, err
		}
		return next.RoundTrip(r)
	})
}

func (rl *RateLimiter) limiterFor(name string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	h, exists := rl.hosts[name]
	if !exists {
		limiter := rate.NewLimiter(rl.limit, rl.burst)
		rl.hosts[name] = &host{limiter: limiter, lastSeen: time.Now()}
		return limiter
	}

	h.lastSeen = time.Now()
	return h.limiter
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.ctx.Done():
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for name, h := range rl.hosts {
		if time.Since(h.lastSeen) > rl.hostTTL {
			delete(rl.hosts, name)
		}
	}
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.hosts)
}

// Shutdown stops the cleanup goroutine.
func (rl *RateLimiter) Shutdown() {
	rl.cancel()
}
