package ward

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the RateLimit middleware.
type RateLimitConfig struct {
	Rate    float64                                      // requests per second
	Burst   int                                          // max burst
	KeyFunc func(r *http.Request) string                 // default: remote IP
	OnLimit func(w http.ResponseWriter, r *http.Request) // default: 429 response
	MaxIdle time.Duration                                // drop limiters idle longer than this (default: 5m)
}

// RateLimit returns middleware that applies per-key token-bucket rate
// limiting.
func RateLimit(cfg RateLimitConfig) Middleware {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = remoteIP
	}
	if cfg.OnLimit == nil {
		cfg.OnLimit = func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}
	}
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = 5 * time.Minute
	}

	reg := &limiterRegistry{
		limiters: make(map[string]*limiterEntry),
		newLimiter: func() *rate.Limiter {
			return rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst)
		},
		maxIdle: cfg.MaxIdle,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !reg.allow(cfg.KeyFunc(r)) {
				w.Header().Set("Retry-After", strconv.FormatFloat(1/cfg.Rate, 'f', 0, 64))
				cfg.OnLimit(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// limiterRegistry tracks one token bucket per key, pruning idle entries
// lazily on access.
type limiterRegistry struct {
	mu         sync.Mutex
	limiters   map[string]*limiterEntry
	newLimiter func() *rate.Limiter
	maxIdle    time.Duration
	lastPrune  time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func (g *limiterRegistry) allow(key string) bool {
	g.mu.Lock()
	now := time.Now()

	if now.Sub(g.lastPrune) >= time.Minute {
		for k, e := range g.limiters {
			if now.Sub(e.lastSeen) > g.maxIdle {
				delete(g.limiters, k)
			}
		}
		g.lastPrune = now
	}

	entry, ok := g.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: g.newLimiter()}
		g.limiters[key] = entry
	}
	entry.lastSeen = now
	g.mu.Unlock()

	return entry.limiter.Allow()
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
