package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterTTL     = 10 * time.Minute
	limiterCleanup = time.Minute
)

type limiterEntry struct {
	l        *rate.Limiter
	lastSeen time.Time
}

// limiterPool: token bucket на ключ (IP или user_id), неиспользуемые удаляются по TTL.
type limiterPool struct {
	mu    sync.Mutex
	m     map[string]*limiterEntry
	rps   rate.Limit
	burst int
	once  sync.Once
}

func newLimiterPool(rps float64, burst int) *limiterPool {
	if rps <= 0 {
		rps = 10
	}
	if burst <= 0 {
		burst = 20
	}
	return &limiterPool{m: make(map[string]*limiterEntry), rps: rate.Limit(rps), burst: burst}
}

func (p *limiterPool) allow(key string) bool {
	p.once.Do(func() { go p.cleanupLoop() })
	p.mu.Lock()
	e, ok := p.m[key]
	if !ok {
		e = &limiterEntry{l: rate.NewLimiter(p.rps, p.burst)}
		p.m[key] = e
	}
	e.lastSeen = time.Now()
	p.mu.Unlock()
	return e.l.Allow()
}

func (p *limiterPool) cleanupLoop() {
	t := time.NewTicker(limiterCleanup)
	defer t.Stop()
	for range t.C {
		cutoff := time.Now().Add(-limiterTTL)
		p.mu.Lock()
		for k, e := range p.m {
			if e.lastSeen.Before(cutoff) {
				delete(p.m, k)
			}
		}
		p.mu.Unlock()
	}
}

// RateLimitAPI ограничивает запросы по IP и по user_id (если есть в контексте). 429 при превышении.
// Ставится после Auth, чтобы user_id уже был в контексте.
func RateLimitAPI(rps float64, burst int) func(http.Handler) http.Handler {
	byIP := newLimiterPool(rps*2, burst*2)
	byUser := newLimiterPool(rps, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !byIP.allow(clientIP(r)) {
				writeJSONError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			if userID := GetUserID(r.Context()); userID != "" && !byUser.allow(userID) {
				writeJSONError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if x := r.Header.Get("X-Real-Ip"); x != "" {
		return x
	}
	if x := r.Header.Get("X-Forwarded-For"); x != "" {
		first, _, _ := strings.Cut(x, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
