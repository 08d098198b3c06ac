package httpmw

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cwrk-planet/bizos/internal/metrics"
	"github.com/cwrk-planet/bizos/pkg/httputil"
	"github.com/cwrk-planet/bizos/pkg/logger"

	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter: токен-бакет на IP клиента.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		idle:     10 * time.Minute,
		now:      time.Now,
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, ok := rl.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = e
	}
	e.lastSeen = rl.now()
	return e.limiter.AllowN(e.lastSeen, 1)
}

// Handler отдаёт 429, когда ключ исчерпал лимит; route идёт в метку метрики.
func (rl *RateLimiter) Handler(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// только адрес соединения: X-User-ID задаёт сам клиент
			key := clientIP(r)
			if !rl.allow(key) {
				metrics.RateLimitHits.WithLabelValues(route).Inc()
				logger.FromContext(r.Context()).Warn("rate limit exceeded", "key", key)
				w.Header().Set("Retry-After", "60")
				httputil.Error(w, http.StatusTooManyRequests, "Too many requests, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Cleanup удаляет лимитеры, не использованные дольше idle; вызывается из планировщика.
func (rl *RateLimiter) Cleanup(context.Context) (int64, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.idle)
	var n int64
	for k, e := range rl.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(rl.limiters, k)
			n++
		}
	}
	return n, nil
}

// clientIP берёт RemoteAddr; X-Forwarded-For учитывается только если
// перед лимитером стоит middleware.RealIP (trustProxy).
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
