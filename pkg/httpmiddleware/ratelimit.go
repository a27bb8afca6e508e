package httpmiddleware

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimitConfig configures the per-client rate limiter.
type RateLimitConfig struct {
	// Max is the maximum number of requests allowed per window.
	Max int64
	// Window is the duration of each window.
	Window time.Duration
	// TrustForwardHeader controls whether X-Forwarded-For / X-Real-IP are
	// trusted for client identification. Enable only behind a proxy that
	// strips these headers from client traffic.
	TrustForwardHeader bool
}

// RateLimit returns a middleware enforcing a per-client-IP rate limit with an
// in-memory store. When the limit is exceeded it responds with 429 and a JSON
// body. Every response carries X-RateLimit-Limit, X-RateLimit-Remaining, and
// X-RateLimit-Reset headers.
func RateLimit(cfg RateLimitConfig) Middleware {
	lim := limiter.New(
		memory.NewStore(),
		limiter.Rate{Limit: cfg.Max, Period: cfg.Window},
		limiter.WithTrustForwardHeader(cfg.TrustForwardHeader),
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := lim.GetIPKey(r)
			limCtx, err := lim.Get(r.Context(), key)
			if err != nil {
				// Limiter failure must not take the API down.
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.FormatInt(limCtx.Limit, 10))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(limCtx.Remaining, 10))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(limCtx.Reset, 10))

			if limCtx.Reached {
				h.Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"code":    http.StatusTooManyRequests,
					"message": "rate limit exceeded",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
