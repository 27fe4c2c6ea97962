package appMiddleware

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/go-travel-itinerary/internal/api"
)

// Recoverer turns a panic into a generic JSON 500 and logs the stack.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "Recovered from panic",
					slog.Any("panic", rec),
					slog.String("req_id", middleware.GetReqID(r.Context())),
					slog.String("stack", string(debug.Stack())),
				)
				api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Timeout cancels the request context after d. When the deadline passes and the
// handler has written nothing, it answers with a JSON 504. A non-positive d disables it.
func Timeout(logger *slog.Logger, d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			if errors.Is(ctx.Err(), context.DeadlineExceeded) && ww.Status() == 0 {
				logger.WarnContext(ctx, "Request timed out",
					slog.String("req_id", middleware.GetReqID(r.Context())),
					slog.Duration("timeout", d))
				api.ErrorResponse(ww, r, http.StatusGatewayTimeout, "Request timed out")
			}
		})
	}
}

const limiterIdleExpiry = 10 * time.Minute

// ipRateLimiter hands out one token bucket per client IP. Idle buckets expire.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters *cache.Cache
	every    rate.Limit
	burst    int
}

func newIPRateLimiter(perMinute, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: cache.New(limiterIdleExpiry, 2*limiterIdleExpiry),
		every:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
	}
}

func (l *ipRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	var limiter *rate.Limiter
	if v, ok := l.limiters.Get(ip); ok {
		limiter = v.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(l.every, l.burst)
	}
	// refresh the idle expiry on every hit
	l.limiters.Set(ip, limiter, cache.DefaultExpiration)
	return limiter
}

// RateLimit limits requests per client IP. A non-positive rate disables it.
func RateLimit(logger *slog.Logger, perMinute, burst int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst <= 0 {
		burst = 1
	}
	limiters := newIPRateLimiter(perMinute, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			limiter := limiters.get(ip)
			if !limiter.Allow() {
				logger.WarnContext(r.Context(), "Rate limit exceeded", slog.String("ip", ip))
				res := limiter.Reserve()
				retry := res.Delay()
				res.Cancel()
				w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
				api.ErrorResponse(w, r, http.StatusTooManyRequests, "Rate limit exceeded. Try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP expects RealIP to have already rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
