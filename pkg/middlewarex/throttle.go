package middlewarex

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"buyback/pkg/httpx/reply"
	"buyback/pkg/logx"
	"buyback/pkg/ratelimit"
)

type limiter interface {
	Allow(ctx context.Context, key string) ratelimit.Result
}

// Throttle limits requests per client IP.
func Throttle(l limiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			res := l.Allow(ctx, clientIP(r))
			if !res.Allowed {
				logger(ctx).Warn("request throttled", slog.String(logx.FieldIP, clientIP(r)))
				reply.TooManyRequests(ctx, w, res.RetryAfter)

				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP берёт адрес из RemoteAddr. Заголовки прокси доверяются только
// через chi middleware.RealIP, который подменяет RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
