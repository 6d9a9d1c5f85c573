package middlewarex

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"buyback/pkg/errcodes"
	"buyback/pkg/httpx/reply"
	"buyback/pkg/logx"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			if rec := recover(); rec != nil {
				// ErrAbortHandler прерывает ответ намеренно, его не глушим.
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				logger(ctx).Error(
					"panic in handler",
					slog.Any(logx.FieldError, rec),
					slog.String(logx.FieldStack, string(debug.Stack())),
				)

				reply.Problem(ctx, w, http.StatusInternalServerError, errcodes.InternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
