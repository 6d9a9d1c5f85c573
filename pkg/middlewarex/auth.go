package middlewarex

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"buyback/pkg/contextx"
	"buyback/pkg/errcodes"
	"buyback/pkg/httpx/reply"
)

// AdminToken пропускает только запросы с Authorization: Bearer <token>.
func AdminToken(token string) func(next http.Handler) http.Handler {
	expected := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || len(expected) == 0 || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(got)), expected) != 1 {
				reply.Problem(r.Context(), w, http.StatusUnauthorized, errcodes.AccessTokenInvalid, "Invalid or missing admin token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// UserEmail достаёт email покупателя, который проставляет шлюз
// аутентификации, и кладёт его в контекст.
func UserEmail(header string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := contextx.NewUserEmail(r.Header.Get(header))
			if email == "" || !strings.Contains(email.String(), "@") {
				reply.Problem(r.Context(), w, http.StatusUnauthorized, errcodes.UserEmailMissing, "Authenticated user email is required")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextx.WithUserEmail(r.Context(), email)))
		})
	}
}
