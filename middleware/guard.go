package middleware

import (
	"context"
	"net/http"

	"github.com/MrEthical07/authgate"
)

type userContextKey struct{}

// UserFromContext returns the user a [Guard] attached to the request context.
func UserFromContext(ctx context.Context) (*authgate.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*authgate.User)
	return user, ok
}

// Guard returns middleware enforcing strategy over every request whose path
// is not excluded. Requests the strategy cannot identify are rejected with
// 401; a strategy I/O failure is a 500, not a silent pass.
func Guard(strategy authgate.Strategy, excluded []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strategy == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if !strategy.RequireAuth(r.URL.Path, excluded) {
				next.ServeHTTP(w, r)
				return
			}

			user, err := strategy.Identify(r.Context(), authgate.WrapHTTP(r))
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if user == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
