package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/vmakarov/blogapi/internal/common"
	"github.com/vmakarov/blogapi/internal/server/users"
)

type ctxKey string

const userKey ctxKey = "user"

// requireAuth checks the bearer access token and stores the resolved user
// in the request context. Every failure is a uniform 401.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get(common.AuthorizationHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			s.writeError(w, r, common.ErrorUnauthorized)
			return
		}
		accessToken := strings.TrimPrefix(header, common.BearerPrefix)

		user, err := s.tokens.Authenticate(r.Context(), accessToken)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the authenticated user placed there by
// requireAuth, or nil.
func UserFromContext(ctx context.Context) *users.User {
	u, _ := ctx.Value(userKey).(*users.User)
	return u
}
