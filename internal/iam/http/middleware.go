package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/cobaltgate/iam/internal/iam/domain"
	"github.com/cobaltgate/iam/internal/iam/service"
	"github.com/cobaltgate/iam/pkg/httpx"
)

// AuthnMiddleware verifies the bearer token and stashes the re-resolved
// identity in the request context. Token claims never reach the handlers;
// only the fresh identity does.
func AuthnMiddleware(auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, service.ErrInvalidToken)
				return
			}

			identity, err := auth.VerifyToken(r.Context(), token)
			if err != nil {
				writeError(w, service.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), httpx.CtxKeyIdentity, identity)
			ctx = context.WithValue(ctx, httpx.CtxKeyUserID, identity.AppID+"/"+identity.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

// identityFrom pulls the authenticated identity out of the context. Only
// handlers behind AuthnMiddleware may call this.
func identityFrom(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(httpx.CtxKeyIdentity).(domain.Identity)
	return identity, ok
}
