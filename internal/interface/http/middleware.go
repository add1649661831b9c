package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	authuc "example.com/trendy-store/internal/usecase/auth"
)

type ctxKey int

const (
	ctxUserKey ctxKey = iota
	ctxSessionKey
)

const sessionCookie = "sid"

var (
	errUnauthenticated = errors.New("unauthenticated")
	errForbidden       = errors.New("forbidden")
)

// sessionMiddleware guarantees a session id for cart-scoped routes,
// minting a cookie when the browser has none.
func (a *API) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			sid = c.Value
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respondError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := a.tokenSvc.ParseToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *API) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := getAuthUser(r.Context())
		if user == nil {
			respondError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}
		if !user.IsAdmin {
			respondError(w, http.StatusForbidden, errForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getAuthUser(ctx context.Context) *authuc.Claims {
	if claims, ok := ctx.Value(ctxUserKey).(*authuc.Claims); ok {
		return claims
	}
	return nil
}

func getSessionID(ctx context.Context) string {
	if sid, ok := ctx.Value(ctxSessionKey).(string); ok {
		return sid
	}
	return ""
}
