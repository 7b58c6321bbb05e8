package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/teohome/storefront-backend/pkg/logger"
)

const (
	sessionCookieName = "teohome_cart"
	sessionHeader     = "X-Cart-Session"
	sessionMaxAge     = 30 * 24 * time.Hour
)

// CartSession resolves the shopper's cart session identifier. The header
// wins over the cookie so API clients without a cookie jar can pin their
// session; a first-time shopper gets a fresh identifier minted and set on
// both the cookie and the response header.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(sessionHeader)
			if sessionID == "" {
				if cookie, err := r.Cookie(sessionCookieName); err == nil {
					sessionID = cookie.Value
				}
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(sessionMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			w.Header().Set(sessionHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
