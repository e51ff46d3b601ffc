package http

import (
	"net/http"
	"time"
)

// Cookie names forming the external auth contract. Each carries a signed
// access-class token except refreshToken, which carries the encrypted
// refresh token exactly as stored.
const (
	cookieAccessToken   = "accessToken"
	cookieRefreshToken  = "refreshToken"
	cookieEmail         = "email"
	cookieEmailVerified = "emailVerified"
	cookieOAuthIdx      = "oauthIdx"
	cookieResetPw       = "resetPw"
)

// setCookie writes an HttpOnly auth cookie scoped to the whole site. The
// Secure attribute follows configuration so local development over plain
// HTTP keeps working.
func (h *Handler) setCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.app.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearCookie expires the named cookie immediately.
func (h *Handler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.app.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
