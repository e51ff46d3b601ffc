package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/bluegyufordev/matzip-server/internal/token"
	"github.com/bluegyufordev/matzip-server/models"
)

// ctxKey is an enumerated context slot, one per cookie kind. A fixed enum
// (rather than keys derived from request data) guarantees two gates on the
// same route can never collide.
type ctxKey int

const (
	ctxAccessPayload ctxKey = iota
	ctxEmailPayload
	ctxEmailVerifiedPayload
	ctxOAuthIdxPayload
	ctxResetPwPayload
)

// tokenKind binds a cookie name to its missing-cookie message and the
// context slot its decoded payload lands in.
type tokenKind struct {
	cookie  string
	missing string
	ctx     ctxKey
}

var (
	kindAccess        = tokenKind{cookie: cookieAccessToken, missing: msgLoginRequired, ctx: ctxAccessPayload}
	kindEmail         = tokenKind{cookie: cookieEmail, missing: msgNoVerificationRequest, ctx: ctxEmailPayload}
	kindEmailVerified = tokenKind{cookie: cookieEmailVerified, missing: msgEmailVerificationNeeded, ctx: ctxEmailVerifiedPayload}
	kindOAuthIdx      = tokenKind{cookie: cookieOAuthIdx, missing: msgKakaoAuthNeeded, ctx: ctxOAuthIdxPayload}
	kindResetPw       = tokenKind{cookie: cookieResetPw, missing: msgNoResetRequest, ctx: ctxResetPwPayload}
)

// requireToken gates a route group on one cookie kind.
//
// A missing cookie answers 401 with the kind's own message so the client
// knows which step of the flow to restart. Verification failures share the
// token-level messages across kinds: expired → "토큰 만료", bad signature or
// malformed → "유효하지 않은 토큰", anything unexpected → 500.
//
// On success the decoded payload is stored in the kind's context slot for
// the downstream handler.
func (h *Handler) requireToken(kind tokenKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			cookie, err := r.Cookie(kind.cookie)
			if err != nil || cookie.Value == "" {
				writeMessage(w, http.StatusUnauthorized, kind.missing)
				return
			}

			payload, err := h.codec.Verify(token.ClassAccess, cookie.Value)
			if err != nil {
				switch {
				case errors.Is(err, token.ErrExpired):
					writeMessage(w, http.StatusUnauthorized, msgTokenExpired)
				case errors.Is(err, token.ErrInvalidSignature), errors.Is(err, token.ErrMalformed):
					log.Warn().Err(err).Str("cookie", kind.cookie).Msg("rejected auth cookie")
					writeMessage(w, http.StatusUnauthorized, msgTokenInvalid)
				default:
					log.Err(err).Str("cookie", kind.cookie).Msg("token verification failed unexpectedly")
					writeMessage(w, http.StatusInternalServerError, msgTokenDecodeError)
				}
				return
			}

			ctx := context.WithValue(r.Context(), kind.ctx, payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// payloadFromContext retrieves the payload a requireToken gate stored for
// the given kind. The boolean is false when the route was not gated on it.
func payloadFromContext(ctx context.Context, kind tokenKind) (models.TokenPayload, bool) {
	payload, ok := ctx.Value(kind.ctx).(models.TokenPayload)
	return payload, ok
}
