package http

import (
	"net/http"

	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/bluegyufordev/matzip-server/internal/service"
	"github.com/bluegyufordev/matzip-server/models"
)

// kakaoAuthorize sends the browser to Kakao's consent screen.
func (h *Handler) kakaoAuthorize(w http.ResponseWriter, r *http.Request) {
	authorizeURL, err := h.services.OAuthService.AuthorizeURL(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	http.Redirect(w, r, authorizeURL, http.StatusFound)
}

// kakaoRedirect handles the provider callback. A denied consent or missing
// code is rejected before any outbound call to Kakao. A returning linked
// user is signed in and sent home; a first-time user gets a pending-signup
// token in the oauthIdx cookie and is sent to the signup page.
func (h *Handler) kakaoRedirect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	query := r.URL.Query()
	code := query.Get("code")
	if query.Get("error") != "" || code == "" {
		log.Warn().Str("error", query.Get("error")).Msg("kakao consent was not granted")
		writeMessage(w, http.StatusBadRequest, msgKakaoAuthFailed)
		return
	}

	result, err := h.services.OAuthService.HandleCallback(ctx, code)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if result.SignedIn {
		log.Debug().Msg("linked kakao user signed in")
		h.setCookie(w, cookieAccessToken, result.AccessToken, h.app.AccessTokenTTL)
		http.Redirect(w, r, h.oauth.HomeRedirectURL, http.StatusFound)
		return
	}

	log.Debug().Msg("unlinked kakao user parked for signup")
	h.setCookie(w, cookieOAuthIdx, result.PendingToken, h.app.AccessTokenTTL)
	http.Redirect(w, r, h.oauth.SignupRedirectURL, http.StatusFound)
}

// oauthSignUp finishes a parked Kakao signup. Identity comes from the
// oauthIdx and emailVerified tokens; the body only carries the profile.
func (h *Handler) oauthSignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	pending, ok := payloadFromContext(ctx, kindOAuthIdx)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgKakaoAuthNeeded)
		return
	}
	verified, ok := payloadFromContext(ctx, kindEmailVerified)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgEmailVerificationNeeded)
		return
	}

	var request models.OAuthSignUpRequest
	if !h.decodeAndValidate(w, r, &request) {
		return
	}

	input := service.OAuthSignUpInput{
		OAuthIdx: pending.OAuthIdx,
		Nickname: request.Nickname,
		Code:     request.Code,
		Email:    verified.Email,
	}
	if err := h.services.OAuthService.SignUp(ctx, input); err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Int64("oauth_idx", pending.OAuthIdx).Msg("oauth account registered")

	h.clearCookie(w, cookieOAuthIdx)
	h.clearCookie(w, cookieEmailVerified)
	writeMessage(w, http.StatusOK, msgOAuthSignUpSuccess)
}
