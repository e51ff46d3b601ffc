package http

import (
	"encoding/json"
	"net/http"

	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/bluegyufordev/matzip-server/internal/service"
	"github.com/bluegyufordev/matzip-server/internal/utils"
	"github.com/bluegyufordev/matzip-server/internal/validators"
	"github.com/bluegyufordev/matzip-server/models"
)

// decodeAndValidate decodes the JSON body into dst and runs it through the
// request validator. It writes the 400 response itself and reports whether
// the handler may proceed.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	log := logger.FromRequest(r)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeMessage(w, http.StatusBadRequest, msgInvalidInput)
		return false
	}

	if err := h.validator.Validate(r.Context(), dst); err != nil {
		log.Warn().Err(err).Msg("request body failed validation")
		writeMissingField(w, validators.Target(err))
		return false
	}

	return true
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.SignInRequest
	if !h.decodeAndValidate(w, r, &request) {
		return
	}

	session, err := h.services.AuthService.SignIn(ctx, request.LoginID, request.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Str("id", request.LoginID).Msg("user signed in")

	h.setCookie(w, cookieAccessToken, session.AccessToken, h.app.AccessTokenTTL)
	h.setCookie(w, cookieRefreshToken, session.RefreshToken, h.app.RefreshTokenTTL)
	writeMessage(w, http.StatusOK, msgSuccess)
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	principal, ok := payloadFromContext(ctx, kindAccess)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgLoginRequired)
		return
	}

	if err := h.services.AuthService.SignOut(ctx, principal); err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Int64("users_idx", principal.UsersIdx).Msg("user signed out")

	h.clearCookie(w, cookieAccessToken)
	h.clearCookie(w, cookieRefreshToken)
	writeMessage(w, http.StatusOK, msgSignOutSuccess)
}

// signUp registers a local account. The e-mail address comes from the
// emailVerified token, never from the body, so only addresses that finished
// the verification flow can be registered.
func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	verified, ok := payloadFromContext(ctx, kindEmailVerified)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgEmailVerificationNeeded)
		return
	}

	var request models.SignUpRequest
	if !h.decodeAndValidate(w, r, &request) {
		return
	}

	input := service.SignUpInput{
		LoginID:  request.LoginID,
		Password: request.Password,
		Nickname: request.Nickname,
		Code:     request.Code,
		Email:    verified.Email,
	}
	if err := h.services.AuthService.SignUp(ctx, input); err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Str("id", request.LoginID).Msg("local account registered")

	h.clearCookie(w, cookieEmailVerified)
	writeMessage(w, http.StatusOK, msgSignUpSuccess)
}

func (h *Handler) findID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request models.FindIDRequest
	if !h.decodeAndValidate(w, r, &request) {
		return
	}

	loginID, err := h.services.AuthService.FindLoginID(ctx, request.Email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.Response{Message: msgFindIDSuccess, ID: loginID}, http.StatusOK) //nolint:errcheck
}

// findPW verifies the account pair and parks a short-lived reset token in
// the resetPw cookie. The actual password change happens in resetPW.
func (h *Handler) findPW(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request models.FindPWRequest
	if !h.decodeAndValidate(w, r, &request) {
		return
	}

	resetToken, err := h.services.AuthService.RequestPasswordReset(ctx, request.LoginID, request.Email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.setCookie(w, cookieResetPw, resetToken, h.app.AccessTokenTTL)
	writeMessage(w, http.StatusOK, msgSuccess)
}

// resetPW changes the password of the account named by the resetPw token.
// The body carries only the replacement password.
func (h *Handler) resetPW(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	reset, ok := payloadFromContext(ctx, kindResetPw)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgNoResetRequest)
		return
	}

	var request models.ResetPWRequest
	if !h.decodeAndValidate(w, r, &request) {
		return
	}

	if err := h.services.AuthService.ResetPassword(ctx, reset.LoginID, reset.Email, request.Password); err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Str("id", reset.LoginID).Msg("password reset completed")

	h.clearCookie(w, cookieResetPw)
	writeMessage(w, http.StatusOK, msgPasswordChanged)
}
