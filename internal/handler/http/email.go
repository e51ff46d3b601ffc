package http

import (
	"net/http"

	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/bluegyufordev/matzip-server/models"
)

// verifyEmail mails a verification code and parks a token binding the
// address in the email cookie. The confirm step requires that cookie, so
// the code can only be confirmed for the address it was sent to.
func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.SendCodeRequest
	if !h.decodeAndValidate(w, r, &request) {
		return
	}

	emailToken, err := h.services.EmailVerificationService.SendCode(ctx, request.Email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Str("email", request.Email).Msg("verification code sent")

	h.setCookie(w, cookieEmail, emailToken, h.app.VerificationCodeTTL)
	writeMessage(w, http.StatusOK, msgVerificationSent)
}

// verifyEmailConfirm checks the submitted code against the address carried
// by the email token. On success the email cookie is swapped for an
// emailVerified cookie, which is what the signup gates require.
func (h *Handler) verifyEmailConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	pending, ok := payloadFromContext(ctx, kindEmail)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgNoVerificationRequest)
		return
	}

	var request models.ConfirmCodeRequest
	if !h.decodeAndValidate(w, r, &request) {
		return
	}

	verifiedToken, err := h.services.EmailVerificationService.ConfirmCode(ctx, pending.Email, request.Code)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Str("email", pending.Email).Msg("email address verified")

	h.clearCookie(w, cookieEmail)
	h.setCookie(w, cookieEmailVerified, verifiedToken, h.app.VerificationCodeTTL)
	writeMessage(w, http.StatusOK, msgSuccess)
}
