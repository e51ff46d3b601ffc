package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/auth", func(r chi.Router) {
		// routes without a cookie gate
		r.Post("/signin", h.signIn)
		r.Post("/findid", h.findID)
		r.Post("/findpw", h.findPW)
		r.Post("/verify-email", h.verifyEmail)
		r.Get("/oauth/kakao", h.kakaoAuthorize)
		r.Get("/oauth/kakao/redirect", h.kakaoRedirect)

		// each group is gated by its own cookie kind
		r.Group(func(r chi.Router) {
			r.Use(h.requireToken(kindAccess))
			r.Delete("/signout", h.signOut)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.requireToken(kindEmail))
			r.Post("/verify-email/confirm", h.verifyEmailConfirm)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.requireToken(kindEmailVerified))
			r.Post("/signup", h.signUp)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.requireToken(kindOAuthIdx), h.requireToken(kindEmailVerified))
			r.Post("/oauth/signup", h.oauthSignUp)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.requireToken(kindResetPw))
			r.Put("/resetpw", h.resetPW)
		})
	})

	return router
}
