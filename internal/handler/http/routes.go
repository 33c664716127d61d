package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router with every route and middleware of the API.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(withBodyLimit)

	router.Get("/version", h.getServerVersion)

	// routes without authorization
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/change-password", h.changePassword)
		r.Post("/forgot-password", h.forgotPassword)
		r.Post("/reset-password", h.resetPassword)

		r.With(h.auth).Post("/recovery-key", h.rotateRecoveryKey)
	})

	router.Route("/docs", func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/", h.listDocuments)
		r.Get("/*", h.readDocument)
		r.Post("/*", h.writeDocument)
		r.Delete("/*", h.deleteDocument)
	})

	// registered last so the sub-routers inherit them
	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	return router
}
