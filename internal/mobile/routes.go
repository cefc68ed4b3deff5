package mobile

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes is mounted at /api/mobile.
func (h *Handler) Routes() http.Handler {
	root := chi.NewRouter()

	root.Post("/auth/login", h.login)

	root.Group(func(r chi.Router) {
		r.Use(h.auth.Require)

		r.Get("/me", h.me)
		r.Get("/chapters", h.listChapters)
		r.Get("/chapters/{id}", h.getChapter)
		r.Get("/chapters/{id}/questions", h.listQuestions)
		r.Get("/sections/{id}", h.getSection)
	})

	return root
}
