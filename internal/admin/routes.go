package admin

import (
	"net/http"

	"github.com/EATMove/CDT-sub001/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted at /api/admin.
func (h *Handler) Routes() http.Handler {
	root := chi.NewRouter()

	// No Auth
	root.Post("/auth/login", h.login)
	root.Post("/auth/logout", h.logout)

	// Auth
	root.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(h.issuer, h.log))

		r.Get("/auth/session", h.session)

		r.Get("/chapters", h.listChapters)
		r.Post("/chapters", h.createChapter)
		r.Get("/chapters/{id}", h.getChapter)
		r.Patch("/chapters/{id}", h.updateChapter)
		r.Delete("/chapters/{id}", h.deleteChapter)

		r.Get("/chapters/{id}/sections", h.listSections)
		r.Post("/chapters/{id}/sections", h.createSection)
		r.Get("/sections/{id}", h.getSection)
		r.Patch("/sections/{id}", h.updateSection)
		r.Delete("/sections/{id}", h.deleteSection)

		r.Get("/chapters/{id}/questions", h.listQuestions)
		r.Post("/chapters/{id}/questions", h.createQuestion)
		r.Get("/questions/{id}", h.getQuestion)
		r.Patch("/questions/{id}", h.updateQuestion)
		r.Delete("/questions/{id}", h.deleteQuestion)

		r.Get("/users", h.listUsers)
		r.Post("/users", h.createUser)
		r.Get("/users/{id}", h.getUser)
		r.Patch("/users/{id}", h.updateUser)
		r.Delete("/users/{id}", h.deleteUser)
	})

	return root
}
