package admin

import (
	"errors"
	"net/http"

	"github.com/EATMove/CDT-sub001/internal/config"
	"github.com/EATMove/CDT-sub001/internal/middleware"
	"github.com/EATMove/CDT-sub001/internal/model"
	"github.com/EATMove/CDT-sub001/internal/render"
	"github.com/EATMove/CDT-sub001/internal/session"
	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Handler serves /api/admin.
type Handler struct {
	ctrl   *Controller
	issuer *session.Issuer
	secure bool
	log    *zap.Logger
}

type HandlerParams struct {
	fx.In

	Controller *Controller
	Issuer     *session.Issuer
	Config     *config.Config
	Log        *zap.Logger
}

func NewHandler(p HandlerParams) *Handler {
	return &Handler{
		ctrl:   p.Controller,
		issuer: p.Issuer,
		secure: p.Config.Server.Production,
		log:    p.Log.Named("admin"),
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req model.AdminLoginRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, h.log, err)
		return
	}

	token, err := h.ctrl.Login(req.Username, req.Password)
	if errors.Is(err, model.ErrUnauthorized) {
		h.log.Info("admin login failed", zap.String("remote_addr", r.RemoteAddr))
		render.Message(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		render.Error(w, h.log, err)
		return
	}

	session.SetCookie(w, token, h.secure)
	h.log.Info("admin logged in", zap.String("subject", req.Username))
	render.JSON(w, http.StatusOK, map[string]string{"subject": req.Username})
}

func (h *Handler) logout(w http.ResponseWriter, _ *http.Request) {
	session.ClearCookie(w, h.secure)
	render.JSON(w, http.StatusOK, nil)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		render.Message(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	render.JSON(w, http.StatusOK, id)
}

func (h *Handler) listChapters(w http.ResponseWriter, r *http.Request) {
	chapters, err := h.ctrl.ListChapters(r.Context())
	h.respond(w, http.StatusOK, chapters, err)
}

func (h *Handler) getChapter(w http.ResponseWriter, r *http.Request) {
	ch, err := h.ctrl.GetChapter(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, http.StatusOK, ch, err)
}

func (h *Handler) createChapter(w http.ResponseWriter, r *http.Request) {
	var req model.CreateChapterRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, h.log, err)
		return
	}
	ch, err := h.ctrl.CreateChapter(r.Context(), &req)
	h.respond(w, http.StatusCreated, ch, err)
}

func (h *Handler) updateChapter(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateChapterRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, h.log, err)
		return
	}
	ch, err := h.ctrl.UpdateChapter(r.Context(), chi.URLParam(r, "id"), &req)
	h.respond(w, http.StatusOK, ch, err)
}

func (h *Handler) deleteChapter(w http.ResponseWriter, r *http.Request) {
	err := h.ctrl.DeleteChapter(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, http.StatusOK, nil, err)
}

func (h *Handler) listSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.ctrl.ListSections(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, http.StatusOK, sections, err)
}

func (h *Handler) getSection(w http.ResponseWriter, r *http.Request) {
	s, err := h.ctrl.GetSection(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, http.StatusOK, s, err)
}

func (h *Handler) createSection(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSectionRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, h.log, err)
		return
	}
	s, err := h.ctrl.CreateSection(r.Context(), chi.URLParam(r, "id"), &req)
	h.respond(w, http.StatusCreated, s, err)
}

func (h *Handler) updateSection(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateSectionRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, h.log, err)
		return
	}
	s, err := h.ctrl.UpdateSection(r.Context(), chi.URLParam(r, "id"), &req)
	h.respond(w, http.StatusOK, s, err)
}

func (h *Handler) deleteSection(w http.ResponseWriter, r *http.Request) {
	err := h.ctrl.DeleteSection(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, http.StatusOK, nil, err)
}

func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.ctrl.ListQuestions(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, http.StatusOK, questions, err)
}

func (h *Handler) getQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.ctrl.GetQuestion(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, http.StatusOK, q, err)
}

func (h *Handler) createQuestion(w http.ResponseWriter, r *http.Request) {
	var req model.CreateQuestionRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, h.log, err)
		return
	}
	q, err := h.ctrl.CreateQuestion(r.Context(), chi.URLParam(r, "id"), &req)
	h.respond(w, http.StatusCreated, q, err)
}

func (h *Handler) updateQuestion(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateQuestionRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, h.log, err)
		return
	}
	q, err := h.ctrl.UpdateQuestion(r.Context(), chi.URLParam(r, "id"), &req)
	h.respond(w, http.StatusOK, q, err)
}

func (h *Handler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	err := h.ctrl.DeleteQuestion(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, http.StatusOK, nil, err)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.ctrl.GetUsers(r.Context())
	h.respond(w, http.StatusOK, users, err)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.ctrl.GetUser(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, http.StatusOK, u, err)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, h.log, err)
		return
	}
	u, err := h.ctrl.CreateUser(r.Context(), &req)
	h.respond(w, http.StatusCreated, u, err)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateUserRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, h.log, err)
		return
	}
	u, err := h.ctrl.UpdateUser(r.Context(), chi.URLParam(r, "id"), &req)
	h.respond(w, http.StatusOK, u, err)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	err := h.ctrl.DeleteUser(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, http.StatusOK, nil, err)
}

func (h *Handler) respond(w http.ResponseWriter, status int, data any, err error) {
	if err != nil {
		render.Error(w, h.log, err)
		return
	}
	render.JSON(w, status, data)
}
