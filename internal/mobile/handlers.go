package mobile

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/EATMove/CDT-sub001/internal/access"
	"github.com/EATMove/CDT-sub001/internal/apptoken"
	"github.com/EATMove/CDT-sub001/internal/middleware"
	"github.com/EATMove/CDT-sub001/internal/model"
	"github.com/EATMove/CDT-sub001/internal/render"
	"github.com/EATMove/CDT-sub001/internal/repository"
	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const msgInvalidCredentials = "invalid credentials"

// Handler serves /api/mobile.
type Handler struct {
	repo   repository.Repository
	tokens *apptoken.Tokens
	auth   *middleware.UserAuth
	log    *zap.Logger
}

type Params struct {
	fx.In

	Repo   repository.Repository
	Tokens *apptoken.Tokens
	Auth   *middleware.UserAuth
	Log    *zap.Logger
}

func NewHandler(p Params) *Handler {
	return &Handler{
		repo:   p.Repo,
		tokens: p.Tokens,
		auth:   p.Auth,
		log:    p.Log.Named("mobile"),
	}
}

type loginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

type chapterView struct {
	model.Chapter
	Accessible bool `json:"accessible"`
}

type chapterDetail struct {
	chapterView
	Sections []model.SectionSummary `json:"sections"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, h.log, err)
		return
	}

	u, err := h.repo.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, model.ErrNotFound) {
		render.Message(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}
	if err != nil {
		render.Error(w, h.log, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		render.Message(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	token, expiresAt, err := h.tokens.Issue(u)
	if err != nil {
		render.Error(w, h.log, err)
		return
	}

	u.PasswordHash = ""
	render.JSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt, User: u})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromContext(r.Context())
	render.JSON(w, http.StatusOK, u)
}

func (h *Handler) listChapters(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromContext(r.Context())

	chapters, err := h.repo.ListChapters(r.Context())
	if err != nil {
		render.Error(w, h.log, err)
		return
	}

	views := make([]chapterView, 0, len(chapters))
	for _, c := range chapters {
		views = append(views, chapterView{
			Chapter:    c,
			Accessible: access.CanAccess(c.PaymentTier, u.Tier),
		})
	}
	render.JSON(w, http.StatusOK, views)
}

func (h *Handler) getChapter(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromContext(r.Context())

	c, err := h.repo.GetChapter(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, h.log, err)
		return
	}
	sections, err := h.repo.ListSections(r.Context(), c.ID)
	if err != nil {
		render.Error(w, h.log, err)
		return
	}

	detail := chapterDetail{
		chapterView: chapterView{Chapter: *c, Accessible: access.CanAccess(c.PaymentTier, u.Tier)},
		Sections:    make([]model.SectionSummary, 0, len(sections)),
	}
	for _, s := range sections {
		detail.Sections = append(detail.Sections, s.Summary())
	}
	render.JSON(w, http.StatusOK, detail)
}

func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromContext(r.Context())
	chapterID := chi.URLParam(r, "id")

	if err := h.checkChapter(r.Context(), chapterID, u); err != nil {
		render.Error(w, h.log, err)
		return
	}

	questions, err := h.repo.ListQuestions(r.Context(), chapterID)
	if err != nil {
		render.Error(w, h.log, err)
		return
	}
	render.JSON(w, http.StatusOK, questions)
}

func (h *Handler) getSection(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.UserFromContext(r.Context())

	s, err := h.repo.GetSection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, h.log, err)
		return
	}
	if err := h.checkChapter(r.Context(), s.ChapterID, u); err != nil {
		render.Error(w, h.log, err)
		return
	}
	render.JSON(w, http.StatusOK, s)
}

// checkChapter returns ErrForbidden when u's tier does not unlock the chapter.
func (h *Handler) checkChapter(ctx context.Context, chapterID string, u *model.User) error {
	c, err := h.repo.GetChapter(ctx, chapterID)
	if err != nil {
		return err
	}
	if !access.CanAccess(c.PaymentTier, u.Tier) {
		h.log.Debug("chapter locked",
			zap.String("chapter_id", c.ID),
			zap.String("payment_tier", string(c.PaymentTier)),
			zap.String("user_tier", string(u.Tier)),
		)
		return model.ErrForbidden
	}
	return nil
}
