package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/EATMove/CDT-sub001/internal/apptoken"
	"github.com/EATMove/CDT-sub001/internal/model"
	"github.com/EATMove/CDT-sub001/internal/render"
	"github.com/EATMove/CDT-sub001/internal/repository"
	"github.com/EATMove/CDT-sub001/internal/session"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const msgNotAuthenticated = "not authenticated"

// RequireAdmin lets a request through only with a valid admin_session cookie.
// The verified identity is available via AdminFromContext.
func RequireAdmin(issuer *session.Issuer, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := issuer.Verify(session.TokenFromRequest(r))
			if !ok {
				log.Debug("admin session rejected", zap.String("path", r.URL.Path))
				render.Message(w, http.StatusUnauthorized, msgNotAuthenticated)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), id)))
		})
	}
}

type UserAuth struct {
	tokens *apptoken.Tokens
	repo   repository.Repository
	log    *zap.Logger
}

type UserAuthParams struct {
	fx.In

	Tokens *apptoken.Tokens
	Repo   repository.Repository
	Log    *zap.Logger
}

func NewUserAuth(p UserAuthParams) *UserAuth {
	return &UserAuth{
		tokens: p.Tokens,
		repo:   p.Repo,
		log:    p.Log,
	}
}

// Require checks the bearer token and loads the user it names. The stored
// user, not the token, decides the tier.
func (a *UserAuth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			render.Message(w, http.StatusUnauthorized, msgNotAuthenticated)
			return
		}

		claims, err := a.tokens.Verify(token)
		if err != nil {
			a.log.Debug("app token rejected", zap.Error(err))
			render.Message(w, http.StatusUnauthorized, msgNotAuthenticated)
			return
		}

		user, err := a.repo.GetUser(r.Context(), claims.Subject)
		if errors.Is(err, model.ErrNotFound) {
			render.Message(w, http.StatusUnauthorized, msgNotAuthenticated)
			return
		}
		if err != nil {
			render.Error(w, a.log, err)
			return
		}

		user.PasswordHash = ""
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}
