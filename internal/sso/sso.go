package sso

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/EATMove/CDT-sub001/internal/config"
	"github.com/EATMove/CDT-sub001/internal/middleware"
	"github.com/EATMove/CDT-sub001/internal/render"
	"github.com/EATMove/CDT-sub001/internal/session"
	"github.com/crewjam/saml"
	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Handler lets an administrator log in through a SAML identity provider
// instead of the configured password. A successful assertion yields the same
// admin_session cookie as the password login.
type Handler struct {
	sp       *saml.ServiceProvider
	flows    *middleware.SessionManager
	issuer   *session.Issuer
	allowed  []string
	redirect string
	secure   bool
	log      *zap.Logger
}

type Params struct {
	fx.In

	Config *config.Config
	Flows  *middleware.SessionManager
	Issuer *session.Issuer
	Log    *zap.Logger
}

// New returns a nil Handler when SAML is disabled.
func New(p Params) (*Handler, error) {
	if !p.Config.SAML.Enabled {
		return nil, nil
	}

	sp, err := newServiceProvider(p.Config.SAML)
	if err != nil {
		return nil, err
	}

	return &Handler{
		sp:       sp,
		flows:    p.Flows,
		issuer:   p.Issuer,
		allowed:  p.Config.SAML.AllowedSubjects,
		redirect: p.Config.Admin.RedirectAfterLogin,
		secure:   p.Config.Server.Production,
		log:      p.Log.Named("sso"),
	}, nil
}

// Routes is mounted at /saml.
func (h *Handler) Routes() http.Handler {
	root := chi.NewRouter()
	root.Use(h.flows.Wrap)

	root.Get("/metadata", h.metadata)
	root.Get("/login", h.login)
	root.Post("/acs", h.acs)

	return root
}

func (h *Handler) metadata(w http.ResponseWriter, _ *http.Request) {
	if err := serveMetadata(h.sp, w); err != nil {
		h.log.Error("serve metadata", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	binding, location := ssoBinding(h.sp)

	authReq, err := h.sp.MakeAuthenticationRequest(location, binding, saml.HTTPPostBinding)
	if err != nil {
		render.Error(w, h.log, err)
		return
	}

	if err := h.flows.TrackRequest(r.Context(), authReq.ID); err != nil {
		render.Error(w, h.log, err)
		return
	}

	if binding == saml.HTTPRedirectBinding {
		redirectURL, err := authReq.Redirect("", h.sp)
		if err != nil {
			render.Error(w, h.log, err)
			return
		}
		http.Redirect(w, r, redirectURL.String(), http.StatusFound)
		return
	}

	if err := writePostForm(w, authReq.Post("")); err != nil {
		h.log.Error("write authn request form", zap.Error(err))
	}
}

func (h *Handler) acs(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		render.Message(w, http.StatusBadRequest, "malformed saml response")
		return
	}

	possibleRequestIDs := slices.Clone(h.flows.PendingRequests(r.Context()))
	if h.sp.AllowIDPInitiated {
		possibleRequestIDs = append(possibleRequestIDs, "")
	}

	assertion, err := h.sp.ParseResponse(r, possibleRequestIDs)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		var invalid *saml.InvalidResponseError
		if errors.As(err, &invalid) {
			fields = append(fields, zap.NamedError("reason", invalid.PrivateErr))
		}
		h.log.Warn("saml response rejected", fields...)
		render.Message(w, http.StatusForbidden, "saml login failed")
		return
	}

	subject := nameID(assertion)
	if !h.isAllowed(subject) {
		h.log.Warn("saml subject not allowed", zap.String("subject", subject))
		render.Message(w, http.StatusForbidden, "saml login failed")
		return
	}

	if err := h.flows.Finish(r.Context()); err != nil {
		h.log.Warn("finish saml flow", zap.Error(err))
	}

	session.SetCookie(w, h.issuer.Issue(subject), h.secure)
	h.log.Info("admin logged in via saml", zap.String("subject", subject))
	http.Redirect(w, r, h.redirect, http.StatusFound)
}

// isAllowed accepts any non-empty subject when no allow list is configured.
// Subjects with a colon cannot be carried by an admin token.
func (h *Handler) isAllowed(subject string) bool {
	if subject == "" || strings.Contains(subject, ":") {
		return false
	}
	if len(h.allowed) == 0 {
		return true
	}
	return slices.Contains(h.allowed, subject)
}

func nameID(a *saml.Assertion) string {
	if a == nil || a.Subject == nil || a.Subject.NameID == nil {
		return ""
	}
	return a.Subject.NameID.Value
}
