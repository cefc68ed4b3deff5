package middleware

import (
	"context"
	"encoding/gob"
	"errors"
	"net/http"
	"time"

	"github.com/EATMove/CDT-sub001/internal/config"
	"github.com/EATMove/CDT-sub001/internal/model"
	"github.com/alexedwards/scs/v2"
	"github.com/jonboulle/clockwork"
)

const (
	flowKey        = "saml_flow"
	flowCookieName = "cdt_flow"
	flowLifetime   = 10 * time.Minute

	// maxPendingRequests bounds how many unanswered AuthnRequests one browser
	// can have open.
	maxPendingRequests = 5
)

var (
	errFlowNotFound = errors.New("saml flow not found")
)

// SessionManager keeps short-lived server-side state for the SAML login
// flow. Admin authentication itself never touches it.
type SessionManager struct {
	impl  *scs.SessionManager
	clock clockwork.Clock
}

func NewSessionManager(cfg *config.Config, clock clockwork.Clock) (*SessionManager, error) {
	gob.Register(&model.SAMLFlow{})

	sm := &SessionManager{clock: clock}
	sm.impl = scs.New()
	sm.impl.Lifetime = flowLifetime
	sm.impl.Cookie.Name = flowCookieName
	sm.impl.Cookie.HttpOnly = true
	sm.impl.Cookie.Path = "/saml"
	// the IdP posts the response cross-site
	if cfg.Server.Production {
		sm.impl.Cookie.Secure = true
		sm.impl.Cookie.SameSite = http.SameSiteNoneMode
	} else {
		sm.impl.Cookie.SameSite = http.SameSiteLaxMode
	}

	return sm, nil
}

func (s *SessionManager) Wrap(next http.Handler) http.Handler {
	return s.impl.LoadAndSave(next)
}

func (s *SessionManager) Get(ctx context.Context) (*model.SAMLFlow, error) {
	flow, ok := s.impl.Get(ctx, flowKey).(*model.SAMLFlow)
	if !ok {
		return nil, errFlowNotFound
	}

	return flow, nil
}

// TrackRequest remembers an AuthnRequest id so the matching response can be
// accepted later.
func (s *SessionManager) TrackRequest(ctx context.Context, requestID string) error {
	flow, ok := s.impl.Get(ctx, flowKey).(*model.SAMLFlow)
	if !ok {
		flow = &model.SAMLFlow{}
	}

	flow.RequestIDs = append(flow.RequestIDs, requestID)
	if len(flow.RequestIDs) > maxPendingRequests {
		flow.RequestIDs = flow.RequestIDs[len(flow.RequestIDs)-maxPendingRequests:]
	}
	flow.StartedAt = s.clock.Now()

	s.impl.Put(ctx, flowKey, flow)
	return nil
}

// PendingRequests returns the tracked ids, or nil when no flow was started.
func (s *SessionManager) PendingRequests(ctx context.Context) []string {
	flow, err := s.Get(ctx)
	if err != nil {
		return nil
	}
	return flow.RequestIDs
}

func (s *SessionManager) Finish(ctx context.Context) error {
	return s.impl.Destroy(ctx)
}
