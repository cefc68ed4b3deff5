package admin

import (
	"github.com/EATMove/CDT-sub001/internal/config"
	"github.com/EATMove/CDT-sub001/internal/session"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		NewIssuer,
		NewCredentials,
		NewController,
		NewHandler,
	),
)

// NewIssuer builds the admin token issuer shared by the password and SAML
// logins.
func NewIssuer(cfg *config.Config, clock clockwork.Clock) *session.Issuer {
	return session.NewIssuer(cfg.Admin.SessionSecret, clock)
}

func NewCredentials(cfg *config.Config) session.Credentials {
	return session.Credentials{
		Username:     cfg.Admin.Username,
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
	}
}
