package apptoken

import (
	"fmt"
	"time"

	"github.com/EATMove/CDT-sub001/internal/access"
	"github.com/EATMove/CDT-sub001/internal/config"
	"github.com/EATMove/CDT-sub001/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

// Claims is the payload of a mobile app token. Tier is informational; the
// mobile API reloads the user and trusts the stored tier.
type Claims struct {
	Tier access.UserTier `json:"tier"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 tokens for mobile app users.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	issuer string
	clock  clockwork.Clock
}

func New(cfg *config.Config, clock clockwork.Clock) *Tokens {
	return &Tokens{
		secret: []byte(cfg.Mobile.JWTSecret),
		ttl:    cfg.Mobile.TokenTTL,
		issuer: cfg.Mobile.Issuer,
		clock:  clock,
	}
}

func (t *Tokens) Issue(u *model.User) (string, time.Time, error) {
	now := t.clock.Now()
	expiresAt := now.Add(t.ttl)

	claims := &Claims{
		Tier: u.Tier,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign app token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify only accepts HMAC-signed tokens from our own issuer that carry a
// subject and have not expired. Failures wrap model.ErrUnauthorized.
func (t *Tokens) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.clock.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid token claims", model.ErrUnauthorized)
	}
	return claims, nil
}
