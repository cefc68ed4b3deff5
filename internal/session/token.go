package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// TTL is how long an issued admin token stays valid.
	TTL = 24 * time.Hour

	// RoleAdmin is the only role an admin token grants.
	RoleAdmin = "admin"

	separator = ":"
)

// Identity is what a valid admin token proves.
type Identity struct {
	Subject string `json:"subject"`
	Role    string `json:"role"`
}

// Issuer signs and verifies admin session tokens of the form
// "subject:issuedAt:hex(hmac-sha256(secret, subject:issuedAt))".
type Issuer struct {
	secret []byte
	clock  clockwork.Clock
}

func NewIssuer(secret string, clock clockwork.Clock) *Issuer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Issuer{
		secret: []byte(secret),
		clock:  clock,
	}
}

// Issue never fails and does not validate subject; the caller checks
// credentials first.
func (i *Issuer) Issue(subject string) string {
	issuedAt := strconv.FormatInt(i.clock.Now().Unix(), 10)
	return subject + separator + issuedAt + separator + i.digest(subject, issuedAt)
}

// Verify returns the identity carried by token. Anything that does not parse
// or fails the digest check is reported as false, as is a token older than TTL.
func (i *Issuer) Verify(token string) (Identity, bool) {
	parts := strings.Split(token, separator)
	if len(parts) != 3 {
		return Identity{}, false
	}
	subject, issuedAt, digest := parts[0], parts[1], parts[2]

	expected := i.digest(subject, issuedAt)
	if !hmac.Equal([]byte(expected), []byte(digest)) {
		return Identity{}, false
	}

	ts, err := strconv.ParseInt(issuedAt, 10, 64)
	if err != nil {
		return Identity{}, false
	}
	if i.clock.Now().Unix()-ts >= int64(TTL/time.Second) {
		return Identity{}, false
	}

	return Identity{Subject: subject, Role: RoleAdmin}, true
}

func (i *Issuer) digest(subject, issuedAt string) string {
	mac := hmac.New(sha256.New, i.secret)
	mac.Write([]byte(subject + separator + issuedAt))
	return hex.EncodeToString(mac.Sum(nil))
}
