package session

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Credentials is the statically configured admin login pair. When
// PasswordHash is set it is a bcrypt hash and takes precedence over Password.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Check reports whether username and password match the configured pair.
// It keeps no state between calls.
func (c Credentials) Check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1

	var passOK bool
	if c.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	}

	return userOK && passOK && c.Username != ""
}
