package model

import "time"

// SAMLFlow is kept in the server-side flow session between /saml/login and
// /saml/acs.
type SAMLFlow struct {
	RequestIDs []string
	StartedAt  time.Time
}
