package session

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestIssueVerify_roundTrip(t *testing.T) {
	assert := assert.New(t)

	issuer := NewIssuer("test-secret", clockwork.NewFakeClockAt(t0))

	for _, subject := range []string{"admin", "", "ops@example.com", "ünïcode"} {
		id, ok := issuer.Verify(issuer.Issue(subject))
		assert.True(ok, subject)
		assert.Equal(Identity{Subject: subject, Role: RoleAdmin}, id)
	}
}

func TestIssue_format(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	token := NewIssuer("test-secret", clockwork.NewFakeClockAt(t0)).Issue("admin")
	parts := strings.Split(token, ":")
	require.Len(parts, 3)
	assert.Equal("admin", parts[0])
	assert.Equal("1709294400", parts[1])
	assert.Len(parts[2], 64)
}

func TestVerify_flippedDigest(t *testing.T) {
	assert := assert.New(t)

	issuer := NewIssuer("test-secret", clockwork.NewFakeClockAt(t0))
	token := issuer.Issue("admin")

	for i := len(token) - 64; i < len(token); i++ {
		flipped := []byte(token)
		if flipped[i] == 'a' {
			flipped[i] = 'b'
		} else {
			flipped[i] = 'a'
		}
		_, ok := issuer.Verify(string(flipped))
		assert.False(ok, "flip at %d", i)
	}
}

func TestVerify_tamperedFields(t *testing.T) {
	assert := assert.New(t)

	issuer := NewIssuer("test-secret", clockwork.NewFakeClockAt(t0))
	parts := strings.Split(issuer.Issue("admin"), ":")

	_, ok := issuer.Verify("root:" + parts[1] + ":" + parts[2])
	assert.False(ok)

	_, ok = issuer.Verify(parts[0] + ":1709294401:" + parts[2])
	assert.False(ok)

	_, ok = NewIssuer("other-secret", clockwork.NewFakeClockAt(t0)).Verify(strings.Join(parts, ":"))
	assert.False(ok)
}

func TestVerify_expiry(t *testing.T) {
	assert := assert.New(t)

	clock := clockwork.NewFakeClockAt(t0)
	issuer := NewIssuer("test-secret", clock)
	token := issuer.Issue("admin")

	clock.Advance(86399 * time.Second)
	_, ok := issuer.Verify(token)
	assert.True(ok)

	clock.Advance(time.Second)
	_, ok = issuer.Verify(token)
	assert.False(ok)

	clock.Advance(time.Second)
	_, ok = issuer.Verify(token)
	assert.False(ok)
}

func TestVerify_malformed(t *testing.T) {
	assert := assert.New(t)

	issuer := NewIssuer("test-secret", clockwork.NewFakeClockAt(t0))
	valid := issuer.Issue("admin")

	inputs := []string{
		"",
		":",
		"::",
		":::",
		"admin",
		"admin:1709294400",
		"admin:1709294400:deadbeef:extra",
		"a:b:c:d:e",
		"admin:notanumber:" + issuer.digest("admin", "notanumber"),
		"admin:" + strings.Repeat("9", 40) + ":" + issuer.digest("admin", strings.Repeat("9", 40)),
		"admin:-:" + issuer.digest("admin", "-"),
		valid + ":",
		":" + valid,
		"\x00\xff:\x00:\xff",
	}
	for _, in := range inputs {
		assert.NotPanics(func() {
			_, ok := issuer.Verify(in)
			assert.False(ok, "%q", in)
		})
	}
}
