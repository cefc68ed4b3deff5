package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCookie(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	rr := httptest.NewRecorder()
	SetCookie(rr, "admin:1:abc", true)

	cookies := rr.Result().Cookies()
	require.Len(cookies, 1)
	c := cookies[0]
	assert.Equal(CookieName, c.Name)
	assert.Equal("admin:1:abc", c.Value)
	assert.Equal("/", c.Path)
	assert.Equal(86400, c.MaxAge)
	assert.True(c.HttpOnly)
	assert.True(c.Secure)
	assert.Equal(http.SameSiteLaxMode, c.SameSite)
}

func TestClearCookie(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	rr := httptest.NewRecorder()
	ClearCookie(rr, false)

	cookies := rr.Result().Cookies()
	require.Len(cookies, 1)
	assert.Equal(CookieName, cookies[0].Name)
	assert.Equal("", cookies[0].Value)
	assert.True(cookies[0].MaxAge < 0)
	assert.False(cookies[0].Secure)
}

func TestTokenFromRequest(t *testing.T) {
	assert := assert.New(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal("", TokenFromRequest(r))

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "admin:1:abc"})
	assert.Equal("admin:1:abc", TokenFromRequest(r))
}
