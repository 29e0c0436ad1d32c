package http_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sagarc03/showoff"
)

func TestEmbeddedTheme_LoginForm(t *testing.T) {
	f := newFixture(t, withEmbeddedTheme(t))
	f.gate.On("Check", mock.Anything, "secret", "").Return(showoff.Challenge, nil)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/secret/login?next=%2Fsecret%2Fpage%2F2", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>secret is protected</h1>")
	assert.Contains(t, body, `action="/secret/login"`)
	assert.Contains(t, body, `name="password"`)
	assert.Contains(t, body, `value="/secret/page/2"`)
	assert.NotContains(t, body, "Invalid username or password.")
}

func TestEmbeddedTheme_LoginFailureShowsError(t *testing.T) {
	f := newFixture(t, withEmbeddedTheme(t))
	f.gate.On("Check", mock.Anything, "secret", "").Return(showoff.Challenge, nil)
	f.gate.On("AttemptLogin", mock.Anything, "tok-1", "secret", "guest", "wrong").
		Return(showoff.Session{}, showoff.ErrInvalidCredentials)

	req := postForm("/secret/login", url.Values{"username": {"guest"}, "password": {"wrong"}})
	req.AddCookie(f.sessionCookie(t, "tok-1"))
	rec := f.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Invalid username or password.")
	assert.Contains(t, body, `name="password"`)
	assert.Contains(t, body, `value="guest"`)
	f.gate.AssertExpectations(t)
}

func TestEmbeddedTheme_LoginUnderPrefix(t *testing.T) {
	f := newFixture(t, withPrefix(t, "/photos", nil), withEmbeddedTheme(t))
	f.gate.On("Check", mock.Anything, "secret", "").Return(showoff.Challenge, nil)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/photos/secret/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/photos/secret/login"`)
	assert.Contains(t, rec.Body.String(), `href="/photos/static/style.css"`)
}

func TestEmbeddedTheme_NotFoundPage(t *testing.T) {
	f := newFixture(t, withEmbeddedTheme(t))

	rec := f.do(httptest.NewRequest(http.MethodGet, "/a/b/c/d/e", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Not found</h1>")
	assert.Contains(t, body, "Nothing lives at /a/b/c/d/e.")
	assert.NotContains(t, body, "404 Not Found")
}

func TestEmbeddedTheme_NotFoundFromController(t *testing.T) {
	f := newFixture(t, withEmbeddedTheme(t))
	f.gate.On("Check", mock.Anything, "trip", "").Return(showoff.Allow, nil)
	f.pages.On("Show", mock.Anything, "trip", 9, showoff.RouteList, "list").
		Return(showoff.RenderedPage{}, showoff.ErrPageNotFound)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/trip/page/9", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nothing lives at /trip/page/9.")
}
