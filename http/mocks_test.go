package http_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/sagarc03/showoff"
	showoffhttp "github.com/sagarc03/showoff/http"
	"github.com/sagarc03/showoff/render"
	"github.com/sagarc03/showoff/session"
	"github.com/sagarc03/showoff/themes"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// readSeekNopCloser wraps an io.ReadSeeker to add a no-op Close method
type readSeekNopCloser struct {
	io.ReadSeeker
}

func (r readSeekNopCloser) Close() error { return nil }

type MockPages struct {
	mock.Mock
}

func (m *MockPages) Index(ctx context.Context) (showoff.RenderedPage, error) {
	args := m.Called(ctx)
	return args.Get(0).(showoff.RenderedPage), args.Error(1)
}

func (m *MockPages) Show(ctx context.Context, albumID string, page int, endpoint, template string) (showoff.RenderedPage, error) {
	args := m.Called(ctx, albumID, page, endpoint, template)
	return args.Get(0).(showoff.RenderedPage), args.Error(1)
}

func (m *MockPages) Slideshow(ctx context.Context, albumID string, page int) (showoff.RenderedPage, error) {
	args := m.Called(ctx, albumID, page)
	return args.Get(0).(showoff.RenderedPage), args.Error(1)
}

func (m *MockPages) ImageInfo(ctx context.Context, albumID, filename string) (showoff.RenderedPage, error) {
	args := m.Called(ctx, albumID, filename)
	return args.Get(0).(showoff.RenderedPage), args.Error(1)
}

type MockImages struct {
	mock.Mock
}

func (m *MockImages) Get(ctx context.Context, albumID, filename, size string) (showoff.Image, error) {
	args := m.Called(ctx, albumID, filename, size)
	return args.Get(0).(showoff.Image), args.Error(1)
}

type MockGate struct {
	mock.Mock
}

func (m *MockGate) Check(ctx context.Context, albumID, token string) (showoff.Decision, error) {
	args := m.Called(ctx, albumID, token)
	return args.Get(0).(showoff.Decision), args.Error(1)
}

func (m *MockGate) AttemptLogin(ctx context.Context, token, albumID, username, password string) (showoff.Session, error) {
	args := m.Called(ctx, token, albumID, username, password)
	return args.Get(0).(showoff.Session), args.Error(1)
}

// stubTheme renders a one-line summary of the template and its data.
type stubTheme struct {
	without404 bool
}

func (s stubTheme) Resolve(name string) string {
	return "stub/" + name
}

func (s stubTheme) Render(w io.Writer, template string, data map[string]any) error {
	name := s.Resolve(template)
	if s.without404 && name == "stub/"+showoff.TemplateNotFound {
		return fmt.Errorf("%w: %s", showoff.ErrTemplateNotFound, name)
	}
	switch name {
	case "stub/" + showoff.TemplateLogin:
		_, err := fmt.Fprintf(w, "login album=%v error=%v next=%v username=%v action=%v",
			data["AlbumID"], data["Error"], data["Next"], data["Username"], data["Action"])
		return err
	case "stub/" + showoff.TemplateNotFound:
		_, err := fmt.Fprintf(w, "themed 404 %v", data["Path"])
		return err
	}
	_, err := io.WriteString(w, name)
	return err
}

type fixture struct {
	pages  *MockPages
	images *MockImages
	gate   *MockGate
	cookie *session.Cookie
	router http.Handler
}

type fixtureOption func(*showoffhttp.HandlerConfig, *showoffhttp.Services)

func withPrefix(t *testing.T, prefix string, patterns map[string]string) fixtureOption {
	return func(cfg *showoffhttp.HandlerConfig, _ *showoffhttp.Services) {
		routes, err := showoff.BuildRouteTable(prefix, patterns)
		require.NoError(t, err)
		cfg.Routes = routes
	}
}

func withoutStatic() fixtureOption {
	return func(cfg *showoffhttp.HandlerConfig, _ *showoffhttp.Services) { cfg.Static = nil }
}

func withCORS() fixtureOption {
	return func(cfg *showoffhttp.HandlerConfig, _ *showoffhttp.Services) {
		cfg.CORS = showoffhttp.CORSConfig{
			Enabled:        true,
			AllowedOrigins: []string{"https://example.com"},
			AllowedMethods: []string{"GET", "POST"},
			MaxAge:         300,
		}
	}
}

func withTheme(theme showoffhttp.Theme) fixtureOption {
	return func(_ *showoffhttp.HandlerConfig, s *showoffhttp.Services) { s.Theme = theme }
}

// withEmbeddedTheme renders through the built-in theme using the fixture's
// route table. Apply it after withPrefix.
func withEmbeddedTheme(t *testing.T) fixtureOption {
	return func(cfg *showoffhttp.HandlerConfig, s *showoffhttp.Services) {
		engine, err := render.New(themes.Embedded(), cfg.Routes)
		require.NoError(t, err)
		s.Theme = showoff.NewThemeResolver(themes.Default, engine)
	}
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	routes, err := showoff.BuildRouteTable("", nil)
	require.NoError(t, err)

	cookie, err := session.NewCookie(session.CookieConfig{Name: "showoff", Secret: "test-secret"})
	require.NoError(t, err)

	f := &fixture{
		pages:  new(MockPages),
		images: new(MockImages),
		gate:   new(MockGate),
		cookie: cookie,
	}

	cfg := &showoffhttp.HandlerConfig{
		Routes: routes,
		Static: fstest.MapFS{
			"style.css":     {Data: []byte("body{}"), ModTime: time.Unix(0, 0)},
			"img/logo.svg":  {Data: []byte("<svg/>"), ModTime: time.Unix(0, 0)},
			"img/.keep":     {Data: []byte("")},
			"fonts/sub/a.x": {Data: []byte("x")},
		},
	}
	services := showoffhttp.Services{
		Pages:  f.pages,
		Images: f.images,
		Gate:   f.gate,
		Theme:  stubTheme{},
		Tokens: cookie,
	}

	for _, opt := range opts {
		opt(cfg, &services)
	}

	handler, err := showoffhttp.NewHandler(cfg, services)
	require.NoError(t, err)
	f.router = handler.Router()

	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// sessionCookie returns a signed cookie carrying token.
func (f *fixture) sessionCookie(t *testing.T, token string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, f.cookie.Write(rec, token))
	return rec.Result().Cookies()[0]
}

func page(name string) showoff.RenderedPage {
	return showoff.RenderedPage{Template: name, Body: []byte("<p>" + name + "</p>")}
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
