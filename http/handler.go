package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/sagarc03/showoff"
)

// Pages renders the HTML pages of the viewer.
type Pages interface {
	Index(ctx context.Context) (showoff.RenderedPage, error)
	Show(ctx context.Context, albumID string, page int, endpoint, template string) (showoff.RenderedPage, error)
	Slideshow(ctx context.Context, albumID string, page int) (showoff.RenderedPage, error)
	ImageInfo(ctx context.Context, albumID, filename string) (showoff.RenderedPage, error)
}

// Images opens stored image bytes.
type Images interface {
	Get(ctx context.Context, albumID, filename, size string) (showoff.Image, error)
}

// Gate guards albums and logs callers in.
type Gate interface {
	Check(ctx context.Context, albumID, token string) (showoff.Decision, error)
	AttemptLogin(ctx context.Context, token, albumID, username, password string) (showoff.Session, error)
}

// Theme renders themed templates that are not owned by a controller.
// Render takes the bare template name and resolves it itself.
type Theme interface {
	Resolve(name string) string
	Render(w io.Writer, name string, data map[string]any) error
}

// TokenCodec threads the session token through the client.
type TokenCodec interface {
	Read(r *http.Request) (string, error)
	Issue(w http.ResponseWriter) (string, error)
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age"`
}

type HandlerConfig struct {
	Routes *showoff.RouteTable
	// Static holds the theme's static files. Nil disables static_files.
	Static fs.FS
	// ListTemplate is the listing template used by the album and list routes.
	ListTemplate string
	CORS         CORSConfig
}

// Services are the collaborators the handler dispatches to.
type Services struct {
	Pages  Pages
	Images Images
	Gate   Gate
	Theme  Theme
	Tokens TokenCodec
}

// Handler dispatches viewer requests to the page and image controllers.
type Handler struct {
	config   HandlerConfig
	pages    Pages
	images   Images
	gate     Gate
	theme    Theme
	tokens   TokenCodec
	validate *validator.Validate
}

// NewHandler creates a new Handler with the given configuration and services.
func NewHandler(config *HandlerConfig, services Services) (*Handler, error) {
	if config.Routes == nil {
		return nil, errors.New("new handler: route table is required")
	}
	if services.Pages == nil || services.Images == nil || services.Gate == nil ||
		services.Theme == nil || services.Tokens == nil {
		return nil, errors.New("new handler: all services are required")
	}

	cfg := *config
	if cfg.ListTemplate == "" {
		cfg.ListTemplate = "list"
	}

	return &Handler{
		config:   cfg,
		pages:    services.Pages,
		images:   services.Images,
		gate:     services.Gate,
		theme:    services.Theme,
		tokens:   services.Tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// Router returns an http.Handler with one chi route per route table entry.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	handlers := map[string]http.HandlerFunc{
		showoff.RouteIndex:         h.handleIndex,
		showoff.RouteLogin:         h.handleLogin,
		showoff.RouteStaticFiles:   h.handleStatic,
		showoff.RouteGetImage:      h.gated(h.handleGetImage),
		showoff.RouteImagePage:     h.gated(h.handleImagePage),
		showoff.RouteList:          h.gated(h.handleList),
		showoff.RouteShow:          h.gated(h.handleShow),
		showoff.RouteShowSlideshow: h.gated(h.handleSlideshow),
		showoff.RouteAlbum:         h.gated(h.handleAlbum),
	}

	for _, name := range h.config.Routes.Names() {
		handler, ok := handlers[name]
		if !ok {
			continue
		}
		pattern, methods, err := h.config.Routes.Resolve(name)
		if err != nil {
			continue
		}
		for _, m := range methods {
			r.Method(m, pattern, handler)
		}
	}

	r.NotFound(h.notFound)

	return r
}

// gated runs next only when the album in the request is open to the caller.
// A gated album without a matching session redirects to its login page.
func (h *Handler) gated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		album := param(r, "album")

		token, _ := h.tokens.Read(r)

		decision, err := h.gate.Check(r.Context(), album, token)
		if err != nil {
			h.HandleError(w, r, err)
			return
		}

		if decision == showoff.Challenge {
			h.redirectToLogin(w, r, album)
			return
		}

		next(w, r)
	}
}

func (h *Handler) redirectToLogin(w http.ResponseWriter, r *http.Request, album string) {
	loginURL, err := h.config.Routes.URL(showoff.RouteLogin, map[string]string{"album": album})
	if err != nil {
		h.HandleError(w, r, fmt.Errorf("login url: %w", err))
		return
	}

	http.Redirect(w, r, loginURL+"?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := h.pages.Index(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	WritePage(w, http.StatusOK, page)
}

func (h *Handler) handleAlbum(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, showoff.DefaultPage, showoff.RouteList, h.config.ListTemplate)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(r)
	if !ok {
		h.HandleError(w, r, showoff.ErrPageNotFound)
		return
	}
	h.show(w, r, page, showoff.RouteList, h.config.ListTemplate)
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(r)
	if !ok {
		h.HandleError(w, r, showoff.ErrPageNotFound)
		return
	}
	h.show(w, r, page, showoff.RouteShow, param(r, "template"))
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request, page int, endpoint, template string) {
	rendered, err := h.pages.Show(r.Context(), param(r, "album"), page, endpoint, template)
	if err != nil {
		// a configured listing template the theme lacks is a missing page
		if errors.Is(err, showoff.ErrTemplateNotFound) {
			h.notFound(w, r)
			return
		}
		h.HandleError(w, r, err)
		return
	}
	WritePage(w, http.StatusOK, rendered)
}

func (h *Handler) handleSlideshow(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(r)
	if !ok {
		h.HandleError(w, r, showoff.ErrPageNotFound)
		return
	}

	rendered, err := h.pages.Slideshow(r.Context(), param(r, "album"), page)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	WritePage(w, http.StatusOK, rendered)
}

func (h *Handler) handleImagePage(w http.ResponseWriter, r *http.Request) {
	rendered, err := h.pages.ImageInfo(r.Context(), param(r, "album"), param(r, "filename"))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	WritePage(w, http.StatusOK, rendered)
}

func (h *Handler) handleGetImage(w http.ResponseWriter, r *http.Request) {
	size := param(r, "size")
	if size == "" {
		size = r.URL.Query().Get("size")
	}

	img, err := h.images.Get(r.Context(), param(r, "album"), param(r, "filename"), size)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}
	defer func() { _ = img.Content.Close() }()

	if img.ContentType != "" {
		w.Header().Set("Content-Type", img.ContentType)
	}

	http.ServeContent(w, r, img.Filename, img.ModTime, img.Content)
}

func (h *Handler) handleStatic(w http.ResponseWriter, r *http.Request) {
	if h.config.Static == nil {
		h.notFound(w, r)
		return
	}

	name := path.Clean(chi.URLParam(r, "*"))
	if !fs.ValidPath(name) || name == "." {
		h.notFound(w, r)
		return
	}

	info, err := fs.Stat(h.config.Static, name)
	if err != nil || info.IsDir() {
		h.notFound(w, r)
		return
	}

	http.ServeFileFS(w, r, h.config.Static, name)
}

// render executes a themed template into a page.
func (h *Handler) render(template string, data map[string]any) (showoff.RenderedPage, error) {
	var buf bytes.Buffer
	if err := h.theme.Render(&buf, template, data); err != nil {
		return showoff.RenderedPage{}, err
	}

	return showoff.RenderedPage{Template: h.theme.Resolve(template), Body: buf.Bytes()}, nil
}

// param returns the decoded value of a route parameter.
func param(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

func pageParam(r *http.Request) (int, bool) {
	page, err := strconv.Atoi(param(r, "page"))
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}
