package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/sagarc03/showoff"
)

type loginForm struct {
	Username string `validate:"required,max=256"`
	Password string `validate:"required,max=1024"`
	Next     string `validate:"max=2048"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	album := param(r, "album")

	// unknown albums have no login page
	if _, err := h.gate.Check(r.Context(), album, ""); err != nil {
		h.HandleError(w, r, err)
		return
	}

	token, err := h.tokens.Read(r)
	if err != nil {
		token, err = h.tokens.Issue(w)
		if err != nil {
			h.HandleError(w, r, fmt.Errorf("issue session token: %w", err))
			return
		}
	}

	if r.Method != http.MethodPost {
		h.renderLogin(w, r, album, loginForm{Next: r.URL.Query().Get("next")}, false)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, album, loginForm{}, true)
		return
	}

	form := loginForm{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
		Next:     r.PostForm.Get("next"),
	}
	if form.Next == "" {
		form.Next = r.URL.Query().Get("next")
	}

	if err := h.validate.Struct(form); err != nil {
		h.renderLogin(w, r, album, form, true)
		return
	}

	_, err = h.gate.AttemptLogin(r.Context(), token, album, form.Username, form.Password)
	if err != nil {
		if errors.Is(err, showoff.ErrInvalidCredentials) {
			slog.Info("login failed", "album", album, "username", form.Username)
			h.renderLogin(w, r, album, form, true)
			return
		}
		h.HandleError(w, r, err)
		return
	}

	slog.Info("login succeeded", "album", album, "username", form.Username)

	target, err := h.loginTarget(form.Next, album)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, album string, form loginForm, failed bool) {
	action, err := h.config.Routes.URL(showoff.RouteLogin, map[string]string{"album": album})
	if err != nil {
		h.HandleError(w, r, fmt.Errorf("login url: %w", err))
		return
	}

	page, err := h.render(showoff.TemplateLogin, map[string]any{
		"AlbumID":  album,
		"Action":   action,
		"Next":     form.Next,
		"Username": form.Username,
		"Error":    failed,
	})
	if err != nil {
		h.HandleError(w, r, fmt.Errorf("render login: %w", err))
		return
	}

	WritePage(w, http.StatusOK, page)
}

// loginTarget returns next when it is a local path inside the viewer and
// the album's first listing page otherwise.
func (h *Handler) loginTarget(next, album string) (string, error) {
	if err := h.checkRedirect(next); err == nil {
		return next, nil
	}

	return h.config.Routes.URL(showoff.RouteList, map[string]string{
		"album": album,
		"page":  strconv.Itoa(showoff.DefaultPage),
	})
}

func (h *Handler) checkRedirect(next string) error {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.ContainsAny(next, "\\\r\n") {
		return ErrUnsafeRedirect
	}

	prefix := h.config.Routes.Prefix()
	if prefix != "" && next != prefix && !strings.HasPrefix(next, prefix+"/") {
		return ErrUnsafeRedirect
	}

	return nil
}
