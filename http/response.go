package http

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sagarc03/showoff"
)

// WritePage writes a rendered HTML page.
func WritePage(w http.ResponseWriter, code int, page showoff.RenderedPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write(page.Body); err != nil {
		slog.Debug("failed to write page", "template", page.Template, "error", err)
	}
}

// HandleError writes the response for err. Every not-found kind becomes the
// themed 404 page; anything else is logged and answered with a 500.
func (h *Handler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if showoff.IsNotFound(err) {
		slog.Debug("not found", "path", r.URL.Path, "error", err)
		h.notFound(w, r)
		return
	}

	if errors.Is(err, context.Canceled) {
		slog.Debug("request canceled", "path", r.URL.Path)
		return
	}

	slog.Error("request error", "path", r.URL.Path, "error", err)
	writeDefaultInternalError(w)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := h.theme.Render(&buf, showoff.TemplateNotFound, map[string]any{"Path": r.URL.Path})
	if err != nil {
		if !errors.Is(err, showoff.ErrTemplateNotFound) {
			slog.Warn("failed to render not found page", "error", err)
		}
		writeDefaultNotFound(w)
		return
	}

	WritePage(w, http.StatusNotFound, showoff.RenderedPage{Template: h.theme.Resolve(showoff.TemplateNotFound), Body: buf.Bytes()})
}
