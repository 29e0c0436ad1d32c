package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/sagarc03/showoff"
	"github.com/sagarc03/showoff/config"
	"github.com/sagarc03/showoff/credentials"
	"github.com/sagarc03/showoff/database"
	"github.com/sagarc03/showoff/exif"
	"github.com/sagarc03/showoff/filesystem"
	showoffhttp "github.com/sagarc03/showoff/http"
	"github.com/sagarc03/showoff/render"
	"github.com/sagarc03/showoff/session"
	"github.com/sagarc03/showoff/themes"
)

// app holds the wired viewer and the resources it must release.
type app struct {
	handler http.Handler
	closers []func() error
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// buildApp connects the content store and image storage, loads the theme and
// wires the controllers into the HTTP handler.
func buildApp(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	secret, err := credentials.LoadSecret(cfg.Auth.SecretConfig)
	if err != nil {
		return nil, fmt.Errorf("load secret: %w", err)
	}

	routes, err := showoff.BuildRouteTable(cfg.Viewer.Prefix, cfg.Viewer.Routes)
	if err != nil {
		return nil, fmt.Errorf("build routes: %w", err)
	}

	db, err := database.Open(ctx, cfg.Database.Connection())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.closers = append(a.closers, db.Close)
	albums := db.GetRepo()
	slog.Info("connected to database", "type", cfg.Database.Type)

	root, err := os.OpenRoot(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage root: %w", err)
	}
	a.closers = append(a.closers, root.Close)
	storage := filesystem.NewFileStorage(root)

	themeFS, err := themes.Load(cfg.Viewer.ThemeDir, cfg.Viewer.Theme)
	if err != nil {
		return nil, err
	}
	engine, err := render.New(themeFS, routes)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	theme := showoff.NewThemeResolver(cfg.Viewer.Theme, engine)

	static, err := themes.Static(themeFS, cfg.Viewer.Theme)
	if err != nil {
		slog.Warn("theme has no static files", "theme", cfg.Viewer.Theme, "err", err)
		static = nil
	}

	pageCfg := showoff.PageConfig{ListTemplates: cfg.Viewer.ListTemplates}
	if cfg.Exif.Enabled {
		reader, rerr := exif.NewReader(cfg.Storage.Path, cfg.Exif.Keys)
		if rerr != nil {
			return nil, fmt.Errorf("exif: %w", rerr)
		}
		a.closers = append(a.closers, reader.Close)
		pageCfg.Exif = reader
	}

	pages, err := showoff.NewPageController(albums, theme, pageCfg)
	if err != nil {
		return nil, err
	}

	images, err := showoff.NewImageController(albums, storage, showoff.ImageConfig{Sizes: cfg.Viewer.ImageSizes})
	if err != nil {
		return nil, err
	}

	sessions := session.NewMemoryStore(cfg.Auth.SessionTTL)
	gate, err := showoff.NewAuthGate(albums, sessions, credentials.NewVerifier(), showoff.AuthConfig{Secret: secret})
	if err != nil {
		return nil, err
	}

	cookie, err := session.NewCookie(session.CookieConfig{
		Name:   cfg.Auth.CookieName,
		Secret: secret,
		Path:   routes.Prefix() + "/",
		Secure: cfg.Auth.CookieSecure,
		MaxAge: cfg.Auth.SessionTTL,
	})
	if err != nil {
		return nil, err
	}

	handler, err := showoffhttp.NewHandler(&showoffhttp.HandlerConfig{
		Routes:       routes,
		Static:       static,
		ListTemplate: cfg.Viewer.ListTemplates[0],
		CORS:         cfg.CORS,
	}, showoffhttp.Services{
		Pages:  pages,
		Images: images,
		Gate:   gate,
		Theme:  theme,
		Tokens: cookie,
	})
	if err != nil {
		return nil, err
	}

	a.handler = handler.Router()
	return a, nil
}
