package showoff

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// AuthGate decides, per album, whether a caller may see its content.
// An album is Open unless its require_authentication setting is exactly
// "yes"; a Gated album needs a session bound to that same album.
type AuthGate struct {
	albums   AlbumStore
	sessions SessionStore
	verifier CredentialVerifier
	secret   string
	now      func() time.Time
}

// AuthConfig holds the server-side secret used for credential checks.
type AuthConfig struct {
	Secret string
}

func NewAuthGate(albums AlbumStore, sessions SessionStore, verifier CredentialVerifier, cfg AuthConfig) (*AuthGate, error) {
	if albums == nil || sessions == nil || verifier == nil {
		return nil, errors.New("new auth gate: album store, session store and verifier are required")
	}
	return &AuthGate{
		albums:   albums,
		sessions: sessions,
		verifier: verifier,
		secret:   cfg.Secret,
		now:      time.Now,
	}, nil
}

// NeedsAuthentication reports whether the album is gated.
func (g *AuthGate) NeedsAuthentication(album Album) bool {
	return album.Setting(SettingRequireAuthentication) == "yes"
}

// IsAuthenticated reports whether sess unlocks albumID.
func (g *AuthGate) IsAuthenticated(sess *Session, albumID string) bool {
	return sess != nil && sess.Username != "" && sess.Album == albumID
}

// Guard returns Challenge when the album is gated and the session does not
// belong to it.
func (g *AuthGate) Guard(album Album, sess *Session) Decision {
	if g.NeedsAuthentication(album) && !g.IsAuthenticated(sess, album.ID) {
		return Challenge
	}
	return Allow
}

// Check loads the album and the session for token, then applies Guard.
// An unknown album yields ErrPageNotFound.
func (g *AuthGate) Check(ctx context.Context, albumID, token string) (Decision, error) {
	album, err := g.albums.GetAlbum(ctx, albumID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Challenge, fmt.Errorf("check %s: %w", albumID, ErrPageNotFound)
		}
		return Challenge, fmt.Errorf("check %s: %w", albumID, err)
	}

	if !g.NeedsAuthentication(album) {
		return Allow, nil
	}

	sess, err := g.session(ctx, token)
	if err != nil {
		return Challenge, fmt.Errorf("check %s: %w", albumID, err)
	}

	return g.Guard(album, sess), nil
}

// AttemptLogin verifies credentials for albumID and, on success, replaces
// whatever session token held with a fresh one bound to (username, album).
// A failed attempt returns ErrInvalidCredentials and leaves the session as is.
func (g *AuthGate) AttemptLogin(ctx context.Context, token, albumID, username, password string) (Session, error) {
	if token == "" {
		return Session{}, errors.New("attempt login: session token cannot be empty")
	}

	album, err := g.albums.GetAlbum(ctx, albumID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, fmt.Errorf("attempt login %s: %w", albumID, ErrPageNotFound)
		}
		return Session{}, fmt.Errorf("attempt login %s: %w", albumID, err)
	}

	stored := Credentials{
		Username: album.Setting(SettingUsername),
		Password: album.Setting(SettingPassword),
	}

	if username == "" || !g.verifier.Verify(g.secret, stored, username, password) {
		return Session{}, fmt.Errorf("attempt login %s: %w", albumID, ErrInvalidCredentials)
	}

	sess := Session{
		Username:  username,
		Album:     album.ID,
		CreatedAt: g.now().UTC(),
	}

	if err := g.sessions.Put(ctx, token, sess); err != nil {
		return Session{}, fmt.Errorf("attempt login %s: store session: %w", albumID, err)
	}

	return sess, nil
}

func (g *AuthGate) session(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}
	sess, err := g.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &sess, nil
}
