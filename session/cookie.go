package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

// ErrNoToken is returned by Cookie.Read when the request carries no valid
// session cookie.
var ErrNoToken = errors.New("no session token")

// CookieConfig configures the session cookie.
type CookieConfig struct {
	Name   string
	Secret string
	Path   string
	Secure bool
	MaxAge time.Duration
}

// Cookie encodes and decodes the session token cookie.
type Cookie struct {
	cfg   CookieConfig
	codec *securecookie.SecureCookie
}

// NewCookie creates a cookie codec. The hash key is derived from the secret.
func NewCookie(cfg CookieConfig) (*Cookie, error) {
	if cfg.Name == "" {
		return nil, errors.New("new cookie: name cannot be empty")
	}
	if cfg.Secret == "" {
		return nil, errors.New("new cookie: secret cannot be empty")
	}
	if cfg.Path == "" {
		cfg.Path = "/"
	}

	hashKey := sha256.Sum256([]byte("showoff-session:" + cfg.Secret))
	codec := securecookie.New(hashKey[:], nil)
	if cfg.MaxAge > 0 {
		codec.MaxAge(int(cfg.MaxAge.Seconds()))
	}

	return &Cookie{cfg: cfg, codec: codec}, nil
}

// Name returns the cookie name.
func (c *Cookie) Name() string {
	return c.cfg.Name
}

// Read returns the token carried by r. Missing, tampered or expired
// cookies yield ErrNoToken.
func (c *Cookie) Read(r *http.Request) (string, error) {
	ck, err := r.Cookie(c.cfg.Name)
	if err != nil {
		return "", ErrNoToken
	}

	var token string
	if err := c.codec.Decode(c.cfg.Name, ck.Value, &token); err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoToken, err)
	}
	if token == "" {
		return "", ErrNoToken
	}

	return token, nil
}

// Write sets the cookie carrying token on w.
func (c *Cookie) Write(w http.ResponseWriter, token string) error {
	encoded, err := c.codec.Encode(c.cfg.Name, token)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}

	ck := &http.Cookie{
		Name:     c.cfg.Name,
		Value:    encoded,
		Path:     c.cfg.Path,
		HttpOnly: true,
		Secure:   c.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if c.cfg.MaxAge > 0 {
		ck.MaxAge = int(c.cfg.MaxAge.Seconds())
	}

	http.SetCookie(w, ck)
	return nil
}

// Issue generates a fresh token and writes it to w.
func (c *Cookie) Issue(w http.ResponseWriter) (string, error) {
	token := NewToken()
	if err := c.Write(w, token); err != nil {
		return "", err
	}
	return token, nil
}

// NewToken returns a random session token.
func NewToken() string {
	return uuid.NewString()
}
