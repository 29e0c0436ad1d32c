package showoff_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sagarc03/showoff"
	"github.com/stretchr/testify/mock"
)

// readSeekNopCloser wraps an io.ReadSeeker to add a no-op Close method
type readSeekNopCloser struct {
	io.ReadSeeker
}

func (r readSeekNopCloser) Close() error { return nil }

func content(s string) io.ReadSeekCloser {
	return readSeekNopCloser{bytes.NewReader([]byte(s))}
}

type SpyAlbumStore struct {
	mock.Mock
}

func (s *SpyAlbumStore) GetAlbum(ctx context.Context, albumID string) (showoff.Album, error) {
	args := s.Called(ctx, albumID)
	return args.Get(0).(showoff.Album), args.Error(1)
}

func (s *SpyAlbumStore) ListAlbums(ctx context.Context) ([]showoff.Album, error) {
	args := s.Called(ctx)
	return args.Get(0).([]showoff.Album), args.Error(1)
}

func (s *SpyAlbumStore) GetPage(ctx context.Context, albumID string, page int) ([]showoff.Item, error) {
	args := s.Called(ctx, albumID, page)
	return args.Get(0).([]showoff.Item), args.Error(1)
}

func (s *SpyAlbumStore) HasPage(ctx context.Context, albumID string, page int) (bool, error) {
	args := s.Called(ctx, albumID, page)
	return args.Bool(0), args.Error(1)
}

func (s *SpyAlbumStore) GetImage(ctx context.Context, albumID, filename string) (showoff.ImageInfo, error) {
	args := s.Called(ctx, albumID, filename)
	return args.Get(0).(showoff.ImageInfo), args.Error(1)
}

type SpyImageStorage struct {
	mock.Mock
}

func (s *SpyImageStorage) Get(ctx context.Context, path string) (showoff.Object, error) {
	args := s.Called(ctx, path)
	return args.Get(0).(showoff.Object), args.Error(1)
}

type SpyExifReader struct {
	mock.Mock
}

func (s *SpyExifReader) Read(ctx context.Context, albumID, filename string) ([]string, error) {
	args := s.Called(ctx, albumID, filename)
	return args.Get(0).([]string), args.Error(1)
}

// mapSessionStore is a minimal SessionStore for gate tests.
type mapSessionStore struct {
	mu       sync.Mutex
	sessions map[string]showoff.Session
}

func newMapSessionStore() *mapSessionStore {
	return &mapSessionStore{sessions: make(map[string]showoff.Session)}
}

func (m *mapSessionStore) Get(_ context.Context, token string) (showoff.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return showoff.Session{}, showoff.ErrNotFound
	}
	return s, nil
}

func (m *mapSessionStore) Put(_ context.Context, token string, s showoff.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = s
	return nil
}

func (m *mapSessionStore) Clear(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// plainVerifier accepts a password equal to the stored one.
type plainVerifier struct{}

func (plainVerifier) Verify(_ string, stored showoff.Credentials, username, password string) bool {
	return stored.Username == username && stored.Password == password
}

// recordingRenderer records the last template rendered and its data.
type recordingRenderer struct {
	known    map[string]bool
	lastName string
	lastData map[string]any
}

func newRecordingRenderer(known ...string) *recordingRenderer {
	r := &recordingRenderer{known: make(map[string]bool)}
	for _, k := range known {
		r.known[k] = true
	}
	return r
}

func (r *recordingRenderer) Render(w io.Writer, name string, data map[string]any) error {
	if !r.known[name] {
		return fmt.Errorf("lookup %s: %w", name, showoff.ErrTemplateNotFound)
	}
	r.lastName = name
	r.lastData = data
	_, err := io.WriteString(w, "rendered:"+name)
	return err
}
