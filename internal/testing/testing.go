// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/tidalq/tidalq/internal/models"
	"golang.org/x/oauth2"
)

// MockResolver is a test double for [services.Resolver] and
// [services.SessionHolder] with per-call hooks and call counters.
type MockResolver struct {
	CheckLoginFunc func(ctx context.Context) error
	PlaylistFunc   func(ctx context.Context, id string) (*models.Collection, error)
	AlbumFunc      func(ctx context.Context, id string) (*models.Collection, error)
	TrackFunc      func(ctx context.Context, id string) (*models.Track, error)

	CheckLoginCalls int
	Token           *oauth2.Token
}

func (m *MockResolver) CheckLogin(ctx context.Context) error {
	m.CheckLoginCalls++
	if m.CheckLoginFunc != nil {
		return m.CheckLoginFunc(ctx)
	}
	return nil
}

func (m *MockResolver) Playlist(ctx context.Context, id string) (*models.Collection, error) {
	if m.PlaylistFunc != nil {
		return m.PlaylistFunc(ctx, id)
	}
	return &models.Collection{ID: id, Kind: models.KindPlaylist}, nil
}

func (m *MockResolver) Album(ctx context.Context, id string) (*models.Collection, error) {
	if m.AlbumFunc != nil {
		return m.AlbumFunc(ctx, id)
	}
	return &models.Collection{ID: id, Kind: models.KindAlbum}, nil
}

func (m *MockResolver) Track(ctx context.Context, id string) (*models.Track, error) {
	if m.TrackFunc != nil {
		return m.TrackFunc(ctx, id)
	}
	return &models.Track{ID: id}, nil
}

func (m *MockResolver) Name() string { return "mock" }

func (m *MockResolver) SetToken(ctx context.Context, tok *oauth2.Token) {
	m.Token = tok
}

func (m *MockResolver) OAuthConfig() *oauth2.Config {
	return &oauth2.Config{ClientID: "mock"}
}

// MockPlayer is a test double for [services.Player] recording every submission.
type MockPlayer struct {
	HealthFunc  func(ctx context.Context) error
	EnqueueFunc func(ctx context.Context, query string) error

	mu       sync.Mutex
	Queries  []string
	URLs     []string
	Healthed int
}

func (m *MockPlayer) Health(ctx context.Context) error {
	m.mu.Lock()
	m.Healthed++
	m.mu.Unlock()
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

func (m *MockPlayer) Enqueue(ctx context.Context, query string) error {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	m.mu.Unlock()
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(ctx, query)
	}
	return nil
}

func (m *MockPlayer) EnqueueURL(ctx context.Context, url string) error {
	m.mu.Lock()
	m.URLs = append(m.URLs, url)
	m.mu.Unlock()
	return nil
}

// MemoryStore is an in-memory credential store for gate tests.
type MemoryStore struct {
	Creds     models.Credentials
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

func (s *MemoryStore) Load() (models.Credentials, error) {
	if s.LoadErr != nil {
		return models.Credentials{}, s.LoadErr
	}
	return s.Creds, nil
}

func (s *MemoryStore) Save(creds models.Credentials) error {
	s.SaveCalls++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Creds = creds
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
