package login

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Dagefoerde/collaborativefolders/internal/auth"
	"github.com/Dagefoerde/collaborativefolders/internal/config"
	"github.com/Dagefoerde/collaborativefolders/internal/db/models"
	websess "github.com/Dagefoerde/collaborativefolders/internal/web/session"
)

// noOpViews is a minimal Fiber Views engine used for tests. It writes the
// "error" field from the provided fiber.Map (if any) so tests can assert
// error messages rendered by handlers.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	if m, ok := data.(fiber.Map); ok {
		if v, exists := m["error"]; exists && v != nil {
			_, _ = io.WriteString(w, v.(string))
			return nil
		}
	}
	// write template name to have some content
	_, _ = io.WriteString(w, name)

	return nil
}

type testStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (s *testStorage) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.data[key], nil
}

func (s *testStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = val

	return nil
}

func (s *testStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

func (s *testStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)

	return nil
}

func (s *testStorage) Close() error { return nil }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open sqlite in-memory db")
	require.NoError(t, db.AutoMigrate(&models.User{}))

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Title: "Collaborative Folders",
		Webserver: config.Webserver{
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Minute},
		},
	}
}

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	app := fiber.New(fiber.Config{Views: noOpViews{}})

	websess.Init(&testStorage{data: make(map[string][]byte)})

	var s Service
	require.NoError(t, s.Init(app, newTestConfig(), db))

	return app, db
}

func performPost(t *testing.T, app *fiber.App, target string, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err, "app.Test failed")

	return resp
}

func TestPostSuccessSetsCookieAndRedirects(t *testing.T) {
	app, db := setup(t)

	lp := auth.NewLocalProvider(db)
	_, err := lp.CreateUser("bob", "bob@example.org", "s3cr3t", "Bob", "Doe")
	require.NoError(t, err)

	resp := performPost(t, app, Path+"/", url.Values{
		"username": {"bob"},
		"password": {"s3cr3t"},
	})

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			sessionCookie = c
		}
	}

	require.NotNil(t, sessionCookie, "session cookie must be set")
	assert.NotEmpty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestPostWrongPassword(t *testing.T) {
	app, db := setup(t)

	lp := auth.NewLocalProvider(db)
	_, err := lp.CreateUser("bob", "bob@example.org", "s3cr3t", "Bob", "Doe")
	require.NoError(t, err)

	resp := performPost(t, app, Path+"/", url.Values{
		"username": {"bob"},
		"password": {"wrong"},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), ErrInvalidCredentials.Error())
}

func TestPostUnknownUser(t *testing.T) {
	app, _ := setup(t)

	resp := performPost(t, app, Path+"/", url.Values{
		"username": {"nobody"},
		"password": {"whatever"},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), ErrInvalidCredentials.Error())
}
