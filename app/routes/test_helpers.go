package routes

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogapi/app/middleware"
	"blogapi/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testLogin    = "admin"
	testPassword = "qwerty"
)

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestRouter(t *testing.T, testingRoutes bool) *mux.Router {
	t.Helper()
	db := setupTestDB(t)
	auth, err := middleware.NewAuthenticator(testLogin, testPassword, bcrypt.MinCost)
	require.NoError(t, err)

	return SetupRoutes(Dependencies{
		Blogs:         repositories.NewBadgerBlogRepository(db),
		Posts:         repositories.NewBadgerPostRepository(db),
		Auth:          auth,
		Logger:        zerolog.Nop(),
		TestingRoutes: testingRoutes,
	})
}

type client struct {
	t      *testing.T
	router http.Handler
	auth   string
}

func newClient(t *testing.T, router http.Handler) *client {
	return &client{
		t:      t,
		router: router,
		auth:   "Basic " + base64.StdEncoding.EncodeToString([]byte(testLogin+":"+testPassword)),
	}
}

// anonymous returns a client that sends no credentials.
func (c *client) anonymous() *client {
	return &client{t: c.t, router: c.router}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(c.t, err)
		reader = strings.NewReader(string(data))
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auth != "" {
		req.Header.Set("Authorization", c.auth)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
