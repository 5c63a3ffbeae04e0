package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blogapi/app/auth"
	"blogapi/app/models"
	"blogapi/app/repositories"
	"blogapi/app/repositories/mock"

	"github.com/stretchr/testify/require"
)

const testSecret = "routes-test-secret"

type testEnv struct {
	table *Table
	store *mock.Store
	token string
}

func newTestEnv(t *testing.T) *testEnv {
	store := mock.NewStore()
	return newTestEnvWith(t, store.Posts(), store.Comments(), store.Users(), store)
}

func newTestEnvWith(t *testing.T, posts repositories.PostRepository, comments repositories.CommentRepository, users repositories.UserRepository, store *mock.Store) *testEnv {
	issuer := auth.NewIssuer(testSecret, time.Hour)
	c, userService := NewControllers(posts, comments, users, issuer, false)

	ctx := context.Background()
	_, err := userService.Register(ctx, &models.Credentials{Username: "editor", Password: "editor-password"})
	require.NoError(t, err)
	token, _, err := userService.TokenFor(ctx, "editor")
	require.NoError(t, err)

	return &testEnv{table: NewTable(c, userService), store: store, token: token}
}

// do sends a request through the full handler chain, authenticated unless
// token is empty.
func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.table.Handler().ServeHTTP(w, req)
	return w
}

func (e *testEnv) authed(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, method, path, body, e.token)
}
