package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"blogapi/app/models"
	"blogapi/app/repositories/mock"
	"blogapi/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestPostController(t *testing.T) (*PostController, *mock.Store) {
	store := mock.NewStore()
	return NewPostController(services.NewPostService(store.Posts())), store
}

func setupRouter(controller *PostController) *mux.Router {
	router := mux.NewRouter()

	// Register routes manually; the full table lives in the routes package.
	router.HandleFunc("/posts/", controller.Index).Methods("GET")
	router.HandleFunc("/posts/create/", controller.Create).Methods("POST")
	router.HandleFunc("/posts/{id:[0-9]+}/", controller.Show).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}/update/", controller.Update).Methods("PATCH", "PUT")
	router.HandleFunc("/articles/{id:[0-9]+}/", controller.Replace).Methods("PUT")
	router.HandleFunc("/articles/{id:[0-9]+}/", controller.Delete).Methods("DELETE")

	return router
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPostController(t *testing.T) {
	controller, _ := setupTestPostController(t)
	router := setupRouter(controller)

	var created models.Post

	t.Run("create post", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/posts/create/", `{"title": "Hello", "content": "World"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Hello", created.Title)
		assert.Equal(t, "World", created.Content)
	})

	t.Run("get post", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/posts/"+strconv.Itoa(created.ID)+"/", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id": 1, "title": "Hello", "content": "World"}`, w.Body.String())
	})

	t.Run("get missing post", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/posts/999/", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error": "Post not found"}`, w.Body.String())
	})

	t.Run("create with missing content", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/posts/create/", `{"title": "Only"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var body struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body.Fields, "content")
	})

	t.Run("create with invalid json", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/posts/create/", `{"title":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doRequest(router, http.MethodPost, "/posts/create/", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "JSON object")
	})

	t.Run("partial update", func(t *testing.T) {
		w := doRequest(router, http.MethodPatch, "/posts/1/update/", `{"content": "Everyone", "id": 77}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id": 1, "title": "Hello", "content": "Everyone"}`, w.Body.String())

		w = doRequest(router, http.MethodGet, "/posts/1/", "")
		assert.JSONEq(t, `{"id": 1, "title": "Hello", "content": "Everyone"}`, w.Body.String())
	})

	t.Run("update missing post", func(t *testing.T) {
		w := doRequest(router, http.MethodPut, "/posts/50/update/", `{"title": "x"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("replace post", func(t *testing.T) {
		w := doRequest(router, http.MethodPut, "/articles/1/", `{"title": "New", "content": "Body"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id": 1, "title": "New", "content": "Body"}`, w.Body.String())

		w = doRequest(router, http.MethodPut, "/articles/1/", `{"title": "No body"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list posts", func(t *testing.T) {
		doRequest(router, http.MethodPost, "/posts/create/", `{"title": "Second", "content": "Post"}`)

		w := doRequest(router, http.MethodGet, "/posts/", "")
		require.Equal(t, http.StatusOK, w.Code)
		var posts []models.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
		require.Len(t, posts, 2)
		assert.Equal(t, "Second", posts[1].Title)
	})

	t.Run("delete post", func(t *testing.T) {
		w := doRequest(router, http.MethodDelete, "/articles/1/", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())

		w = doRequest(router, http.MethodDelete, "/articles/1/", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("overflowing id", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/posts/99999999999999999999999/", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
