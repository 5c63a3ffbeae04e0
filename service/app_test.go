package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogapi/app/config"
	"blogapi/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		Env:             config.EnvDev,
		Addr:            "127.0.0.1:0",
		Storage:         config.StorageSQLite,
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
		CORSOrigins:     []string{"https://blog.example.com"},
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}
}

func TestNewServer(t *testing.T) {
	store, err := repositories.OpenGorm("sqlite3", ":memory:")
	require.NoError(t, err)
	defer store.Close()

	cfg := testConfig()
	srv := NewServer(cfg, NewHandler(cfg, store))
	assert.Equal(t, cfg.Addr, srv.Addr)
	assert.Equal(t, time.Second, srv.ReadTimeout)

	t.Run("healthz is public", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		w := httptest.NewRecorder()
		srv.Handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("api requires auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts/", nil)
		req.Header.Set("Origin", "https://blog.example.com")
		w := httptest.NewRecorder()
		srv.Handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "https://blog.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/posts/create/", nil)
		req.Header.Set("Origin", "https://blog.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Authorization")
		w := httptest.NewRecorder()
		srv.Handler.ServeHTTP(w, req)
		assert.Equal(t, "https://blog.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		srv.Handler.ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestAllowsAnyOrigin(t *testing.T) {
	assert.True(t, allowsAnyOrigin([]string{"*"}))
	assert.False(t, allowsAnyOrigin([]string{"https://a.example.com"}))
	assert.False(t, allowsAnyOrigin(nil))
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan int, 1)
	go func() { done <- serve(ctx, srv, time.Second) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case code := <-done:
		assert.Equal(t, 0, code)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeReportsListenError(t *testing.T) {
	srv := &http.Server{Addr: "256.0.0.1:bad", Handler: http.NotFoundHandler()}
	assert.Equal(t, 1, serve(context.Background(), srv, time.Second))
}

func TestRunAppServerRejectsBadStorage(t *testing.T) {
	setupSQLiteEnv(t)
	var code int
	captureOutput(func() {
		code = RunAppServer([]string{"--storage", "mysql"})
	})
	assert.Equal(t, 1, code)
}
