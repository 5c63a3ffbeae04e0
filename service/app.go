package service

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogapi/app/auth"
	"blogapi/app/config"
	"blogapi/app/repositories"
	"blogapi/app/routes"

	"github.com/rs/cors"
)

// NewHandler builds the complete API handler over store.
func NewHandler(cfg config.Config, store *repositories.Store) http.Handler {
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	c, users := routes.NewControllers(store.Posts, store.Comments, store.Users, issuer, !cfg.IsDev())
	return routes.NewTable(c, users).Handler()
}

// NewServer wraps handler with CORS and the configured timeouts.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"WWW-Authenticate"},
		AllowCredentials: !allowsAnyOrigin(cfg.CORSOrigins),
	})

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      c.Handler(handler),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
}

// Credentials may not be combined with a wildcard origin.
func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// RunAppServer starts the blog API and blocks until SIGINT or SIGTERM.
func RunAppServer(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", "", "listen address, overrides BLOG_ADDR")
	storage := fs.String("storage", "", "storage backend (sqlite, postgres, badger), overrides BLOG_STORAGE")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, ok := mustConfig()
	if !ok {
		return 1
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *storage != "" {
		cfg.Storage = *storage
		if err := cfg.Validate(); err != nil {
			log.Printf("Invalid configuration: %v", err)
			return 1
		}
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Printf("Failed to open %s storage: %v", cfg.Storage, err)
		return 1
	}
	defer store.Close()

	srv := NewServer(cfg, NewHandler(cfg, store))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Starting blog API on %s (storage: %s)", cfg.Addr, store.Kind)
	return serve(ctx, srv, cfg.ShutdownTimeout)
}

// serve runs srv until it fails or ctx is cancelled, then shuts it down
// within timeout.
func serve(ctx context.Context, srv *http.Server, timeout time.Duration) int {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		log.Printf("Server error: %v", err)
		return 1
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
		return 1
	}
	log.Println("Server stopped")
	return 0
}
