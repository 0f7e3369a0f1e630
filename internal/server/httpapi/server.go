// Package httpapi exposes the REST surface of the blog backend: auth
// endpoints built on the tokens service, and user/post CRUD.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/vmakarov/blogapi/internal/logging"
	"github.com/vmakarov/blogapi/internal/server/posts"
	"github.com/vmakarov/blogapi/internal/server/tokens"
	"github.com/vmakarov/blogapi/internal/server/users"
)

type Server struct {
	address  string
	logger   logging.Logger
	users    *users.Service
	posts    *posts.Service
	tokens   *tokens.Service
	validate *validator.Validate
}

func NewServer(address string, l logging.Logger, us *users.Service, ps *posts.Service, ts *tokens.Service) *Server {
	return &Server{
		address:  address,
		logger:   l.With("module", "http_server"),
		users:    us,
		posts:    ps,
		tokens:   ts,
		validate: validator.New(),
	}
}

// Routes assembles the chi router. Split out from Run so tests can mount
// the handler on httptest servers.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/logout", s.handleLogout)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/profile", s.handleProfile)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleCreateUser)
			r.Get("/{id}", s.handleGetUser)
			r.Patch("/{id}", s.handleUpdateUser)
			r.Delete("/{id}", s.handleDeleteUser)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", s.handleListPosts)
			r.Get("/{id}", s.handleGetPost)
			r.Get("/user/{userId}", s.handleListPostsByUser)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/", s.handleCreatePost)
				r.Patch("/{id}", s.handleUpdatePost)
				r.Delete("/{id}", s.handleDeletePost)
			})
		})
	})

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
