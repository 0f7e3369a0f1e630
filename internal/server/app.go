// Package server initializes and runs the blog backend: it wires the
// Postgres repositories, the Redis revocation store, the domain services
// and the HTTP server, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/vmakarov/blogapi/internal/logging"
	"github.com/vmakarov/blogapi/internal/server/config"
	"github.com/vmakarov/blogapi/internal/server/httpapi"
	"github.com/vmakarov/blogapi/internal/server/posts"
	"github.com/vmakarov/blogapi/internal/server/revocation"
	"github.com/vmakarov/blogapi/internal/server/shared/db"
	"github.com/vmakarov/blogapi/internal/server/tokens"
	"github.com/vmakarov/blogapi/internal/server/users"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	userService  *users.Service
	postService  *posts.Service
	tokenService *tokens.Service
}

func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	var revocations revocation.Store
	if c.RedisAddr != "" {
		revocations = revocation.NewRedisStore(redis.NewClient(&redis.Options{Addr: c.RedisAddr}))
	} else {
		revocations = revocation.NewMemoryStore()
	}

	us := users.NewService(rm.Users())
	ps := posts.NewService(rm.Posts(), rm.Users())
	ts := tokens.NewService(rm.Users(), rm.RefreshTokens(), revocations, c)

	return &App{
		config:       c,
		logger:       logger,
		userService:  us,
		postService:  ps,
		tokenService: ts,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.postService, app.tokenService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
