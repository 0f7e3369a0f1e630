package db

import (
	"context"
	"database/sql"

	"github.com/vmakarov/blogapi/internal/server/posts"
	"github.com/vmakarov/blogapi/internal/server/refreshtokens"
	"github.com/vmakarov/blogapi/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Posts() posts.Repository
	RefreshTokens() refreshtokens.Repository
}
