package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vmakarov/blogapi/internal/common"
	"github.com/vmakarov/blogapi/internal/dbx"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Replace runs the delete and the insert inside one transaction, so two
// concurrent logins for the same user can never leave zero or two live rows.
func (r *PostgresRepository) Replace(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		deleteQuery :=
			`DELETE FROM refresh_tokens
			 WHERE user_id = $1
			 `
		if _, err := tx.ExecContext(ctx, deleteQuery, userID); err != nil {
			return fmt.Errorf("error performing sql request: %v", err)
		}

		insertQuery :=
			`INSERT INTO refresh_tokens (token, user_id, expires_at)
			 VALUES ($1, $2, $3)
			 `
		if _, err := tx.ExecContext(ctx, insertQuery, token, userID, expiresAt); err != nil {
			return fmt.Errorf("error performing sql request: %v", err)
		}

		return nil
	})
}

func (r *PostgresRepository) FindByTokenAndUser(ctx context.Context, token string, userID int64) (*RefreshToken, error) {
	query :=
		`SELECT id, token, user_id, expires_at FROM refresh_tokens
		 WHERE token = $1 AND user_id = $2
		 `

	rt := &RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, token, userID).
		Scan(&rt.ID, &rt.Token, &rt.UserID, &rt.ExpiresAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return rt, nil
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID int64) error {
	query :=
		`DELETE FROM refresh_tokens
		 WHERE user_id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM refresh_tokens
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}
