package posts

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmakarov/blogapi/internal/common"
	"github.com/vmakarov/blogapi/internal/server/users"
)

// UpdateParams carries the optional fields of a partial post update.
type UpdateParams struct {
	Title   *string
	Content *string
}

// Service implements post CRUD. Creation verifies the author exists so a
// post can never reference a vanished account.
type Service struct {
	repo  Repository
	users users.Repository
}

func NewService(repo Repository, usersRepo users.Repository) *Service {
	return &Service{repo: repo, users: usersRepo}
}

func (s *Service) Create(ctx context.Context, title, content string, userID int64) (*Post, error) {

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorBadRequest
		}
		return nil, fmt.Errorf("error checking author: %w", err)
	}

	post := &Post{
		Title:   title,
		Content: content,
		UserID:  userID,
	}

	post, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	return post, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Post, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*Post, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Post, error) {

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		post.Title = *params.Title
	}
	if params.Content != nil {
		post.Content = *params.Content
	}

	return s.repo.Update(ctx, post)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
