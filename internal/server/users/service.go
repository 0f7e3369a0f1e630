package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmakarov/blogapi/internal/common"
	"github.com/vmakarov/blogapi/internal/cryptox"
)

// UpdateParams carries the optional fields of a partial user update.
// Nil fields are left untouched.
type UpdateParams struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
}

// Service implements account management: registration with email
// uniqueness, credential verification for login, and CRUD. Password
// hashing happens here so repositories only ever see bcrypt hashes.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, name, email, password string, age int) (*User, error) {

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrorEmailTaken
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &User{
		Name:     name,
		Email:    email,
		Password: hash,
		Age:      age,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// VerifyCredentials checks the email/password pair and returns the matching
// user. An unknown email and a wrong password both surface as
// common.ErrorUnauthorized so callers cannot probe which part was wrong.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*User, error) {

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !cryptox.CheckPassword(user.Password, password) {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*User, error) {

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Email != nil && *params.Email != user.Email {
		existing, err := s.repo.GetByEmail(ctx, *params.Email)
		if err == nil && existing.ID != id {
			return nil, common.ErrorEmailTaken
		}
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("error checking email: %w", err)
		}
		user.Email = *params.Email
	}
	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Age != nil {
		user.Age = *params.Age
	}
	if params.Password != nil {
		hash, err := cryptox.HashPassword(*params.Password)
		if err != nil {
			return nil, common.ErrorInternal
		}
		user.Password = hash
	}

	return s.repo.Update(ctx, user)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
