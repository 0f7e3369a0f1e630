package posts

import (
	"context"
	"errors"
	"testing"

	"github.com/vmakarov/blogapi/internal/common"
	"github.com/vmakarov/blogapi/internal/server/users"
)

// --- fakes ---

type fakePostsRepo struct {
	byID   map[int64]*Post
	nextID int64
}

func newFakePostsRepo() *fakePostsRepo {
	return &fakePostsRepo{byID: map[int64]*Post{}, nextID: 1}
}

func (f *fakePostsRepo) Create(ctx context.Context, p *Post) (*Post, error) {
	p.ID = f.nextID
	f.nextID++
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakePostsRepo) GetByID(ctx context.Context, id int64) (*Post, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakePostsRepo) List(ctx context.Context) ([]*Post, error) {
	var out []*Post
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePostsRepo) ListByUser(ctx context.Context, userID int64) ([]*Post, error) {
	var out []*Post
	for _, p := range f.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostsRepo) Update(ctx context.Context, p *Post) (*Post, error) {
	if _, ok := f.byID[p.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakePostsRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeUsersRepo struct {
	ids map[int64]bool
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *users.User) (*users.User, error) {
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	if f.ids[id] {
		return &users.User{ID: id}, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*users.User, error) { return nil, nil }

func (f *fakeUsersRepo) Update(ctx context.Context, u *users.User) (*users.User, error) {
	return u, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id int64) error { return nil }

// --- tests ---

func TestCreate_AuthorExists(t *testing.T) {
	s := NewService(newFakePostsRepo(), &fakeUsersRepo{ids: map[int64]bool{1: true}})

	p, err := s.Create(context.Background(), "Title", "Content", 1)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.ID == 0 || p.UserID != 1 {
		t.Fatalf("unexpected post: %+v", p)
	}
}

func TestCreate_UnknownAuthor(t *testing.T) {
	s := NewService(newFakePostsRepo(), &fakeUsersRepo{ids: map[int64]bool{}})

	_, err := s.Create(context.Background(), "Title", "Content", 99)
	if !errors.Is(err, common.ErrorBadRequest) {
		t.Fatalf("expected common.ErrorBadRequest, got %v", err)
	}
}

func TestUpdate_Partial(t *testing.T) {
	repo := newFakePostsRepo()
	s := NewService(repo, &fakeUsersRepo{ids: map[int64]bool{1: true}})

	p, err := s.Create(context.Background(), "Old title", "Old content", 1)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	title := "New title"
	updated, err := s.Update(context.Background(), p.ID, UpdateParams{Title: &title})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Title != "New title" || updated.Content != "Old content" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	s := NewService(newFakePostsRepo(), &fakeUsersRepo{})

	title := "x"
	_, err := s.Update(context.Background(), 42, UpdateParams{Title: &title})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestListByUser_FiltersAuthor(t *testing.T) {
	repo := newFakePostsRepo()
	s := NewService(repo, &fakeUsersRepo{ids: map[int64]bool{1: true, 2: true}})

	if _, err := s.Create(context.Background(), "a", "a", 1); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := s.Create(context.Background(), "b", "b", 2); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := s.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 1 || got[0].UserID != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
}
