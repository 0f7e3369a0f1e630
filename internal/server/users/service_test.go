package users

import (
	"context"
	"errors"
	"testing"

	"github.com/vmakarov/blogapi/internal/common"
	"github.com/vmakarov/blogapi/internal/cryptox"
)

// --- fakes ---

type fakeRepo struct {
	byEmail map[string]*User
	byID    map[int64]*User

	nextID    int64
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byEmail: map[string]*User{},
		byID:    map[int64]*User{},
		nextID:  1,
	}
}

func (f *fakeRepo) Create(ctx context.Context, u *User) (*User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRepo) List(ctx context.Context) ([]*User, error) {
	var out []*User
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, u *User) (*User, error) {
	if _, ok := f.byID[u.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	delete(f.byEmail, u.Email)
	delete(f.byID, id)
	return nil
}

// --- tests ---

func TestRegister_HashesPassword(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo)

	u, err := s.Register(context.Background(), "Alice", "alice@example.com", "pw123456", 30)
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if u.Password == "pw123456" {
		t.Fatalf("stored password must be hashed")
	}
	if !cryptox.CheckPassword(u.Password, "pw123456") {
		t.Fatalf("stored hash does not match the original password")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo)

	if _, err := s.Register(context.Background(), "Alice", "dup@example.com", "pw123456", 30); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	_, err := s.Register(context.Background(), "Bob", "dup@example.com", "pw654321", 25)
	if !errors.Is(err, common.ErrorEmailTaken) {
		t.Fatalf("expected common.ErrorEmailTaken, got %v", err)
	}
}

func TestVerifyCredentials(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo)

	reg, err := s.Register(context.Background(), "Alice", "alice@example.com", "pw123456", 30)
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	u, err := s.VerifyCredentials(context.Background(), "alice@example.com", "pw123456")
	if err != nil {
		t.Fatalf("VerifyCredentials error: %v", err)
	}
	if u.ID != reg.ID {
		t.Fatalf("user id mismatch: got %d want %d", u.ID, reg.ID)
	}

	if _, err := s.VerifyCredentials(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected common.ErrorUnauthorized for wrong password, got %v", err)
	}
	if _, err := s.VerifyCredentials(context.Background(), "ghost@example.com", "pw123456"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected common.ErrorUnauthorized for unknown email, got %v", err)
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo)

	u, err := s.Register(context.Background(), "Alice", "alice@example.com", "pw123456", 30)
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	newName := "Alice B."
	newAge := 31
	updated, err := s.Update(context.Background(), u.ID, UpdateParams{Name: &newName, Age: &newAge})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Name != "Alice B." || updated.Age != 31 {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.Email != "alice@example.com" {
		t.Fatalf("email must be unchanged, got %q", updated.Email)
	}
}

func TestUpdate_EmailTaken(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo)

	if _, err := s.Register(context.Background(), "Alice", "alice@example.com", "pw123456", 30); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	bob, err := s.Register(context.Background(), "Bob", "bob@example.com", "pw654321", 25)
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	taken := "alice@example.com"
	_, err = s.Update(context.Background(), bob.ID, UpdateParams{Email: &taken})
	if !errors.Is(err, common.ErrorEmailTaken) {
		t.Fatalf("expected common.ErrorEmailTaken, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	s := NewService(newFakeRepo())
	if err := s.Delete(context.Background(), 42); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}
