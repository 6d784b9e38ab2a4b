// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"testing"

	"github.com/renankelm10/cursera/internal/core"
)

type fakeRepo struct {
	users map[string]*User
}

func newFakeRepo(users ...*User) *fakeRepo {
	r := &fakeRepo{users: make(map[string]*User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return core.ErrDuplicateKey
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepo) UpdateProfile(_ context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return core.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) UpdateAccessFlags(
	_ context.Context,
	id string,
	isAdmin, hasPaidAccess bool,
) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	u.IsAdmin = isAdmin
	u.HasPaidAccess = hasPaidAccess
	copied := *u
	return &copied, nil
}

func (r *fakeRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *fakeRepo) SoftDelete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, _ ListUsersParams) ([]User, int, error) {
	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Count(_ context.Context) (int, error) {
	return len(r.users), nil
}

func boolptr(b bool) *bool { return &b }

func TestUpdateAccessRequiresAtLeastOneField(t *testing.T) {
	svc := NewService(newFakeRepo(&User{ID: "u1", Email: "a@b.c"}))

	_, err := svc.UpdateAccess(context.Background(), "u1", UpdateAccessRequest{})
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestUpdateAccessPartialKeepsOtherFlag(t *testing.T) {
	repo := newFakeRepo(&User{ID: "u1", Email: "a@b.c", IsAdmin: true})
	svc := NewService(repo)

	updated, err := svc.UpdateAccess(context.Background(), "u1", UpdateAccessRequest{
		HasPaidAccess: boolptr(true),
	})
	if err != nil {
		t.Fatalf("UpdateAccess: %v", err)
	}

	if !updated.HasPaidAccess {
		t.Error("has_paid_access should be set")
	}
	if !updated.IsAdmin {
		t.Error("is_admin must keep its current value when not in the request")
	}
}

func TestUpdateAccessMissingUser(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.UpdateAccess(context.Background(), "nope", UpdateAccessRequest{
		IsAdmin: boolptr(true),
	})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCanDeleteUserBlocksAdminTargets(t *testing.T) {
	repo := newFakeRepo(
		&User{ID: "admin1", IsAdmin: true},
		&User{ID: "admin2", IsAdmin: true},
		&User{ID: "member", IsAdmin: false},
	)
	svc := NewService(repo)

	if err := svc.CanDeleteUser(context.Background(), "admin1", "admin2"); !errors.Is(err, core.ErrForbidden) {
		t.Errorf("deleting another admin: err = %v, want ErrForbidden", err)
	}

	if err := svc.CanDeleteUser(context.Background(), "admin1", "member"); err != nil {
		t.Errorf("deleting a member: err = %v, want nil", err)
	}

	if err := svc.CanDeleteUser(context.Background(), "admin1", "admin1"); err != nil {
		t.Errorf("self-delete: err = %v, want nil", err)
	}
}

func TestGetByEmailLowercases(t *testing.T) {
	repo := newFakeRepo(&User{ID: "u1", Email: "mixed@example.com"})
	svc := NewService(repo)

	info, err := svc.GetByEmail(context.Background(), "Mixed@Example.COM")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if info.ID != "u1" {
		t.Errorf("id = %q, want u1", info.ID)
	}
}
