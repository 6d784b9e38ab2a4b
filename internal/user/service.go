// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/renankelm10/cursera/internal/auth"
	"github.com/renankelm10/cursera/internal/core"
	"github.com/renankelm10/cursera/internal/identity"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	email, passwordHash, name string,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Name:         name,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// GetSnapshot feeds the identity resolver. Flags come straight from the
// current row, never from anything the credential carried.
func (s *Service) GetSnapshot(
	ctx context.Context,
	userID string,
) (*identity.Snapshot, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &identity.Snapshot{
		ID:            user.ID,
		IsAdmin:       user.IsAdmin,
		HasPaidAccess: user.HasPaidAccess,
	}, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Interests != nil {
		user.Interests = *req.Interests
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateAccess mutates the entitlement flags. Only reachable through admin
// routes; a nil field in the request keeps the current value.
func (s *Service) UpdateAccess(
	ctx context.Context,
	id string,
	req UpdateAccessRequest,
) (*User, error) {
	if req.IsAdmin == nil && req.HasPaidAccess == nil {
		return nil, fmt.Errorf(
			"update access: no fields provided: %w",
			core.ErrInvalidInput,
		)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isAdmin := user.IsAdmin
	if req.IsAdmin != nil {
		isAdmin = *req.IsAdmin
	}

	hasPaidAccess := user.HasPaidAccess
	if req.HasPaidAccess != nil {
		hasPaidAccess = *req.HasPaidAccess
	}

	return s.repo.UpdateAccessFlags(ctx, id, isAdmin, hasPaidAccess)
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

// CanDeleteUser blocks admins from deleting other admins; demote first.
func (s *Service) CanDeleteUser(
	ctx context.Context,
	requesterID, targetID string,
) error {
	if requesterID == targetID {
		return nil
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if target.IsAdmin {
		return fmt.Errorf("cannot delete admin users: %w", core.ErrForbidden)
	}

	return nil
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) CountUsers(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		PasswordHash:  u.PasswordHash,
		IsAdmin:       u.IsAdmin,
		HasPaidAccess: u.HasPaidAccess,
		CreatedAt:     u.CreatedAt,
	}
}

var (
	_ auth.UserProvider     = (*Service)(nil)
	_ identity.UserProvider = (*Service)(nil)
)
