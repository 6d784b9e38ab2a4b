// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type UpdateProfileRequest struct {
	Name      *string   `json:"name,omitempty"      validate:"omitempty,min=1,max=100"`
	Bio       *string   `json:"bio,omitempty"       validate:"omitempty,max=2000"`
	Interests *[]string `json:"interests,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
}

// UpdateAccessRequest toggles the entitlement flags on a user row. Admin
// only; a nil field leaves the flag untouched.
type UpdateAccessRequest struct {
	IsAdmin       *bool `json:"is_admin,omitempty"`
	HasPaidAccess *bool `json:"has_paid_access,omitempty"`
}

type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	IsAdmin       bool      `json:"is_admin"`
	HasPaidAccess bool      `json:"has_paid_access"`
	Bio           string    `json:"bio,omitempty"`
	Interests     []string  `json:"interests,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ListUsersParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
	Paid     *bool  `json:"paid"`
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		IsAdmin:       u.IsAdmin,
		HasPaidAccess: u.HasPaidAccess,
		Bio:           u.Bio,
		Interests:     u.Interests,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
