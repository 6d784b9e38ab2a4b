// AngelaMos | 2026
// banner.go

package banner

import (
	"time"
)

// Banner is a promotional image shown on the landing page. Only active
// banners are served publicly, ordered by order_index.
type Banner struct {
	ID         string    `db:"id"`
	Title      string    `db:"title"`
	Subtitle   string    `db:"subtitle"`
	ImageURL   string    `db:"image_url"`
	LinkURL    string    `db:"link_url"`
	OrderIndex int       `db:"order_index"`
	IsActive   bool      `db:"is_active"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type CreateBannerRequest struct {
	Title      string `json:"title"       validate:"required,min=1,max=200"`
	Subtitle   string `json:"subtitle"    validate:"omitempty,max=500"`
	ImageURL   string `json:"image_url"   validate:"required,url,max=500"`
	LinkURL    string `json:"link_url"    validate:"omitempty,url,max=500"`
	OrderIndex int    `json:"order_index" validate:"gte=0"`
	IsActive   bool   `json:"is_active"`
}

type UpdateBannerRequest struct {
	Title      *string `json:"title,omitempty"       validate:"omitempty,min=1,max=200"`
	Subtitle   *string `json:"subtitle,omitempty"    validate:"omitempty,max=500"`
	ImageURL   *string `json:"image_url,omitempty"   validate:"omitempty,url,max=500"`
	LinkURL    *string `json:"link_url,omitempty"    validate:"omitempty,url,max=500"`
	OrderIndex *int    `json:"order_index,omitempty" validate:"omitempty,gte=0"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

type BannerResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle"`
	ImageURL   string    `json:"image_url"`
	LinkURL    string    `json:"link_url"`
	OrderIndex int       `json:"order_index"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toResponse(b *Banner) BannerResponse {
	return BannerResponse{
		ID:         b.ID,
		Title:      b.Title,
		Subtitle:   b.Subtitle,
		ImageURL:   b.ImageURL,
		LinkURL:    b.LinkURL,
		OrderIndex: b.OrderIndex,
		IsActive:   b.IsActive,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func toResponseList(banners []Banner) []BannerResponse {
	responses := make([]BannerResponse, 0, len(banners))
	for i := range banners {
		responses = append(responses, toResponse(&banners[i]))
	}
	return responses
}
