// AngelaMos | 2026
// service.go

package banner

import (
	"context"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListActive(ctx context.Context) ([]Banner, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) ListAll(ctx context.Context) ([]Banner, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Banner, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateBannerRequest) (*Banner, error) {
	banner := &Banner{
		ID:         uuid.New().String(),
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		ImageURL:   req.ImageURL,
		LinkURL:    req.LinkURL,
		OrderIndex: req.OrderIndex,
		IsActive:   req.IsActive,
	}

	if err := s.repo.Create(ctx, banner); err != nil {
		return nil, err
	}

	return banner, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateBannerRequest,
) (*Banner, error) {
	banner, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		banner.Title = *req.Title
	}
	if req.Subtitle != nil {
		banner.Subtitle = *req.Subtitle
	}
	if req.ImageURL != nil {
		banner.ImageURL = *req.ImageURL
	}
	if req.LinkURL != nil {
		banner.LinkURL = *req.LinkURL
	}
	if req.OrderIndex != nil {
		banner.OrderIndex = *req.OrderIndex
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, banner); err != nil {
		return nil, err
	}

	return banner, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
