// AngelaMos | 2026
// service.go

package platform

import (
	"context"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetConfig(ctx context.Context) (*Config, error) {
	return s.repo.Get(ctx)
}

// UpdateConfig applies a partial update; the singleton is created first if
// it does not exist yet.
func (s *Service) UpdateConfig(
	ctx context.Context,
	req UpdateConfigRequest,
) (*Config, error) {
	config, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.SiteName != nil {
		config.SiteName = *req.SiteName
	}
	if req.SupportURL != nil {
		config.SupportURL = *req.SupportURL
	}
	if req.PurchaseURL != nil {
		config.PurchaseURL = *req.PurchaseURL
	}
	if req.HeroTitle != nil {
		config.HeroTitle = *req.HeroTitle
	}
	if req.HeroSubtitle != nil {
		config.HeroSubtitle = *req.HeroSubtitle
	}
	if req.MaintenanceMode != nil {
		config.MaintenanceMode = *req.MaintenanceMode
	}

	if err := s.repo.Update(ctx, config); err != nil {
		return nil, err
	}

	return config, nil
}
