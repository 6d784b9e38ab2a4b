// AngelaMos | 2026
// repository.go

package banner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/renankelm10/cursera/internal/core"
)

type Repository interface {
	Create(ctx context.Context, banner *Banner) error
	GetByID(ctx context.Context, id string) (*Banner, error)
	Update(ctx context.Context, banner *Banner) error
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]Banner, error)
	ListAll(ctx context.Context) ([]Banner, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const bannerColumns = `id, title, subtitle, image_url, link_url,
	       order_index, is_active, created_at, updated_at`

func (r *repository) Create(ctx context.Context, banner *Banner) error {
	query := `
		INSERT INTO banners (id, title, subtitle, image_url, link_url,
		                     order_index, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, banner, query,
		banner.ID,
		banner.Title,
		banner.Subtitle,
		banner.ImageURL,
		banner.LinkURL,
		banner.OrderIndex,
		banner.IsActive,
	)
	if err != nil {
		return fmt.Errorf("create banner: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Banner, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM banners
		WHERE id = $1`, bannerColumns)

	var banner Banner
	err := r.db.GetContext(ctx, &banner, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get banner: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get banner: %w", err)
	}

	return &banner, nil
}

func (r *repository) Update(ctx context.Context, banner *Banner) error {
	query := `
		UPDATE banners
		SET title = $2, subtitle = $3, image_url = $4, link_url = $5,
		    order_index = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &banner.UpdatedAt, query,
		banner.ID,
		banner.Title,
		banner.Subtitle,
		banner.ImageURL,
		banner.LinkURL,
		banner.OrderIndex,
		banner.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update banner: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update banner: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete banner: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListActive(ctx context.Context) ([]Banner, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM banners
		WHERE is_active = TRUE
		ORDER BY order_index ASC, created_at ASC`, bannerColumns)

	var banners []Banner
	if err := r.db.SelectContext(ctx, &banners, query); err != nil {
		return nil, fmt.Errorf("list active banners: %w", err)
	}

	return banners, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Banner, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM banners
		ORDER BY order_index ASC, created_at ASC`, bannerColumns)

	var banners []Banner
	if err := r.db.SelectContext(ctx, &banners, query); err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}

	return banners, nil
}
