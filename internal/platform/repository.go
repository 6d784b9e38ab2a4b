// AngelaMos | 2026
// repository.go

package platform

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/renankelm10/cursera/internal/core"
)

type Repository interface {
	Get(ctx context.Context) (*Config, error)
	Update(ctx context.Context, config *Config) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const configColumns = `id, site_name, support_url, purchase_url,
	       hero_title, hero_subtitle, maintenance_mode, updated_at`

// Get returns the singleton, inserting the default row on first use. The
// insert is idempotent under concurrent first reads.
func (r *repository) Get(ctx context.Context) (*Config, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM platform_config
		WHERE id = $1`, configColumns)

	var config Config
	err := r.db.GetContext(ctx, &config, query, singletonID)
	if errors.Is(err, sql.ErrNoRows) {
		return r.createDefault(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("get platform config: %w", err)
	}

	return &config, nil
}

func (r *repository) createDefault(ctx context.Context) (*Config, error) {
	query := fmt.Sprintf(`
		INSERT INTO platform_config (id, site_name)
		VALUES ($1, 'Cursera')
		ON CONFLICT (id) DO UPDATE SET id = platform_config.id
		RETURNING %s`, configColumns)

	var config Config
	if err := r.db.GetContext(ctx, &config, query, singletonID); err != nil {
		return nil, fmt.Errorf("create default platform config: %w", err)
	}

	return &config, nil
}

func (r *repository) Update(ctx context.Context, config *Config) error {
	query := `
		UPDATE platform_config
		SET site_name = $2, support_url = $3, purchase_url = $4,
		    hero_title = $5, hero_subtitle = $6, maintenance_mode = $7,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &config.UpdatedAt, query,
		singletonID,
		config.SiteName,
		config.SupportURL,
		config.PurchaseURL,
		config.HeroTitle,
		config.HeroSubtitle,
		config.MaintenanceMode,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update platform config: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update platform config: %w", err)
	}

	return nil
}
