// AngelaMos | 2026
// platform.go

package platform

import (
	"time"
)

// Config is the site-wide settings singleton. Exactly one row exists; the
// first read creates it with defaults.
type Config struct {
	ID              int       `db:"id"`
	SiteName        string    `db:"site_name"`
	SupportURL      string    `db:"support_url"`
	PurchaseURL     string    `db:"purchase_url"`
	HeroTitle       string    `db:"hero_title"`
	HeroSubtitle    string    `db:"hero_subtitle"`
	MaintenanceMode bool      `db:"maintenance_mode"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// singletonID pins the one allowed row.
const singletonID = 1

type UpdateConfigRequest struct {
	SiteName        *string `json:"site_name,omitempty"     validate:"omitempty,min=1,max=100"`
	SupportURL      *string `json:"support_url,omitempty"   validate:"omitempty,url,max=500"`
	PurchaseURL     *string `json:"purchase_url,omitempty"  validate:"omitempty,url,max=500"`
	HeroTitle       *string `json:"hero_title,omitempty"    validate:"omitempty,max=200"`
	HeroSubtitle    *string `json:"hero_subtitle,omitempty" validate:"omitempty,max=500"`
	MaintenanceMode *bool   `json:"maintenance_mode,omitempty"`
}

type ConfigResponse struct {
	SiteName        string    `json:"site_name"`
	SupportURL      string    `json:"support_url"`
	PurchaseURL     string    `json:"purchase_url"`
	HeroTitle       string    `json:"hero_title"`
	HeroSubtitle    string    `json:"hero_subtitle"`
	MaintenanceMode bool      `json:"maintenance_mode"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toResponse(c *Config) ConfigResponse {
	return ConfigResponse{
		SiteName:        c.SiteName,
		SupportURL:      c.SupportURL,
		PurchaseURL:     c.PurchaseURL,
		HeroTitle:       c.HeroTitle,
		HeroSubtitle:    c.HeroSubtitle,
		MaintenanceMode: c.MaintenanceMode,
		UpdatedAt:       c.UpdatedAt,
	}
}
