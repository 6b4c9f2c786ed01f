package model

import "time"

// SiteSettingID is the primary key of the settings singleton row
const SiteSettingID = "site_settings"

// SiteSetting is the storefront configuration singleton. The full record
// is only served through the authorized admin endpoint.
type SiteSetting struct {
	ID                   string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	HeroImageURL         string    `json:"hero_image_url"`
	LogoURL              string    `json:"logo_url"`
	InstagramAccessToken string    `json:"instagram_access_token"`
	InstagramUserID      string    `json:"instagram_user_id"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName keeps the singleton in its own table
func (SiteSetting) TableName() string {
	return "site_settings"
}

// PublicSiteSetting is the secret-free subset served to the storefront
type PublicSiteSetting struct {
	HeroImageURL    string `json:"hero_image_url"`
	LogoURL         string `json:"logo_url"`
	InstagramUserID string `json:"instagram_user_id"`
}

// PublicView strips the Instagram access token for unauthenticated callers
func (s SiteSetting) PublicView() PublicSiteSetting {
	return PublicSiteSetting{
		HeroImageURL:    s.HeroImageURL,
		LogoURL:         s.LogoURL,
		InstagramUserID: s.InstagramUserID,
	}
}
