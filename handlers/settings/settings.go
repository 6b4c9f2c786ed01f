// Package settings serves the storefront settings singleton in two scopes:
// a public one with secrets stripped and an authorized admin one.
package settings

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/paulaveiga/doceria-api/model"
	"github.com/paulaveiga/doceria-api/utils/cache"
	"github.com/paulaveiga/doceria-api/utils/response"
	"gorm.io/gorm"
)

const (
	publicCacheKey = "settings:public"
	publicCacheTTL = 60 * time.Second
)

// SettingsHandler handles site settings requests
type SettingsHandler struct {
	db         *gorm.DB
	redisCache *cache.RedisCache // optional, public scope only
}

// NewSettingsHandler creates a new settings handler. redisCache may be nil.
func NewSettingsHandler(db *gorm.DB, redisCache *cache.RedisCache) *SettingsHandler {
	return &SettingsHandler{
		db:         db,
		redisCache: redisCache,
	}
}

// UpdateSettingsRequest is a partial update; nil fields are untouched
type UpdateSettingsRequest struct {
	HeroImageURL         *string `json:"hero_image_url"`
	LogoURL              *string `json:"logo_url"`
	InstagramAccessToken *string `json:"instagram_access_token"`
	InstagramUserID      *string `json:"instagram_user_id"`
}

func (h *SettingsHandler) load() (model.SiteSetting, error) {
	var settings model.SiteSetting
	err := h.db.Where("id = ?", model.SiteSettingID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.SiteSetting{ID: model.SiteSettingID}, nil
	}
	return settings, err
}

// GetPublicSettings handles GET /api/settings.
// The response never carries the Instagram access token.
func (h *SettingsHandler) GetPublicSettings(c *fiber.Ctx) error {
	if h.redisCache != nil {
		var cached model.PublicSiteSetting
		if err := h.redisCache.GetJSON(c.Context(), publicCacheKey, &cached); err == nil {
			return response.Success(c, cached)
		}
	}

	settings, err := h.load()
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch settings")
	}

	public := settings.PublicView()
	if h.redisCache != nil {
		h.redisCache.SetJSON(c.Context(), publicCacheKey, public, publicCacheTTL)
	}

	return response.Success(c, public)
}

// GetAdminSettings handles GET /api/settings/admin
func (h *SettingsHandler) GetAdminSettings(c *fiber.Ctx) error {
	settings, err := h.load()
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch settings")
	}

	return response.Success(c, settings)
}

// UpdateSettings handles PUT /api/settings as an upsert of provided fields
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var req UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	settings, err := h.load()
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch settings")
	}

	if req.HeroImageURL != nil {
		settings.HeroImageURL = *req.HeroImageURL
	}
	if req.LogoURL != nil {
		settings.LogoURL = *req.LogoURL
	}
	if req.InstagramAccessToken != nil {
		settings.InstagramAccessToken = *req.InstagramAccessToken
	}
	if req.InstagramUserID != nil {
		settings.InstagramUserID = *req.InstagramUserID
	}

	if err := h.db.Save(&settings).Error; err != nil {
		return response.InternalServerError(c, "Failed to update settings")
	}

	// Stale public cache would hide the update for its full TTL
	if h.redisCache != nil {
		h.redisCache.Delete(c.Context(), publicCacheKey)
	}

	return response.SuccessWithMessage(c, "Settings updated successfully", settings)
}
