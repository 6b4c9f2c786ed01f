// Package stats reports per-resource counts for the admin dashboard.
package stats

import (
	"github.com/gofiber/fiber/v2"
	"github.com/paulaveiga/doceria-api/model"
	"github.com/paulaveiga/doceria-api/utils/response"
	"gorm.io/gorm"
)

// StatsHandler handles dashboard statistics requests
type StatsHandler struct {
	db *gorm.DB
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{db: db}
}

// StatsResponse holds per-resource counts
type StatsResponse struct {
	Cakes        int64 `json:"cakes"`
	Categories   int64 `json:"categories"`
	Testimonials int64 `json:"testimonials"`
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	var stats StatsResponse

	if err := h.db.Model(&model.Cake{}).Count(&stats.Cakes).Error; err != nil {
		return response.InternalServerError(c, "Failed to count cakes")
	}
	if err := h.db.Model(&model.Category{}).Count(&stats.Categories).Error; err != nil {
		return response.InternalServerError(c, "Failed to count categories")
	}
	if err := h.db.Model(&model.Testimonial{}).Count(&stats.Testimonials).Error; err != nil {
		return response.InternalServerError(c, "Failed to count testimonials")
	}

	return response.Success(c, stats)
}
