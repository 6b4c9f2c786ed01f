// Package cake implements catalog item CRUD and the public list filters.
package cake

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/paulaveiga/doceria-api/model"
	"github.com/paulaveiga/doceria-api/utils/response"
	"github.com/paulaveiga/doceria-api/utils/validation"
	"gorm.io/gorm"
)

// CakeHandler handles catalog item requests
type CakeHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCakeHandler creates a new cake handler
func NewCakeHandler(db *gorm.DB) *CakeHandler {
	return &CakeHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateCakeRequest represents the request body for creating a cake
type CreateCakeRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=200"`
	Description  string   `json:"description" validate:"required"`
	Price        *float64 `json:"price" validate:"required,gte=0"`
	CategoryID   string   `json:"category_id"`
	ImageURL     string   `json:"image_url"`
	InstagramURL string   `json:"instagram_url"`
	Featured     bool     `json:"featured"`
}

// UpdateCakeRequest represents a partial update; nil fields are untouched
type UpdateCakeRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string  `json:"description" validate:"omitempty,min=1"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	CategoryID   *string  `json:"category_id"`
	ImageURL     *string  `json:"image_url"`
	InstagramURL *string  `json:"instagram_url"`
	Featured     *bool    `json:"featured"`
}

// ListCakes handles GET /api/cakes with optional featured and category filters
func (h *CakeHandler) ListCakes(c *fiber.Ctx) error {
	query := h.db.Model(&model.Cake{})

	if categoryID := c.Query("category"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	if featured := c.Query("featured"); featured != "" {
		query = query.Where("featured = ?", featured == "true")
	}

	var cakes []model.Cake
	if err := query.Order("created_at DESC").Find(&cakes).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch cakes")
	}

	return response.Success(c, cakes)
}

// GetCake handles GET /api/cakes/:id
func (h *CakeHandler) GetCake(c *fiber.Ctx) error {
	id := c.Params("id")

	var cake model.Cake
	if err := h.db.Where("id = ?", id).First(&cake).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Cake not found")
		}
		return response.InternalServerError(c, "Failed to fetch cake")
	}

	return response.Success(c, cake)
}

// CreateCake handles POST /api/cakes
func (h *CakeHandler) CreateCake(c *fiber.Ctx) error {
	var req CreateCakeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	cake := model.Cake{
		Name:         validation.SanitizeString(req.Name),
		Description:  validation.SanitizeString(req.Description),
		Price:        *req.Price,
		CategoryID:   req.CategoryID,
		ImageURL:     req.ImageURL,
		InstagramURL: req.InstagramURL,
		Featured:     req.Featured,
	}

	if err := h.db.Create(&cake).Error; err != nil {
		return response.InternalServerError(c, "Failed to create cake")
	}

	return response.Created(c, cake)
}

// UpdateCake handles PUT /api/cakes/:id
func (h *CakeHandler) UpdateCake(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateCakeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var cake model.Cake
	if err := h.db.Where("id = ?", id).First(&cake).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Cake not found")
		}
		return response.InternalServerError(c, "Failed to fetch cake")
	}

	if req.Name != nil {
		cake.Name = validation.SanitizeString(*req.Name)
	}
	if req.Description != nil {
		cake.Description = validation.SanitizeString(*req.Description)
	}
	if req.Price != nil {
		cake.Price = *req.Price
	}
	if req.CategoryID != nil {
		cake.CategoryID = *req.CategoryID
	}
	if req.ImageURL != nil {
		cake.ImageURL = *req.ImageURL
	}
	if req.InstagramURL != nil {
		cake.InstagramURL = *req.InstagramURL
	}
	if req.Featured != nil {
		cake.Featured = *req.Featured
	}

	if err := h.db.Save(&cake).Error; err != nil {
		return response.InternalServerError(c, "Failed to update cake")
	}

	return response.SuccessWithMessage(c, "Cake updated successfully", cake)
}

// DeleteCake handles DELETE /api/cakes/:id
func (h *CakeHandler) DeleteCake(c *fiber.Ctx) error {
	id := c.Params("id")

	result := h.db.Where("id = ?", id).Delete(&model.Cake{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete cake")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Cake not found")
	}

	return response.SuccessWithMessage(c, "Cake deleted successfully", nil)
}
