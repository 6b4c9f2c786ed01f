// Package category implements catalog category CRUD.
package category

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/paulaveiga/doceria-api/model"
	"github.com/paulaveiga/doceria-api/utils/response"
	"github.com/paulaveiga/doceria-api/utils/slug"
	"github.com/paulaveiga/doceria-api/utils/validation"
	"gorm.io/gorm"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateCategoryRequest represents the request body for creating a category.
// Slug is optional; when blank it is derived from the name.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Slug string `json:"slug" validate:"omitempty,slug,max=100"`
}

// ListCategories handles GET /api/categories
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	var categories []model.Category
	if err := h.db.Order("created_at ASC").Find(&categories).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch categories")
	}

	return response.Success(c, categories)
}

// CreateCategory handles POST /api/categories
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizeString(req.Name)
	req.Slug = validation.SanitizeString(req.Slug)

	if req.Slug == "" {
		req.Slug = slug.Generate(req.Name)
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.Slug == "" {
		return response.BadRequest(c, "Name does not produce a valid slug")
	}

	// Slugs are unique across categories
	var existing model.Category
	if err := h.db.Where("slug = ?", req.Slug).First(&existing).Error; err == nil {
		return response.Conflict(c, "Category with this slug already exists")
	}

	category := model.Category{
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := h.db.Create(&category).Error; err != nil {
		return response.InternalServerError(c, "Failed to create category")
	}

	return response.Created(c, category)
}

// DeleteCategory handles DELETE /api/categories/:id.
// Cakes referencing the category keep existing with their category cleared.
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")

	var category model.Category
	if err := h.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to fetch category")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Cake{}).
			Where("category_id = ?", id).
			Update("category_id", "").Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete category")
	}

	return response.SuccessWithMessage(c, "Category deleted successfully", nil)
}
