// Package testimonial implements customer review CRUD.
package testimonial

import (
	"github.com/gofiber/fiber/v2"
	"github.com/paulaveiga/doceria-api/model"
	"github.com/paulaveiga/doceria-api/utils/response"
	"github.com/paulaveiga/doceria-api/utils/validation"
	"gorm.io/gorm"
)

// TestimonialHandler handles testimonial requests
type TestimonialHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewTestimonialHandler creates a new testimonial handler
func NewTestimonialHandler(db *gorm.DB) *TestimonialHandler {
	return &TestimonialHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateTestimonialRequest represents the request body for creating a testimonial
type CreateTestimonialRequest struct {
	AuthorName string `json:"author_name" validate:"required,min=1,max=100"`
	Content    string `json:"content" validate:"required"`
	Rating     *int   `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

// ListTestimonials handles GET /api/testimonials
func (h *TestimonialHandler) ListTestimonials(c *fiber.Ctx) error {
	var testimonials []model.Testimonial
	if err := h.db.Order("created_at DESC").Find(&testimonials).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch testimonials")
	}

	return response.Success(c, testimonials)
}

// CreateTestimonial handles POST /api/testimonials
func (h *TestimonialHandler) CreateTestimonial(c *fiber.Ctx) error {
	var req CreateTestimonialRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	rating := 5
	if req.Rating != nil {
		rating = *req.Rating
	}

	testimonial := model.Testimonial{
		AuthorName: validation.SanitizeString(req.AuthorName),
		Content:    validation.SanitizeString(req.Content),
		Rating:     rating,
	}

	if err := h.db.Create(&testimonial).Error; err != nil {
		return response.InternalServerError(c, "Failed to create testimonial")
	}

	return response.Created(c, testimonial)
}

// DeleteTestimonial handles DELETE /api/testimonials/:id
func (h *TestimonialHandler) DeleteTestimonial(c *fiber.Ctx) error {
	id := c.Params("id")

	result := h.db.Where("id = ?", id).Delete(&model.Testimonial{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete testimonial")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Testimonial not found")
	}

	return response.SuccessWithMessage(c, "Testimonial deleted successfully", nil)
}
