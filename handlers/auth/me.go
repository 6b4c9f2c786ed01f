package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/paulaveiga/doceria-api/utils/middleware"
	"github.com/paulaveiga/doceria-api/utils/response"
)

// IdentityResponse is the resolved identity for a bearer token
type IdentityResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	return response.Success(c, IdentityResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	})
}
