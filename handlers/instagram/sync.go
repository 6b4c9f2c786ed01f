// Package instagram exposes the manual sync trigger for the admin console.
package instagram

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	instagramsvc "github.com/paulaveiga/doceria-api/services/instagram"
	"github.com/paulaveiga/doceria-api/utils/response"
)

// SyncHandler handles sync trigger requests
type SyncHandler struct {
	service *instagramsvc.SyncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(service *instagramsvc.SyncService) *SyncHandler {
	return &SyncHandler{service: service}
}

// SyncResponse summarizes a completed run for the console
type SyncResponse struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// TriggerSync handles POST /api/instagram/sync
func (h *SyncHandler) TriggerSync(c *fiber.Ctx) error {
	result, err := h.service.Sync(c.UserContext(), "manual")
	if err != nil {
		// A missing token or a remote rejection is an integration failure,
		// not a malformed request
		if errors.Is(err, instagramsvc.ErrNotConfigured) {
			return response.IntegrationError(c, "Instagram is not configured. Set the access token and user id in settings.")
		}
		return response.IntegrationError(c, err.Error())
	}

	return response.SuccessWithMessage(c, result.Message, SyncResponse{
		Message:  result.Message,
		Imported: result.Imported,
		Skipped:  result.Skipped,
	})
}
