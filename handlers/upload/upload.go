// Package upload accepts admin image uploads and returns stable URLs.
package upload

import (
	"github.com/gofiber/fiber/v2"
	"github.com/paulaveiga/doceria-api/services/storage"
	"github.com/paulaveiga/doceria-api/utils/response"
)

// maxUploadSize caps image uploads at 10 MB
const maxUploadSize = 10 << 20

// UploadHandler handles file uploads
type UploadHandler struct {
	store storage.Uploader
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(store storage.Uploader) *UploadHandler {
	return &UploadHandler{
		store: store,
	}
}

// UploadResponse carries the stored file URL
type UploadResponse struct {
	URL string `json:"url"`
}

// Upload handles POST /api/upload (multipart form, field "file")
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "Missing file")
	}

	if fileHeader.Size > maxUploadSize {
		return response.BadRequest(c, "File exceeds the 10MB limit")
	}

	contentType := storage.ImageContentType(fileHeader.Filename)
	if contentType == "" {
		return response.BadRequest(c, "Unsupported file type. Upload a JPEG, PNG, GIF or WebP image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read upload")
	}
	defer file.Close()

	url, err := h.store.Upload(c.Context(), fileHeader.Filename, contentType, file)
	if err != nil {
		return response.InternalServerError(c, "Failed to store upload")
	}

	return response.Success(c, UploadResponse{URL: url})
}
