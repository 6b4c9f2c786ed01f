// Package storage stores uploaded images and hands back stable URLs.
package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Uploader stores a single file and returns a URL the catalog can reference
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, data io.Reader) (string, error)
}

// GenerateKey generates a unique object key for file storage
func GenerateKey(prefix, filename string) string {
	timestamp := time.Now().Unix()
	ext := filepath.Ext(filename)
	base := filename[:len(filename)-len(ext)]

	return fmt.Sprintf("%s/%d_%s%s", prefix, timestamp, base, ext)
}

// ImageContentType returns the content type for an image filename,
// or empty when the extension is not an accepted image format.
func ImageContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}

// InlineStore encodes uploads as data URLs instead of persisting them.
// Used when no object storage is configured, so development needs no bucket.
type InlineStore struct{}

// NewInlineStore creates a store that returns data URLs
func NewInlineStore() *InlineStore {
	return &InlineStore{}
}

// Upload reads the file and returns it as a base64 data URL
func (s *InlineStore) Upload(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	contents, err := io.ReadAll(data)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	if contentType == "" {
		contentType = "image/jpeg"
	}

	encoded := base64.StdEncoding.EncodeToString(contents)
	return fmt.Sprintf("data:%s;base64,%s", contentType, encoded), nil
}
