package libs

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 5 * 1024 * 1024

// SaveUploadedImage stores an uploaded image in a temp directory and returns
// its path, validating extension and size first. The caller is expected to
// hand the file to cloudinary, which removes it.
func SaveUploadedImage(c *gin.Context, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		return "", fmt.Errorf("unsupported image format, allowed: .png, .jpg, .jpeg, .gif, .webp")
	}

	if header.Size > maxUploadSize {
		return "", fmt.Errorf("file too large (max 5MB)")
	}

	dir := filepath.Join(os.TempDir(), "gorilla-shop-uploads")
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%d%s", time.Now().UnixNano(), ext))
	if err := c.SaveUploadedFile(header, path); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return path, nil
}
