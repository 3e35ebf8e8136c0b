package utils

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// MaxImageSize caps cover and photo uploads.
const MaxImageSize = 5 << 20 // 5 MB

// ImageUpload is a validated multipart image ready for object storage.
type ImageUpload struct {
	Data        []byte
	ContentType string
	Ext         string
}

// ReadImageUpload extracts and validates an image from a multipart form.
func ReadImageUpload(c *gin.Context, field string) (*ImageUpload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing %s file", field)
	}
	if fileHeader.Size > MaxImageSize {
		return nil, errors.New("file exceeds the 5 MB limit")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return nil, errors.New("only JPEG, PNG and WebP images are accepted")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	return &ImageUpload{Data: data, ContentType: contentType, Ext: ext}, nil
}
