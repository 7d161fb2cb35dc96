package providers

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
)

// Config represents one request to a vision-capable LLM provider
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
	Image       []byte
	// MimeType of Image, e.g. "image/jpeg"
	MimeType string
}

// Provider defines the interface for an LLM provider
type Provider interface {
	Generate(ctx context.Context, config Config) (string, error)
}

// MimeType guesses the MIME type of an image from its file extension,
// falling back to sniffing the content
func MimeType(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	}
	return http.DetectContentType(data)
}
