package images

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/phototools/internal/models"
)

// supportedExts contains the input formats the converter and editor accept.
// Lookups are case-insensitive.
var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// IsSupported reports whether filename has a supported image extension
func IsSupported(filename string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(filename))]
}

// ListSupported returns the names of regular files in dir with a supported
// extension. The directory itself must exist.
func ListSupported(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if IsSupported(e.Name()) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// GetDimensions reads the pixel size from the image header without decoding pixels
func GetDimensions(imagePath string) (int, int, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	img, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, err
	}

	return img.Width, img.Height, nil
}

// DimensionOf formats the stored pixel size, "0x0" if the image is unreadable
func DimensionOf(imagePath string) (string, error) {
	width, height, err := GetDimensions(imagePath)
	if err != nil {
		return models.UnknownDimension, err
	}
	return models.Dimension(width, height), nil
}
