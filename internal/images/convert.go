package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
)

// TargetExt is the extension of every converted file
const TargetExt = ".webp"

// ErrInvalidQuality is returned for a quality outside 1-100
var ErrInvalidQuality = errors.New("quality must be between 1 and 100")

// Result describes one conversion attempt
type Result struct {
	Filename string
	Output   string
	OK       bool
	Err      error
}

// Message renders the log line for this attempt
func (r Result) Message() string {
	if r.OK {
		return fmt.Sprintf("Converted: %s -> %s", r.Filename, filepath.Base(r.Output))
	}
	return fmt.Sprintf("Error converting %s: %v", r.Filename, r.Err)
}

// ValidateQuality checks the 1-100 range
func ValidateQuality(quality int) error {
	if quality < 1 || quality > 100 {
		return fmt.Errorf("%w (got %d)", ErrInvalidQuality, quality)
	}
	return nil
}

// ConvertFile decodes srcPath, applies its EXIF orientation and writes
// <dstDir>/<basename>.webp encoded at the given quality. The destination is
// only written once encoding has succeeded.
func ConvertFile(srcPath, dstDir string, quality int) Result {
	filename := filepath.Base(srcPath)
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	result := Result{
		Filename: filename,
		Output:   filepath.Join(dstDir, name+TargetExt),
	}

	data, err := encodeWebP(srcPath, quality)
	if err != nil {
		result.Err = err
		return result
	}

	if err := os.WriteFile(result.Output, data, 0644); err != nil {
		result.Err = fmt.Errorf("failed to write %s: %w", result.Output, err)
		return result
	}

	result.OK = true
	return result
}

func encodeWebP(srcPath string, quality int) ([]byte, error) {
	if err := ValidateQuality(quality); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img = ApplyOrientation(img, ReadOrientation(bytes.NewReader(raw)))

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
