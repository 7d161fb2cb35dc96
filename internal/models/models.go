package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// DateLayout is the YYYY-MM-DD layout used by udate and tdate
	DateLayout = "2006-01-02"

	DefaultCamera = "Canon EOS 1100D"
	DefaultLens   = "18-55mm f/3.5-5.6"

	// UnknownDimension is recorded when an image could not be decoded
	UnknownDimension = "0x0"
)

// Record is the per-image metadata persisted to the working file and the catalog
type Record struct {
	ID          string   `json:"id" parquet:"id" validate:"required"`
	Title       string   `json:"title" parquet:"title"`
	Description string   `json:"description" parquet:"description"`
	Season      string   `json:"season" parquet:"season"`
	Tags        []string `json:"tags" parquet:"tags,list"`
	Camera      string   `json:"camera" parquet:"camera"`
	Lens        string   `json:"lens" parquet:"lens"`
	Dimension   string   `json:"dimension" parquet:"dimension" validate:"dimension"`
	UDate       string   `json:"udate" parquet:"udate" validate:"datetime=2006-01-02"`
	TDate       string   `json:"tdate" parquet:"tdate" validate:"datetime=2006-01-02"`
	Featured    bool     `json:"featured" parquet:"featured"`
}

// Form holds the editable values of the record under the cursor
type Form struct {
	Title       string
	Description string
	Season      string
	Categories  string // comma-separated category indices, e.g. "0,2"
	Featured    bool
}

// IDFromFilename derives a record id from an image filename
func IDFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Dimension formats pixel dimensions as "<width>x<height>"
func Dimension(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}
