package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lehigh-university-libraries/phototools/internal/models"
	"github.com/parquet-go/parquet-go"
)

// ExportParquet writes records to a Parquet file, one row per record
func ExportParquet(path string, records []models.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := parquet.WriteFile(path, records); err != nil {
		return fmt.Errorf("failed to write parquet file: %w", err)
	}
	return nil
}

// ReadParquet loads records previously written by ExportParquet
func ReadParquet(path string) ([]models.Record, error) {
	records, err := parquet.ReadFile[models.Record](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}
	return records, nil
}
