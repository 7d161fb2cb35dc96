package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lehigh-university-libraries/phototools/internal/jsonfile"
	"github.com/lehigh-university-libraries/phototools/internal/models"
	"github.com/lehigh-university-libraries/phototools/internal/validation"
)

// Indent is used for both the working file and the catalog
const Indent = "    "

// ErrCatalogCorrupt is returned when the catalog exists but is not a JSON array
var ErrCatalogCorrupt = errors.New("catalog file is not valid JSON")

// Store persists editor sessions
type Store struct {
	// CatalogPath is the global portfolio catalog
	CatalogPath string
	// WorkingFile is the name of the per-folder snapshot
	WorkingFile string
	// ResetOnCorrupt replaces an unparseable catalog instead of refusing to save
	ResetOnCorrupt bool
}

// NewStore returns a store writing to catalogPath and <folder>/workingFile
func NewStore(catalogPath, workingFile string) *Store {
	return &Store{
		CatalogPath: catalogPath,
		WorkingFile: workingFile,
	}
}

// WorkingPath returns the working file location for folder
func (s *Store) WorkingPath(folder string) string {
	return filepath.Join(folder, s.WorkingFile)
}

// Save writes records to the folder's working file, then merges them into
// the catalog. The working file is kept even if the catalog step fails.
func (s *Store) Save(folder string, records []models.Record) error {
	for _, r := range records {
		if err := validation.Struct(r); err != nil {
			return fmt.Errorf("record %q: %w", r.ID, err)
		}
	}

	if records == nil {
		records = []models.Record{}
	}
	if err := jsonfile.Write(s.WorkingPath(folder), records, Indent); err != nil {
		return err
	}
	slog.Info("Working file saved", "path", s.WorkingPath(folder), "records", len(records))

	existing, err := LoadCatalog(s.CatalogPath)
	if err != nil {
		if !errors.Is(err, ErrCatalogCorrupt) || !s.ResetOnCorrupt {
			return err
		}
		slog.Warn("Catalog could not be parsed, starting from an empty catalog", "path", s.CatalogPath, "err", err)
		existing = nil
	}

	merged, err := Merge(existing, records)
	if err != nil {
		return err
	}

	if err := jsonfile.Write(s.CatalogPath, merged, Indent); err != nil {
		return err
	}
	slog.Info("Catalog saved", "path", s.CatalogPath, "entries", len(merged))
	return nil
}

// LoadCatalog reads the catalog entries verbatim. A missing file is an empty
// catalog; anything that is not a JSON array yields ErrCatalogCorrupt.
func LoadCatalog(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCatalogCorrupt, path, err)
	}
	return entries, nil
}

// Merge inserts session records at the front of the catalog. Records are
// taken in reverse so the first session record ends up first; any existing
// entry with the same id is dropped. Entries not touched keep their bytes.
func Merge(existing []json.RawMessage, session []models.Record) ([]json.RawMessage, error) {
	merged := make([]json.RawMessage, len(existing))
	copy(merged, existing)

	for i := len(session) - 1; i >= 0; i-- {
		record := session[i]
		raw, err := jsonfile.Marshal(record, "")
		if err != nil {
			return nil, fmt.Errorf("failed to encode record %q: %w", record.ID, err)
		}

		kept := make([]json.RawMessage, 0, len(merged)+1)
		kept = append(kept, raw)
		for _, entry := range merged {
			if id, ok := entryID(entry); ok && id == record.ID {
				continue
			}
			kept = append(kept, entry)
		}
		merged = kept
	}

	return merged, nil
}

// entryID extracts a string "id" from a catalog entry
func entryID(entry json.RawMessage) (string, bool) {
	var probe struct {
		ID *string `json:"id"`
	}
	if err := json.Unmarshal(entry, &probe); err != nil || probe.ID == nil {
		return "", false
	}
	return *probe.ID, true
}

// ReadRecords decodes a working file or catalog into records
func ReadRecords(path string) ([]models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return records, nil
}
