package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/lehigh-university-libraries/phototools/internal/models"
)

// PriorStatus is the outcome of looking up earlier metadata for an image
type PriorStatus int

const (
	PriorNotFound PriorStatus = iota
	PriorParseError
	PriorFound
)

func (s PriorStatus) String() string {
	switch s {
	case PriorFound:
		return "found"
	case PriorParseError:
		return "parse error"
	default:
		return "not found"
	}
}

// PriorSource tells where a found record came from
type PriorSource string

const (
	SourceNone    PriorSource = ""
	SourceSession PriorSource = "session"
	SourceWorking PriorSource = "working file"
)

// Prior is the result of a prior-metadata lookup. Only PriorFound changes
// the form; the other outcomes leave it blank and are never shown as errors.
type Prior struct {
	Status PriorStatus
	Source PriorSource
	Record models.Record
	Err    error
}

// lookupWorkingFile searches the working file at path for id
func lookupWorkingFile(path, id string) Prior {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Prior{Status: PriorNotFound}
		}
		return Prior{Status: PriorParseError, Err: fmt.Errorf("failed to read working file: %w", err)}
	}

	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return Prior{Status: PriorParseError, Err: fmt.Errorf("failed to parse working file: %w", err)}
	}

	for _, r := range records {
		if r.ID == id {
			return Prior{Status: PriorFound, Source: SourceWorking, Record: r}
		}
	}
	return Prior{Status: PriorNotFound}
}

// formFromRecord rebuilds the form a record was synthesized from
func formFromRecord(r models.Record, categories models.CategorySet) models.Form {
	return models.Form{
		Title:       r.Title,
		Description: r.Description,
		Season:      r.Season,
		Categories:  categories.FormatIndices(r.Tags),
		Featured:    r.Featured,
	}
}
