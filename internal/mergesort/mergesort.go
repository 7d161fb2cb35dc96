package mergesort

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/phototools/internal/jsonfile"
	"github.com/lehigh-university-libraries/phototools/internal/models"
	"github.com/lehigh-university-libraries/phototools/internal/validation"
)

const (
	// Indent of every file the sorter writes
	Indent = "  "
	// DefaultOutputDir is the subdirectory sorted files are written to
	DefaultOutputDir = "sorted"
	// CombinedFile holds every included record across all input files
	CombinedFile = "combined_sorted.json"
)

// ErrNotADirectory is returned when the input path is not a directory
var ErrNotADirectory = errors.New("not a valid directory")

// Order of the merged records
type Order string

const (
	Newest Order = "newest"
	Oldest Order = "oldest"
)

// Mode selects whether sorted files are written
type Mode string

const (
	Preview Mode = "preview"
	Save    Mode = "save"
)

// Item is one included record with the file it came from
type Item struct {
	Date   time.Time
	Record json.RawMessage
	File   string
}

// FileError records an input file that could not be parsed
type FileError struct {
	File string
	Err  error
}

// Scan is everything collected from one directory, in enumeration order
type Scan struct {
	Dir    string
	Items  []Item
	Errors []FileError
}

// Row is one line of the summary. Error rows carry Err and nothing else.
type Row struct {
	File  string
	Path  string
	First time.Time
	Last  time.Time
	Count int
	Err   error
}

// DateRange formats the first and last date of the row
func (r Row) DateRange() string {
	return fmt.Sprintf("%s to %s", r.First.Format(models.DateLayout), r.Last.Format(models.DateLayout))
}

func (r Row) String() string {
	if r.Err != nil {
		return fmt.Sprintf("ERROR | %s: %v", r.File, r.Err)
	}
	return fmt.Sprintf("%s | %s | %d", r.DateRange(), r.Path, r.Count)
}

// ScanDir reads every *.json file directly inside dir. A file that fails to
// parse becomes a FileError; records without a valid date are skipped.
func ScanDir(dir string) (*Scan, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	scan := &Scan{Dir: dir}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		records, err := readRecords(filepath.Join(dir, e.Name()))
		if err != nil {
			slog.Debug("Skipping unreadable JSON file", "file", e.Name(), "err", err)
			scan.Errors = append(scan.Errors, FileError{File: e.Name(), Err: err})
			continue
		}

		for _, record := range records {
			field := DateOf(record)
			if field.State != FieldValid {
				if field.State == FieldMalformed {
					slog.Debug("Excluding record with malformed date", "file", e.Name(), "value", field.Raw)
				}
				continue
			}
			scan.Items = append(scan.Items, Item{Date: field.Date, Record: record, File: e.Name()})
		}
	}
	return scan, nil
}

// readRecords returns the elements of a top-level array, or the value itself
// when it is an object
func readRecords(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var value json.RawMessage
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(value)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	case len(trimmed) > 0 && trimmed[0] == '{':
		return []json.RawMessage{trimmed}, nil
	default:
		return nil, nil
	}
}

// Sort orders items by date. Equal dates keep their scan order.
func Sort(items []Item, order Order) {
	if order == Oldest {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Date.Before(items[j].Date)
		})
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
}

// group splits sorted items by file, in order of first appearance
func group(items []Item) ([]string, map[string][]Item) {
	var files []string
	groups := make(map[string][]Item)
	for _, item := range items {
		if _, ok := groups[item.File]; !ok {
			files = append(files, item.File)
		}
		groups[item.File] = append(groups[item.File], item)
	}
	return files, groups
}

// Summarize returns the error rows followed by one row per file with
// included records. Items must already be sorted.
func Summarize(scan *Scan) []Row {
	rows := make([]Row, 0, len(scan.Errors))
	for _, fe := range scan.Errors {
		rows = append(rows, Row{File: fe.File, Path: filepath.Join(scan.Dir, fe.File), Err: fe.Err})
	}

	files, groups := group(scan.Items)
	for _, file := range files {
		items := groups[file]
		rows = append(rows, Row{
			File:  file,
			Path:  filepath.Join(scan.Dir, file),
			First: items[0].Date,
			Last:  items[len(items)-1].Date,
			Count: len(items),
		})
	}
	return rows
}

// Write stores one file per input file plus the combined file under outDir.
// Items must already be sorted. It returns the written paths.
func Write(outDir string, items []Item) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	files, groups := group(items)
	for _, file := range files {
		path := filepath.Join(outDir, file)
		if err := jsonfile.Write(path, records(groups[file]), Indent); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	combined := filepath.Join(outDir, CombinedFile)
	if err := jsonfile.Write(combined, records(items), Indent); err != nil {
		return written, err
	}
	return append(written, combined), nil
}

func records(items []Item) []json.RawMessage {
	out := make([]json.RawMessage, len(items))
	for i, item := range items {
		out[i] = item.Record
	}
	return out
}

// Options selects what Run sorts and where it writes
type Options struct {
	Dir       string `validate:"required"`
	Order     Order  `validate:"oneof=newest oldest"`
	Mode      Mode   `validate:"oneof=preview save"`
	OutputDir string
}

// Report is the outcome of Run
type Report struct {
	Options Options
	Rows    []Row
	Items   []Item
	Files   int
	Written []string
}

// Message is the completion notice shown to the user
func (r *Report) Message() string {
	if r.Options.Mode == Save {
		return fmt.Sprintf("Sorted and saved %d items from %d files", len(r.Items), r.Files)
	}
	return fmt.Sprintf("Found %d items in %d files (preview only)", len(r.Items), r.Files)
}

// Run scans, sorts and summarizes opts.Dir, writing sorted files in save mode
func Run(opts Options) (*Report, error) {
	if err := validation.Struct(opts); err != nil {
		return nil, err
	}
	info, err := os.Stat(opts.Dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, opts.Dir)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}

	scan, err := ScanDir(opts.Dir)
	if err != nil {
		return nil, err
	}
	Sort(scan.Items, opts.Order)

	files, _ := group(scan.Items)
	report := &Report{
		Options: opts,
		Rows:    Summarize(scan),
		Items:   scan.Items,
		Files:   len(files),
	}

	if opts.Mode == Save {
		outDir := opts.OutputDir
		if !filepath.IsAbs(outDir) {
			outDir = filepath.Join(opts.Dir, outDir)
		}
		written, err := Write(outDir, scan.Items)
		report.Written = written
		if err != nil {
			return report, fmt.Errorf("failed to save sorted files: %w", err)
		}
	}
	return report, nil
}
