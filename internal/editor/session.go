package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/phototools/internal/catalog"
	"github.com/lehigh-university-libraries/phototools/internal/images"
	"github.com/lehigh-university-libraries/phototools/internal/models"
)

var (
	// ErrFolderNotFound is returned by Load for a missing folder
	ErrFolderNotFound = errors.New("folder does not exist")
	// ErrNotBrowsing is returned when no image is under the cursor
	ErrNotBrowsing = errors.New("no image loaded")
)

// State of an editor session
type State int

const (
	StateEmpty State = iota
	StateBrowsing
	StateUnloadable
)

func (s State) String() string {
	switch s {
	case StateBrowsing:
		return "browsing"
	case StateUnloadable:
		return "unloadable"
	default:
		return "empty"
	}
}

// Direction moves the cursor
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// Session walks the images of one folder and buffers a record per image
type Session struct {
	store      *catalog.Store
	categories models.CategorySet
	camera     string
	lens       string
	now        func() time.Time

	state     State
	folder    string
	files     []string
	cursor    int
	records   []*models.Record
	form      models.Form
	dimension string
	prior     Prior
}

// Option configures a Session
type Option func(*Session)

// WithClock replaces time.Now for date stamping
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithEquipment overrides the default camera and lens
func WithEquipment(camera, lens string) Option {
	return func(s *Session) {
		if camera != "" {
			s.camera = camera
		}
		if lens != "" {
			s.lens = lens
		}
	}
}

// NewSession returns an empty session persisting through store
func NewSession(store *catalog.Store, categories models.CategorySet, opts ...Option) *Session {
	s := &Session{
		store:      store,
		categories: categories,
		camera:     models.DefaultCamera,
		lens:       models.DefaultLens,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the session with the images of folder. A folder without
// supported images leaves the session Unloadable.
func (s *Session) Load(folder string) error {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrFolderNotFound, folder)
	}

	files, err := images.ListSupported(folder)
	if err != nil {
		return err
	}

	s.folder = folder
	s.files = files
	s.cursor = 0
	s.records = make([]*models.Record, len(files))
	s.form = models.Form{}
	s.dimension = ""
	s.prior = Prior{}

	if len(files) == 0 {
		s.state = StateUnloadable
		slog.Info("No images found in folder", "folder", folder)
		return nil
	}

	s.state = StateBrowsing
	slog.Info("Folder loaded", "folder", folder, "images", len(files))
	s.enter()
	return nil
}

// enter resets the form for the image under the cursor and pre-fills it
// from earlier metadata when there is any
func (s *Session) enter() {
	filename := s.files[s.cursor]
	id := models.IDFromFilename(filename)

	s.form = models.Form{}

	dim, err := images.DimensionOf(filepath.Join(s.folder, filename))
	if err != nil {
		slog.Warn("Cannot read image", "file", filename, "err", err)
	}
	s.dimension = dim

	if buffered := s.records[s.cursor]; buffered != nil {
		s.prior = Prior{Status: PriorFound, Source: SourceSession, Record: *buffered}
	} else {
		s.prior = lookupWorkingFile(s.store.WorkingPath(s.folder), id)
	}

	switch s.prior.Status {
	case PriorFound:
		s.form = formFromRecord(s.prior.Record, s.categories)
	case PriorParseError:
		slog.Debug("Ignoring unreadable working file", "folder", s.folder, "err", s.prior.Err)
	}
}

// Advance stores the current record and moves one image in dir. Moving
// past either end does nothing.
func (s *Session) Advance(dir Direction) error {
	if s.state != StateBrowsing {
		return ErrNotBrowsing
	}

	target := s.cursor + int(dir)
	if target < 0 || target >= len(s.files) {
		return nil
	}

	s.storeCurrent()
	s.cursor = target
	s.enter()
	return nil
}

// Persist stores the current record and writes every visited record to the
// working file and the catalog
func (s *Session) Persist() error {
	if s.state != StateBrowsing {
		return ErrNotBrowsing
	}

	s.storeCurrent()
	if err := s.store.Save(s.folder, s.Records()); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}
	return nil
}

// Synthesize builds the record for the image under the cursor from the
// current form, stamped with the current date
func (s *Session) Synthesize() models.Record {
	today := s.now().Format(models.DateLayout)
	return models.Record{
		ID:          models.IDFromFilename(s.files[s.cursor]),
		Title:       s.form.Title,
		Description: strings.TrimSpace(s.form.Description),
		Season:      s.form.Season,
		Tags:        s.categories.ParseIndices(s.form.Categories),
		Camera:      s.camera,
		Lens:        s.lens,
		Dimension:   s.dimension,
		UDate:       today,
		TDate:       today,
		Featured:    s.form.Featured,
	}
}

func (s *Session) storeCurrent() {
	record := s.Synthesize()
	s.records[s.cursor] = &record
}

// Records returns the buffered records of visited images in folder order
func (s *Session) Records() []models.Record {
	out := make([]models.Record, 0, len(s.records))
	for _, r := range s.records {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// SetForm replaces the form values for the current image
func (s *Session) SetForm(form models.Form) {
	s.form = form
}

// Form returns the form values for the current image
func (s *Session) Form() models.Form {
	return s.form
}

// State returns the session state
func (s *Session) State() State {
	return s.state
}

// Folder returns the loaded folder
func (s *Session) Folder() string {
	return s.folder
}

// Position returns the cursor and the number of images
func (s *Session) Position() (int, int) {
	return s.cursor, len(s.files)
}

// Current returns the filename, id and dimension of the image under the cursor
func (s *Session) Current() (filename, id, dimension string, ok bool) {
	if s.state != StateBrowsing {
		return "", "", "", false
	}
	filename = s.files[s.cursor]
	return filename, models.IDFromFilename(filename), s.dimension, true
}

// CurrentPath returns the full path of the image under the cursor
func (s *Session) CurrentPath() (string, bool) {
	if s.state != StateBrowsing {
		return "", false
	}
	return filepath.Join(s.folder, s.files[s.cursor]), true
}

// Prior returns the outcome of the prior-metadata lookup for the current image
func (s *Session) Prior() Prior {
	return s.prior
}

// Categories returns the category set used for synthesis
func (s *Session) Categories() models.CategorySet {
	return s.categories
}
