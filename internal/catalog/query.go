package catalog

import (
	"errors"
	"io/fs"
	"sort"
	"time"

	"github.com/lehigh-university-libraries/phototools/internal/models"
)

// Load reads the catalog as records. A missing catalog is empty.
func Load(path string) ([]models.Record, error) {
	records, err := ReadRecords(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Record{}, nil
	}
	return records, err
}

// Filter selects catalog records. Zero values select everything.
type Filter struct {
	Featured bool
	Season   string
	Tag      string
	// Recent orders the result by udate, newest first
	Recent bool
	// Limit caps the result; 0 means no limit
	Limit int
}

// Query applies f to records. Featured listings are always ordered by udate,
// newest first.
func Query(records []models.Record, f Filter) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if f.Featured && !r.Featured {
			continue
		}
		if f.Season != "" && r.Season != f.Season {
			continue
		}
		if f.Tag != "" && !hasTag(r, f.Tag) {
			continue
		}
		out = append(out, r)
	}

	if f.Recent || f.Featured {
		SortByUpdated(out)
	}

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// Seasons lists distinct seasons in first-seen order
func Seasons(records []models.Record) []string {
	seen := make(map[string]bool)
	seasons := make([]string, 0)
	for _, r := range records {
		if seen[r.Season] {
			continue
		}
		seen[r.Season] = true
		seasons = append(seasons, r.Season)
	}
	return seasons
}

// SortByUpdated orders records by udate, newest first. Records with an
// unparseable udate go last; ties keep their catalog order.
func SortByUpdated(records []models.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, okI := parseDate(records[i].UDate)
		tj, okJ := parseDate(records[j].UDate)
		if okI != okJ {
			return okI
		}
		return ti.After(tj)
	})
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(models.DateLayout, s)
	return t, err == nil
}

func hasTag(r models.Record, tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
