package catalog

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/lehigh-university-libraries/phototools/internal/models"
)

func sampleCatalog() []models.Record {
	a := record("a", "2024-01-10")
	a.Season = "winter"
	a.Featured = true
	a.Tags = []string{"street"}

	b := record("b", "2024-03-01")
	b.Season = "spring"
	b.Tags = []string{"nature", "monochrome"}

	c := record("c", "2024-02-15")
	c.Season = "winter"
	c.Featured = true
	c.Tags = []string{"nature"}

	d := record("d", "not-a-date")
	d.Season = "summer"
	d.Featured = true

	return []models.Record{a, b, c, d}
}

func ids(records []models.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{name: "everything in catalog order", filter: Filter{}, expected: []string{"a", "b", "c", "d"}},
		{name: "featured newest first", filter: Filter{Featured: true}, expected: []string{"c", "a", "d"}},
		{name: "featured limited", filter: Filter{Featured: true, Limit: 2}, expected: []string{"c", "a"}},
		{name: "recent", filter: Filter{Recent: true, Limit: 2}, expected: []string{"b", "c"}},
		{name: "by season", filter: Filter{Season: "winter"}, expected: []string{"a", "c"}},
		{name: "by tag", filter: Filter{Tag: "nature"}, expected: []string{"b", "c"}},
		{name: "no match", filter: Filter{Season: "autumn"}, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Query(sampleCatalog(), tt.filter))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSeasons(t *testing.T) {
	got := Seasons(sampleCatalog())
	expected := []string{"winter", "spring", "summer"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestLoadMissingCatalog(t *testing.T) {
	records, err := Load(filepath.Join(t.TempDir(), "portfolio.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected empty catalog, got %d", len(records))
	}
}

func TestParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export", "portfolio.parquet")
	records := sampleCatalog()

	if err := ExportParquet(path, records); err != nil {
		t.Fatalf("ExportParquet failed: %v", err)
	}

	got, err := ReadParquet(path)
	if err != nil {
		t.Fatalf("ReadParquet failed: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("Expected %d rows, got %d", len(records), len(got))
	}
	for i := range records {
		if got[i].ID != records[i].ID || got[i].Season != records[i].Season || got[i].Featured != records[i].Featured {
			t.Errorf("row %d: expected %+v, got %+v", i, records[i], got[i])
		}
		if len(got[i].Tags) != len(records[i].Tags) {
			t.Errorf("row %d: expected tags %v, got %v", i, records[i].Tags, got[i].Tags)
		}
	}
}
