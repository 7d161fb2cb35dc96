package images

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ReportConfig is the configuration section of a conversion report
type ReportConfig struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	Quality   int    `yaml:"quality"`
	Format    string `yaml:"format"`
	Timestamp string `yaml:"timestamp"`
}

// ReportEntry is one converted (or failed) file
type ReportEntry struct {
	Filename string `yaml:"filename"`
	Output   string `yaml:"output,omitempty"`
	OK       bool   `yaml:"ok"`
	Error    string `yaml:"error,omitempty"`
}

// Report is the YAML document written by SaveReport
type Report struct {
	Config  ReportConfig  `yaml:"config"`
	Total   int           `yaml:"total"`
	Success int           `yaml:"success"`
	Results []ReportEntry `yaml:"results"`
}

// NewReport builds the report document for a finished run
func NewReport(s *Summary, now time.Time) Report {
	report := Report{
		Config: ReportConfig{
			Input:     s.Options.Input,
			Output:    s.Options.Output,
			Quality:   s.Options.Quality,
			Format:    "webp",
			Timestamp: now.Format("2006-01-02_15-04-05"),
		},
		Total:   s.Total,
		Success: s.Success,
		Results: make([]ReportEntry, 0, len(s.Results)),
	}

	for _, r := range s.Results {
		entry := ReportEntry{Filename: r.Filename, OK: r.OK}
		if r.OK {
			entry.Output = r.Output
		} else if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		report.Results = append(report.Results, entry)
	}

	return report
}

// SaveReport writes the run summary as YAML to path
func SaveReport(path string, s *Summary, now time.Time) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	report := NewReport(s, now)
	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}
	return nil
}
